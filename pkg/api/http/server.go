package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/aescanero/infoapi/internal/info"
	"github.com/aescanero/infoapi/pkg/adapters/metrics/prometheus"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the HTTP API server
type Server struct {
	router   *gin.Engine
	server   *http.Server
	listener net.Listener
	document *info.Document
	profile  string
	metrics  *prometheus.Collector
	logger   *zap.Logger

	routes     info.Routes
	corsOrigin string

	// allowed maps each registered path to its Allow header value
	allowed map[string]string
}

// Config holds HTTP server configuration
type Config struct {
	Host     string
	Port     int
	Profile  string
	Routes   info.Routes // zero value serves /check and /info
	Document *info.Document
	Metrics  *prometheus.Collector // nil disables /metrics
	Logger   *zap.Logger

	CORSAllowOrigin   string // empty disables CORS headers
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
}

// NewServer creates a new HTTP server
func NewServer(cfg *Config) *Server {
	gin.SetMode(gin.ReleaseMode)

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.RedirectTrailingSlash = false

	s := &Server{
		router:     router,
		document:   cfg.Document,
		profile:    cfg.Profile,
		metrics:    cfg.Metrics,
		logger:     logger,
		routes:     cfg.Routes.WithDefaults(),
		corsOrigin: cfg.CORSAllowOrigin,
	}

	router.Use(requestID())
	router.Use(requestLogger(logger))
	if cfg.Metrics != nil {
		router.Use(requestMetrics(cfg.Metrics))
	}
	router.Use(recovery(logger))
	if s.corsOrigin != "" {
		router.Use(s.corsMiddleware())
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// setupRoutes configures API routes
func (s *Server) setupRoutes() {
	// Liveness check
	s.router.GET(s.routes.Check, s.handleCheck)
	s.router.HEAD(s.routes.Check, s.handleCheck)

	// Instance metadata
	s.router.GET(s.routes.Info, s.handleInfo)
	s.router.HEAD(s.routes.Info, s.handleInfo)

	// Metrics
	if s.metrics != nil {
		s.router.GET(info.MetricsPath, gin.WrapH(s.metrics.Handler()))
	}

	s.router.NoRoute(s.handleNotFound)
	s.router.NoMethod(s.handleMethodNotAllowed)

	methods := make(map[string][]string)
	for _, route := range s.router.Routes() {
		methods[route.Path] = append(methods[route.Path], route.Method)
	}
	if s.corsOrigin != "" {
		for path := range methods {
			methods[path] = append(methods[path], http.MethodOptions)
		}
	}
	s.allowed = make(map[string]string, len(methods))
	for path, list := range methods {
		sort.Strings(list)
		s.allowed[path] = strings.Join(list, ", ")
	}
}

// Handler returns the router, for embedding or testing
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the server's TCP port. A bind failure is returned here rather
// than from Serve so callers can fail fast at startup.
func (s *Server) Listen() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to bind HTTP server to %s: %w", s.server.Addr, err)
	}
	s.listener = listener

	s.logger.Info("HTTP server listening",
		zap.String("addr", listener.Addr().String()),
		zap.String("profile", s.profile))
	return nil
}

// Addr returns the bound address, or the configured one before Listen
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Serve accepts connections on the bound listener until Shutdown
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("HTTP server is not listening")
	}

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}

	return nil
}

// Start binds and serves
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info("HTTP server shut down complete")
	return nil
}
