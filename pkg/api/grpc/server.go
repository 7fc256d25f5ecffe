package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Server represents the gRPC health server
type Server struct {
	server   *grpc.Server
	health   *health.Server
	listener net.Listener
	service  string
	logger   *zap.Logger
}

// Config holds gRPC server configuration
type Config struct {
	Host    string
	Port    int
	Service string // reported alongside the overall "" service
	Logger  *zap.Logger
}

// NewServer binds the listener and registers the health service
func NewServer(cfg *Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind gRPC server to %s: %w", addr, err)
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	if cfg.Service != "" {
		healthServer.SetServingStatus(cfg.Service, healthpb.HealthCheckResponse_SERVING)
	}

	return &Server{
		server:   grpcServer,
		health:   healthServer,
		listener: listener,
		service:  cfg.Service,
		logger:   logger,
	}, nil
}

// Addr returns the bound address
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Start starts the gRPC server
func (s *Server) Start() error {
	s.logger.Info("starting gRPC server", zap.String("addr", s.listener.Addr().String()))

	if err := s.server.Serve(s.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("failed to serve gRPC: %w", err)
	}

	return nil
}

// Shutdown marks every service NOT_SERVING and drains connections. If ctx
// expires first, remaining connections are closed.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down gRPC server")

	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.server.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		s.server.Stop()
		<-done
		s.logger.Warn("gRPC graceful stop timed out", zap.Error(ctx.Err()))
	}

	s.logger.Info("gRPC server shut down complete")
	return nil
}
