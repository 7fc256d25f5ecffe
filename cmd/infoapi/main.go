package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/infoapi/internal/config"
	"github.com/aescanero/infoapi/internal/info"
	"github.com/aescanero/infoapi/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/infoapi/pkg/api/grpc"
	"github.com/aescanero/infoapi/pkg/api/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	logger.Info("starting info service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Resolve the instance profile and freeze its document
	profile, err := info.Resolve(cfg.Profile, cfg.ProfileFile)
	if err != nil {
		logger.Fatal("failed to resolve profile", zap.Error(err))
	}
	if err := cfg.CheckPorts(profile.Port); err != nil {
		logger.Fatal("invalid port configuration", zap.String("profile", profile.Name), zap.Error(err))
	}
	document, err := profile.Document()
	if err != nil {
		logger.Fatal("invalid profile", zap.String("profile", profile.Name), zap.Error(err))
	}

	var metricsCollector *prometheus.Collector
	if cfg.MetricsEnabled {
		metricsCollector = prometheus.NewCollector()
		metricsCollector.SetBuildInfo(Version, profile.Name)
	}

	// Initialize API servers
	httpServer := http.NewServer(&http.Config{
		Port:              cfg.ResolveHTTPPort(profile.Port),
		Profile:           profile.Name,
		Routes:            profile.Routes,
		Document:          document,
		Metrics:           metricsCollector,
		Logger:            logger,
		CORSAllowOrigin:   cfg.HTTP.CORSAllowOrigin,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	})
	if err := httpServer.Listen(); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	var grpcServer *grpc.Server
	if cfg.GRPCEnabled() {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Port:    cfg.GRPCPort,
			Service: profile.Name,
			Logger:  logger,
		})
		if err != nil {
			logger.Fatal("failed to create gRPC server", zap.Error(err))
		}
	}

	logger.Info("info service started",
		zap.String("profile", profile.Name),
		zap.String("schema", string(profile.Schema)),
		zap.String("http_addr", httpServer.Addr()),
		zap.Int("grpc_port", cfg.GRPCPort),
		zap.Bool("metrics", cfg.MetricsEnabled))

	// Wait for interrupt signal or a server failure
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(httpServer.Serve)
	if grpcServer != nil {
		g.Go(grpcServer.Start)
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("received shutdown signal")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
		if grpcServer != nil {
			if err := grpcServer.Shutdown(shutdownCtx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("info service stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("info service shut down complete")
}

// initLogger initializes the logger based on log level and format. Logs go
// to stdout, internal logger errors to stderr.
func initLogger(level, format string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	if format == "console" {
		config.Encoding = "console"
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
