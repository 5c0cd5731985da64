package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"craftpin/internal/cache"
	"craftpin/internal/config"
	"craftpin/internal/database"
	"craftpin/internal/repositories"
	"craftpin/internal/router"
	"craftpin/internal/services"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting craftpin server",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		return err
	}
	logger.Info("Database ready")

	cacheClient, err := cache.New(&cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer cacheClient.Close()

	repos := repositories.NewCollection(db, logger)

	svcs, err := services.NewCollection(cfg, repos, cacheClient, logger)
	if err != nil {
		return err
	}

	svcs.Bus.Start()

	handler := router.New(cfg, svcs, db, cacheClient, logger)

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	// Drain in-flight badge checks before exiting.
	if err := svcs.Bus.Stop(ctx); err != nil {
		logger.Warn("Event bus did not drain cleanly", zap.Error(err))
	}

	logger.Info("Server stopped")
	return nil
}

func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
