package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"ai-workspace-be/internal/bootstrap"
	"ai-workspace-be/internal/config"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/server"
	"ai-workspace-be/internal/tracer"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	if config.IsPlaceholder(cfg.Auth.JWTSecret) {
		if cfg.IsProduction() {
			sysLogger.Error("MAIN", "JWT_SECRET is not set", nil)
			os.Exit(1)
		}
		sysLogger.Warn("MAIN", "JWT_SECRET uses a placeholder value", nil)
	}

	// 2. Tracing
	shutdownTracer := tracer.InitTracer(sysLogger)

	// 3. Infrastructure
	infra := bootstrap.Connect(cfg, sysLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := infra.Gateway.Migrate(ctx, model.All()...); err != nil {
			// The gateway retries on the next request; health reports degraded.
			sysLogger.Warn("MAIN", "Migration skipped", map[string]interface{}{"error": err.Error()})
		}
	}

	// 4. Bootstrap dependencies
	container, err := bootstrap.NewContainer(cfg, infra)
	if err != nil {
		sysLogger.Error("MAIN", "Failed to build container", map[string]interface{}{"error": err.Error()})
		infra.Close()
		os.Exit(1)
	}

	// 5. Background services
	if err := container.Start(ctx); err != nil {
		sysLogger.Error("MAIN", "Failed to start background services", map[string]interface{}{"error": err.Error()})
		infra.Close()
		os.Exit(1)
	}

	// 6. Serve until a signal arrives
	srv := server.New(cfg, container)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Run()
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
		}
	case <-ctx.Done():
		sysLogger.Info("MAIN", "Shutting down", nil)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sysLogger.Warn("MAIN", "Server shutdown incomplete", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		sysLogger.Warn("MAIN", "Tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	infra.Close()
}
