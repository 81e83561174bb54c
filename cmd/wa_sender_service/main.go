package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/aradsms/wa_sender/internal/platform/config"
	"github.com/aradsms/wa_sender/internal/platform/logger"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/app"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/provider"
	"github.com/aradsms/wa_sender/internal/wa_sender_service/session"
	httptransport "github.com/aradsms/wa_sender/internal/wa_sender_service/transport/http"

	"github.com/go-playground/validator/v10"
)

const (
	serviceName          = "wa_sender_service"
	sessionSweepInterval = time.Minute
	readHeaderTimeout    = 5 * time.Second
)

func main() {
	mainCtx, mainCancel := context.WithCancel(context.Background())
	defer mainCancel()

	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		os.Exit(1)
	}

	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	appLogger = appLogger.With("service", serviceName)
	appLogger.Info("Configuration loaded",
		"log_level", cfg.LogLevel,
		"port", cfg.ServerPort,
		"provider", cfg.Provider,
		"session_ttl", cfg.SessionTTL().String(),
		"metrics_enabled", cfg.MetricsEnabled,
	)

	var adapter provider.Adapter
	switch cfg.Provider {
	case "mock":
		adapter = provider.NewMockProvider(appLogger, false, 200*time.Millisecond)
	default:
		adapter = provider.NewTwilioProvider(appLogger, nil)
	}

	sessions := session.NewStore(cfg.SessionTTL(), appLogger)
	dispatcher := app.NewDispatchService(adapter, app.NewValidator(validator.New()), appLogger)

	router := httptransport.NewRouter(httptransport.RouterOptions{
		Dispatcher:         dispatcher,
		Sessions:           sessions,
		Logger:             appLogger,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsEnabled:     cfg.MetricsEnabled,
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, groupCtx := errgroup.WithContext(mainCtx)

	g.Go(func() error {
		appLogger.Info("HTTP server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("HTTP server failed to serve", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		return sessions.Run(groupCtx, sessionSweepInterval)
	})

	g.Go(func() error {
		stopSignal := make(chan os.Signal, 1)
		signal.Notify(stopSignal, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-stopSignal:
			appLogger.Info("Received termination signal", "signal", sig.String())
			mainCancel()
		case <-groupCtx.Done():
		}
		return nil
	})

	g.Go(func() error {
		<-groupCtx.Done()
		appLogger.Info("Initiating graceful shutdown of HTTP server...")
		ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancelShutdown()
		if err := httpServer.Shutdown(ctxShutdown); err != nil {
			appLogger.Error("HTTP server shutdown failed", "error", err)
			return err
		}
		appLogger.Info("HTTP server shut down gracefully.")
		return nil
	})

	appLogger.Info("Service is ready and running.")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.Error("Service group encountered an error", "error", err)
		os.Exit(1)
	}
	appLogger.Info("Service shutdown complete.")
}
