package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"fundboard/internal/audit"
	"fundboard/internal/auth"
	"fundboard/internal/config"
	"fundboard/internal/gateway"
	apphttp "fundboard/internal/http"
	"fundboard/internal/log"
	"fundboard/internal/session"
	"fundboard/internal/views"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.New(log.DefaultConfig()).Error("Failed to load configuration", log.FieldError, err)
		os.Exit(1)
	}

	logger := log.New(cfg.LoggerConfig())
	log.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		os.Exit(1)
	}
}

// run wires the server and blocks until it stops. Errors are logged before
// they are returned, after deferred cleanup has run.
func run(cfg *config.Config, logger *log.Logger) error {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		return err
	}

	gw := gateway.New(gateway.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
		Logger:  logger,
	})

	sessions := session.NewStore(session.StoreConfig{
		IdleTTL:     cfg.SessionIdleTTL,
		MaxSessions: cfg.SessionMax,
		Logger:      logger,
	})
	defer sessions.Close()

	var publishers audit.Multi
	if cfg.AuditLog {
		publishers = append(publishers, audit.NewLogPublisher(logger))
	}
	var amqpPub *audit.AMQPPublisher
	if cfg.AMQPURL != "" {
		var err error
		amqpPub, err = audit.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
		if err != nil {
			logger.Error("Failed to initialize AMQP publisher", log.FieldError, err)
			return err
		}
		defer amqpPub.Close()
		publishers = append(publishers, amqpPub)
		logger.Info("Session events published to AMQP", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	}

	srv := apphttp.NewServer(cfg.Addr(), apphttp.Deps{
		Gateway:  gw,
		Sessions: sessions,
		Auth:     auth.NewFlow(gw, publishers, logger),
		Views:    views.New(gw, logger),
		Cookie:   apphttp.CookieConfig{Name: cfg.SessionCookieName, Secure: cfg.CookieSecure},
		Logger:   logger,
	})
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting fundboard server", "port", cfg.Port, "api_url", gw.BaseURL())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		return err
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
	return nil
}
