// Package cli provides the interactive front-end and the start-up helpers
// shared by cmd/budget.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"budget/internal/amqp"
	"budget/internal/backend"
	"budget/internal/config"
	"budget/internal/log"
	"budget/internal/report"
	"budget/internal/services"
	"budget/internal/storage"
)

// SetupLogger builds the process logger at the configured level and sets it
// as the slog default. Unknown levels fall back to info.
func SetupLogger(level string) *log.Logger {
	cfg := log.DefaultConfig()
	if lvl, err := log.ParseLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// ValidateConfig exits the process when the configuration is invalid.
func ValidateConfig(logger *log.Logger, cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed",
			log.FieldErrorType, log.ErrorTypeConfiguration,
			log.FieldError, err)
		os.Exit(1)
	}
}

// InitStore opens the configured backend or exits the process on failure.
func InitStore(logger *log.Logger, cfg *config.Config) (storage.TransactionStore, backend.CleanupFunc) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	res, err := backend.NewFactory(logger).CreateBackend(bcfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldBackend, bcfg.Type.String(),
			log.FieldErrorType, log.ErrorTypePersistence,
			log.FieldError, err)
		os.Exit(1)
	}
	return res.Store, res.Cleanup
}

// InitPublisher connects to AMQP when configured. A connection failure is
// logged and recording continues without events.
func InitPublisher(logger *log.Logger, cfg *config.Config) *amqp.Client {
	if !cfg.EventsEnabled() {
		return nil
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Warn("Failed to initialize AMQP client, continuing without events",
			log.FieldErrorType, log.ErrorTypeNetwork,
			log.FieldError, err)
		return nil
	}

	logger.Info("Initialized AMQP client",
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue)
	return client
}

// NewRecorder wires the report service and the recorder over store.
func NewRecorder(logger *log.Logger, cfg *config.Config, store storage.TransactionStore, publisher *amqp.Client) (*services.ExpenseRecorder, *report.Service, error) {
	ids, err := services.NewIDGenerator(cfg.IDStrategy, time.Now)
	if err != nil {
		return nil, nil, err
	}

	reports := report.NewService(store)
	opts := []services.Option{
		services.WithLogger(logger),
		services.WithIDGenerator(ids),
	}
	// A nil *amqp.Client must not end up inside a non-nil interface.
	if publisher != nil {
		opts = append(opts, services.WithPublisher(publisher))
	}

	return services.NewExpenseRecorder(store, reports, opts...), reports, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
