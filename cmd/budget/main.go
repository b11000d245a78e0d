package main

import (
	"errors"
	"fmt"
	"os"

	"budget/internal/cli"
	"budget/internal/config"
	"budget/internal/log"
)

func main() {
	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(log.ComponentApp)
	cli.ValidateConfig(logger, cfg)

	ctx, stop := cli.SignalContext()
	defer stop()
	ctx = log.NewContext(ctx, logger)

	shutdown := cli.NewShutdown(logger)

	store, cleanup := cli.InitStore(logger, cfg)
	shutdown.Add("backend", cleanup)

	publisher := cli.InitPublisher(logger, cfg)
	if publisher != nil {
		shutdown.Add("amqp", publisher.Close)
	}

	recorder, reports, err := cli.NewRecorder(logger, cfg, store, publisher)
	if err != nil {
		logger.Error("Failed to build recorder", log.FieldError, err)
		shutdown.Run()
		os.Exit(1)
	}

	logger.Debug("Starting command",
		log.FieldOperation, log.OpStartup,
		log.FieldUserID, cfg.UserID,
		log.FieldBackend, cfg.DataBackend)

	err = cli.Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, recorder, reports, cfg.UserID)
	// os.Exit skips deferred calls, so resources are closed before any exit.
	shutdown.Run()

	switch {
	case errors.Is(err, cli.ErrUsage):
		fmt.Fprint(os.Stderr, cli.Usage)
		os.Exit(2)
	case err != nil:
		logger.Error("Command failed", log.FieldError, err)
		os.Exit(1)
	}
}
