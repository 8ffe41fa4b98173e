package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ktsarnakliyski/JobSpresso/internal/cli"
	"github.com/ktsarnakliyski/JobSpresso/internal/config"
	"github.com/ktsarnakliyski/JobSpresso/internal/errors"
)

func main() {
	// Cancel on SIGINT/SIGTERM so in-flight AI calls can wind down cleanly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := errors.New(cfg.App.LogLevel, cfg.App.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	logger.Info("Starting jobspresso application",
		"log_level", cfg.App.LogLevel,
		"default_format", cfg.App.DefaultFormat,
	)

	if err := cli.Execute(ctx, cfg, logger); err != nil {
		logger.LogError(err, "Command execution failed")
		os.Exit(1)
	}
}
