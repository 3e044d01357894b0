package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/aula/internal/config"
	"github.com/javiermolinar/aula/internal/logging"
	"github.com/javiermolinar/aula/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	app := ui.NewApp(cfg, logger)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
