// cmd/jotter/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/jotter/internal/app"
	"github.com/bethropolis/jotter/internal/config"
	"github.com/bethropolis/jotter/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [project]\n\n", config.AppName)
		fs.PrintDefaults()
	}
	if _, err := flags.ParseFlags(fs, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		os.Exit(0)
	}

	// --- Configuration ---
	cfg, warnings, err := config.Load(*flags.ConfigFilePath, &flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		logPath = config.DefaultLogPath()
	}
	logOutput, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	defer logOutput.Close()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s...", config.AppName, version)
	logger.Debugf("Log file: %s", logPath)
	for _, w := range warnings {
		logger.Warnf("Config: %s", w)
	}
	logger.Debugf("Project: %s (format %s)", cfg.Project.Path, cfg.Project.Format)

	// --- Create and Run App ---
	if err := run(cfg); err != nil {
		logger.Errorf("%v", err)
		logOutput.Close()
		stlog.Fatalf("%v", err)
	}
	logger.Infof("%s finished.", config.AppName)
}

func run(cfg *config.Config) error {
	jotterApp, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	if err := jotterApp.Run(); err != nil {
		return fmt.Errorf("application exited with error: %w", err)
	}
	return nil
}
