// cmd/pixide/main.go
package main

import (
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"

	"github.com/bethropolis/pixide/internal/app"
	"github.com/bethropolis/pixide/internal/config"
	"github.com/bethropolis/pixide/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	flags := &config.Flags{}
	args := flags.ParseFlags()

	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}

	// --- Configuration ---
	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, flags)

	// --- Logger Initialization ---
	logger.SetDebugFilter(*flags.DebugLog)
	output, closeLog := openLogOutput(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.InitWithConfig(cfg.Logger, output)

	if cfgErr != nil {
		logger.Warnf("Config: %v (using defaults)", cfgErr)
	}

	logger.Infof("Starting %s %s...", config.AppName, config.Version)
	if filePath != "" {
		logger.Debugf("File path specified: %s", filePath)
	} else {
		logger.Debugf("No file specified, starting a new %s image.", cfg.DefaultDocumentSize())
	}

	// --- Create and Run App ---
	pixideApp, err := app.NewApp(cfg, filePath)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		closeLog()
		os.Exit(1)
	}

	if err := pixideApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		closeLog()
		os.Exit(1)
	}

	logger.Infof("%s finished.", config.AppName)
}

// openLogOutput opens the configured log file. "-" logs to stderr; an empty
// path uses pixide.log in the working directory.
func openLogOutput(path string) (io.Writer, func()) {
	if path == "-" {
		return os.Stderr, func() {}
	}
	if path == "" {
		path = config.DefaultLogFileName
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		stlog.Fatalf("Failed to open log file '%s': %v", path, err)
	}
	return logFile, func() { _ = logFile.Close() }
}
