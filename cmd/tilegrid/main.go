// cmd/tilegrid/main.go
package main

import (
	"context"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/tilegrid/internal/app"
	"github.com/bethropolis/tilegrid/internal/config"
	"github.com/bethropolis/tilegrid/internal/logger"
	"github.com/bethropolis/tilegrid/internal/storage"
	"github.com/bethropolis/tilegrid/internal/theme"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// --- Argument & Flag Parsing ---
	var flags config.Flags
	flags.ParseFlags()
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	// --- Configuration ---
	cfg, cfgErr := config.LoadConfig(*flags.ConfigFilePath, &flags)

	// --- Logger Initialization ---
	logPath := cfg.Logger.LogFilePath
	if logPath == "" {
		if dir, err := os.UserConfigDir(); err == nil {
			logPath = filepath.Join(dir, config.ConfigDirName, config.DefaultLogFileName)
		}
	}
	logOutput, closeLog, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("Failed to open log output: %v", err)
	}
	defer closeLog()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting tilegrid %s...", version)
	if cfgErr != nil {
		logger.Warnf("Config problem, continuing with defaults: %v", cfgErr)
	}

	// --- Layout Storage ---
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = storage.DefaultPath(config.AppName, cfg.Storage.Backend)
	}
	openCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	store, err := storage.Open(openCtx, cfg.Storage)
	cancel()
	if err != nil {
		logger.Errorf("Error opening layout storage: %v", err)
		fmt.Fprintf(os.Stderr, "tilegrid: %v\n", err)
		os.Exit(1)
	}
	logger.Debugf("Layout storage: %s (%s)", cfg.Storage.Backend, cfg.Storage.Path)

	// --- Create and Run App ---
	tilegridApp, err := app.NewApp(app.Options{
		Config:    cfg,
		Store:     store,
		ThemesDir: theme.DefaultThemesDir(config.ConfigDirName),
	})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		_ = store.Close()
		fmt.Fprintf(os.Stderr, "tilegrid: %v\n", err)
		os.Exit(1)
	}

	if err := tilegridApp.Run(); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}

	logger.Infof("tilegrid finished.")
}
