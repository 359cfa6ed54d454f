// Package app wires configuration, storage, and services into the shared
// application core used by cmd/nestegg-server.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mfletcher/nestegg/internal/common"
	"github.com/mfletcher/nestegg/internal/interfaces"
	"github.com/mfletcher/nestegg/internal/services/currency"
	"github.com/mfletcher/nestegg/internal/services/dashboard"
	"github.com/mfletcher/nestegg/internal/storage"
)

// App holds all initialized services and storage.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.KeyValueStore
	Dashboard   interfaces.DashboardService
	Converter   interfaces.CurrencyConverter
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, and services.
// configPath may be empty, in which case the default resolution logic is
// used: NESTEGG_CONFIG, then nestegg.toml beside the binary, then
// config/nestegg.toml.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("NESTEGG_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "nestegg.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/nestegg.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	store, err := storage.NewFileStore(logger, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	a := &App{
		Config:      config,
		Logger:      logger,
		Storage:     store,
		Dashboard:   dashboard.NewService(store, config, logger),
		Converter:   currency.NewConverter(config.Currency, logger),
		StartupTime: startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")
	return a, nil
}

// Close releases all resources held by the App. The dashboard service is
// closed first so any pending debounced save flushes before storage goes
// away.
func (a *App) Close() {
	if a.Dashboard != nil {
		a.Dashboard.Close()
		a.Dashboard = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
