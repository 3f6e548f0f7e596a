// File: cmd/geobucket/app.go
package main

import (
	"geobucket/internal/config"
	"geobucket/internal/provider/factory"
	"geobucket/internal/service"
	"geobucket/internal/ui/prompt"
	"geobucket/pkg/geo/gdal"
	"log/slog"
	"os"

	"github.com/spf13/afero"
)

// appContainer holds the dependencies shared by every command
type appContainer struct {
	Config          *config.Config
	ConfigManager   *config.ConfigManager
	ProviderFactory *factory.Factory
	TransferService *service.TransferService
	GeoService      *service.GeoService
	Prompter        prompt.Prompter
	Logger          *slog.Logger
}

func newApp(logger *slog.Logger) (*appContainer, error) {
	cfgManager, err := config.NewConfigManager()
	if err != nil {
		return nil, err
	}

	cfg, err := cfgManager.LoadConfig()
	if err != nil {
		return nil, err
	}

	providerFactory := factory.NewFactory(cfg, config.OSEnv(), logger)

	return &appContainer{
		Config:          cfg,
		ConfigManager:   cfgManager,
		ProviderFactory: providerFactory,
		TransferService: service.NewTransferService(providerFactory, afero.NewOsFs(), logger),
		GeoService:      service.NewGeoService(gdal.NewReader(logger), logger),
		Prompter:        prompt.NewStandardPrompter(os.Stdin, os.Stderr),
		Logger:          logger,
	}, nil
}
