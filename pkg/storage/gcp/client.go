// File: pkg/storage/gcp/client.go
package gcp

import (
	"context"
	"fmt"
	"geobucket/internal/config"
	"geobucket/internal/provider/registry"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"log/slog"

	gcpstorage "cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func init() {
	registry.RegisterProvider("gcp", registry.ProviderRegistration{
		Provider:    common.GCP,
		ConfigCheck: checkConfig,
		Initializer: initialize,
	})
}

// GCS falls back to Application Default Credentials, so only an explicitly
// configured credentials file can make the provider unusable
func checkConfig(cfg *config.Config, env config.LookupFunc) error {
	_, err := config.GCPConfigFrom(cfg.GCP, env)
	return err
}

// Initializes the GCP storage client from the configuration
func initialize(ctx context.Context, cfg *config.Config, env config.LookupFunc, logger *slog.Logger) (storage.ObjectStore, error) {
	gcpCfg, err := config.GCPConfigFrom(cfg.GCP, env)
	if err != nil {
		return nil, err
	}
	return NewGCPStorage(ctx, gcpCfg, logger)
}

type GCPStorage struct {
	client    *gcpstorage.Client
	projectID string
	logger    *slog.Logger
}

var _ storage.ObjectStore = (*GCPStorage)(nil)

func NewGCPStorage(ctx context.Context, cfg config.GCPConfig, logger *slog.Logger) (*GCPStorage, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := gcpstorage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	return &GCPStorage{
		client:    client,
		projectID: cfg.Project,
		logger:    logger,
	}, nil
}

func (g *GCPStorage) ProviderName() common.Provider {
	return common.GCP
}

func (g *GCPStorage) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
