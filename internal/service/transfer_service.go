// File: internal/service/transfer_service.go
package service

import (
	"context"
	"fmt"
	"geobucket/internal/provider/registry"
	"geobucket/pkg/storage"
	"geobucket/pkg/transfer"
	"log/slog"

	"github.com/spf13/afero"
)

// StoreFactory resolves providers and opens object store sessions
type StoreFactory interface {
	ResolveProvider(explicit string, locators ...string) (string, error)
	Registration(providerName string) (registry.ProviderRegistration, error)
	GetStorageProvider(ctx context.Context, providerName string) (storage.ObjectStore, error)
}

type TransferService struct {
	providerFactory StoreFactory
	fs              afero.Fs
	logger          *slog.Logger
}

func NewTransferService(providerFactory StoreFactory, fs afero.Fs, logger *slog.Logger) *TransferService {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &TransferService{
		providerFactory: providerFactory,
		fs:              fs,
		logger:          logger.With("service", "TransferService"),
	}
}

func (s *TransferService) CopyOrUpload(ctx context.Context, src, dst, providerName string) error {
	s.logger.Debug("Starting CopyOrUpload operation", "source", src, "destination", dst, "provider", providerName)

	t, err := s.transferer(providerName, src, dst)
	if err != nil {
		return err
	}

	if err := t.CopyOrUpload(ctx, src, dst); err != nil {
		s.logger.Error("Failed to copy", "source", src, "destination", dst, "error", err)
		return err
	}
	return nil
}

func (s *TransferService) Download(ctx context.Context, src, dst, providerName string) error {
	s.logger.Debug("Starting Download operation", "source", src, "destination", dst, "provider", providerName)

	t, err := s.transferer(providerName, src, dst)
	if err != nil {
		return err
	}

	if err := t.Download(ctx, src, dst); err != nil {
		s.logger.Error("Failed to download", "source", src, "destination", dst, "error", err)
		return err
	}
	return nil
}

func (s *TransferService) DeleteIfExists(ctx context.Context, loc, providerName string) error {
	s.logger.Debug("Starting DeleteIfExists operation", "locator", loc, "provider", providerName)

	t, err := s.transferer(providerName, loc)
	if err != nil {
		return err
	}

	if err := t.DeleteIfExists(ctx, loc); err != nil {
		s.logger.Error("Failed to delete", "locator", loc, "error", err)
		return err
	}
	return nil
}

func (s *TransferService) Stat(ctx context.Context, loc, providerName string) (storage.ObjectInfo, error) {
	s.logger.Debug("Starting Stat operation", "locator", loc, "provider", providerName)

	t, err := s.transferer(providerName, loc)
	if err != nil {
		return storage.ObjectInfo{}, err
	}

	info, err := t.Stat(ctx, loc)
	if err != nil {
		s.logger.Error("Failed to stat", "locator", loc, "error", err)
		return storage.ObjectInfo{}, err
	}
	return info, nil
}

// Builds a Transferer bound to one provider; sessions are opened per operation
func (s *TransferService) transferer(providerName string, locators ...string) (*transfer.Transferer, error) {
	name, err := s.providerFactory.ResolveProvider(providerName, locators...)
	if err != nil {
		s.logger.Error("Failed to resolve provider", "provider", providerName, "error", err)
		return nil, fmt.Errorf("error resolving provider: %w", err)
	}
	registration, err := s.providerFactory.Registration(name)
	if err != nil {
		return nil, err
	}

	open := func(ctx context.Context) (storage.ObjectStore, error) {
		store, err := s.providerFactory.GetStorageProvider(ctx, name)
		if err != nil {
			s.logger.Error("Failed to initialize provider", "provider", name, "error", err)
			return nil, fmt.Errorf("error initializing provider: %w", err)
		}
		return store, nil
	}

	return transfer.New(registration.Provider.Prefix(), open,
		transfer.WithFs(s.fs),
		transfer.WithLogger(s.logger.With("provider", name)),
	), nil
}
