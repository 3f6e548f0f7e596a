// File: internal/provider/factory/factory.go
package factory

import (
	"context"
	"fmt"
	"geobucket/internal/config"
	"geobucket/internal/provider/registry"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"log/slog"
	"sort"
	"strings"
)

// Provider used when neither a flag, the config file, nor a locator prefix names one
const DefaultProvider = "aws"

type Factory struct {
	cfg    *config.Config
	env    config.LookupFunc
	logger *slog.Logger
}

func NewFactory(cfg *config.Config, env config.LookupFunc, logger *slog.Logger) *Factory {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Factory{
		cfg:    cfg,
		env:    env,
		logger: logger,
	}
}

// Returns a list of providers that are registered and configured
func (f *Factory) GetConfiguredProviders() []string {
	var configuredProviders []string
	allRegistrations := registry.GetAllRegistrations()

	for name, registration := range allRegistrations {
		if registration.ConfigCheck(f.cfg, f.env) == nil {
			configuredProviders = append(configuredProviders, name)
		}
	}
	sort.Strings(configuredProviders)
	return configuredProviders
}

// Checks if a specific provider is registered and configured
func (f *Factory) IsConfigured(providerName string) bool {
	registration, exists := registry.GetRegistration(providerName)
	if !exists {
		return false
	}
	return registration.ConfigCheck(f.cfg, f.env) == nil
}

// Picks the provider for a set of locators: an explicit name wins, then the
// prefix carried by the locators, then the configured default
func (f *Factory) ResolveProvider(explicit string, locators ...string) (string, error) {
	if explicit != "" {
		name := strings.ToLower(strings.TrimSpace(explicit))
		if p, ok := common.ProviderFromName(name); ok {
			name = strings.ToLower(string(p))
		}
		if !registry.IsSupported(name) {
			return "", fmt.Errorf("unsupported provider: %s. Supported providers are: %v", explicit, registry.GetSupportedProviders())
		}
		// A locator carrying another provider's prefix would otherwise be taken as a local path
		for _, loc := range locators {
			if other, ok := registry.ProviderForLocator(loc); ok && other != name {
				return "", fmt.Errorf("locator %s belongs to provider %s, not %s", loc, other, name)
			}
		}
		return name, nil
	}

	var resolved string
	for _, loc := range locators {
		name, ok := registry.ProviderForLocator(loc)
		if !ok {
			continue
		}
		if resolved != "" && resolved != name {
			return "", fmt.Errorf("locators refer to more than one provider (%s and %s); a single call works against one object store", resolved, name)
		}
		resolved = name
	}
	if resolved != "" {
		return resolved, nil
	}

	if f.cfg.DefaultProvider != "" {
		return f.cfg.DefaultProvider, nil
	}
	return DefaultProvider, nil
}

// Returns the registration for a provider name, for callers that need its locator prefix
func (f *Factory) Registration(providerName string) (registry.ProviderRegistration, error) {
	registration, exists := registry.GetRegistration(providerName)
	if !exists {
		return registry.ProviderRegistration{}, fmt.Errorf("unsupported provider: %s. Supported providers are: %v", providerName, registry.GetSupportedProviders())
	}
	return registration, nil
}

// Opens a new object store session for the specified provider. The caller closes it.
func (f *Factory) GetStorageProvider(ctx context.Context, providerName string) (storage.ObjectStore, error) {
	normalizedName := strings.ToLower(providerName)
	providerLogger := f.logger.With("provider", normalizedName)

	registration, err := f.Registration(normalizedName)
	if err != nil {
		return nil, err
	}

	if err := registration.ConfigCheck(f.cfg, f.env); err != nil {
		return nil, fmt.Errorf("provider '%s' is not configured: %w", normalizedName, err)
	}

	client, err := registration.Initializer(ctx, f.cfg, f.env, providerLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %s: %w", normalizedName, err)
	}

	return client, nil
}
