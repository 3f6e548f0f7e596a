// File: internal/provider/registry/registry.go
package registry

import (
	"context"
	"fmt"
	"geobucket/internal/config"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"log/slog"
	"sort"
	"strings"
	"sync"
)

// Reports why a provider cannot open a session, or nil if it can
type ProviderConfigCheck func(cfg *config.Config, env config.LookupFunc) error

// Defines the function signature for opening a new object store session
type ProviderInitializer func(ctx context.Context, cfg *config.Config, env config.LookupFunc, logger *slog.Logger) (storage.ObjectStore, error)

// Holds the necessary functions to check configuration and initialize a provider
type ProviderRegistration struct {
	// Determines the locator prefix handled by this provider
	Provider    common.Provider
	ConfigCheck ProviderConfigCheck
	Initializer ProviderInitializer
}

var (
	// Stores the registrations, keyed by the provider name (lowercase)
	providerRegistry = make(map[string]ProviderRegistration)
	registryMu       sync.RWMutex
)

// Allows a provider implementation package to register itself during initialization (init())
func RegisterProvider(name string, registration ProviderRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	normalizedName := strings.ToLower(name)
	if _, exists := providerRegistry[normalizedName]; exists {
		panic(fmt.Sprintf("provider %s already registered", normalizedName))
	}

	if registration.Provider.Prefix() == "" {
		panic(fmt.Sprintf("provider %s registration has no locator prefix", normalizedName))
	}
	if registration.ConfigCheck == nil {
		panic(fmt.Sprintf("provider %s registration missing ConfigCheck", normalizedName))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("provider %s registration missing Initializer", normalizedName))
	}

	providerRegistry[normalizedName] = registration
}

// Returns a sorted list of all registered provider names
func GetSupportedProviders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	providers := make([]string, 0, len(providerRegistry))
	for name := range providerRegistry {
		providers = append(providers, name)
	}
	sort.Strings(providers)
	return providers
}

// Checks if a provider name has been registered
func IsSupported(providerName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, exists := providerRegistry[strings.ToLower(providerName)]
	return exists
}

// Retrieves the registration details for a provider
func GetRegistration(providerName string) (ProviderRegistration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registration, exists := providerRegistry[strings.ToLower(providerName)]
	return registration, exists
}

// Returns the name of the provider whose prefix the locator carries
func ProviderForLocator(locator string) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for name, registration := range providerRegistry {
		if strings.HasPrefix(locator, registration.Provider.Prefix()) {
			return name, true
		}
	}
	return "", false
}

// Returns a copy of the entire registry map (primarily for use by the factory)
func GetAllRegistrations() map[string]ProviderRegistration {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registrations := make(map[string]ProviderRegistration, len(providerRegistry))
	for k, v := range providerRegistry {
		registrations[k] = v
	}
	return registrations
}
