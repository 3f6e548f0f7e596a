// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	ConfigFileName = "config"
	ConfigFileType = "yaml"
	ConfigDirName  = "geobucket"
)

// Keys accepted by 'geobucket config set'
const (
	KeyDefaultProvider    = "default_provider"
	KeyAWSEndpoint        = "aws.endpoint"
	KeyAWSUsePathStyle    = "aws.use_path_style"
	KeyGCPProject         = "gcp.project"
	KeyGCPCredentialsFile = "gcp.credentials_file"
)

var supportedKeys = map[string]bool{
	KeyDefaultProvider:    true,
	KeyAWSEndpoint:        true,
	KeyAWSUsePathStyle:    true,
	KeyGCPProject:         true,
	KeyGCPCredentialsFile: true,
}

// Settings persisted in the config file. Credentials never live here.
type AWSSettings struct {
	Endpoint     string `mapstructure:"endpoint"`
	UsePathStyle bool   `mapstructure:"use_path_style"`
}

type GCPSettings struct {
	Project         string `mapstructure:"project"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type Config struct {
	DefaultProvider string       `mapstructure:"default_provider" validate:"omitempty,oneof=aws gcp"`
	AWS             *AWSSettings `mapstructure:"aws"`
	GCP             *GCPSettings `mapstructure:"gcp"`
}

// ConfigManager reads and writes the config file through a dedicated viper instance
type ConfigManager struct {
	v          *viper.Viper
	configPath string
}

func NewConfigManager() (*ConfigManager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("error getting user config directory: %w", err)
	}
	return NewConfigManagerAt(filepath.Join(configDir, ConfigDirName))
}

// Creates a manager whose config file lives in the given directory
func NewConfigManagerAt(configDir string) (*ConfigManager, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType(ConfigFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return &ConfigManager{
		v:          v,
		configPath: filepath.Join(configDir, ConfigFileName+"."+ConfigFileType),
	}, nil
}

func (m *ConfigManager) ConfigPath() string {
	return m.configPath
}

// Decodes the current settings into a Config, rejecting unknown keys
func (m *ConfigManager) LoadConfig() (*Config, error) {
	var cfg Config
	err := m.v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.ErrorUnused = true
		dc.WeaklyTypedInput = true
	})
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing config file %s: %v", ErrConfiguration, m.configPath, err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%w: invalid config file %s: %v", ErrConfiguration, m.configPath, err)
	}

	return &cfg, nil
}

func (m *ConfigManager) SetValue(key, value string) error {
	key = strings.ToLower(key)
	if !supportedKeys[key] {
		return fmt.Errorf("unknown config key: %s. Supported keys are: %s", key, strings.Join(SupportedKeys(), ", "))
	}
	if key == KeyDefaultProvider {
		value = strings.ToLower(value)
		if err := validate.Var(value, "oneof=aws gcp"); err != nil {
			return fmt.Errorf("invalid value for %s: %q (expected aws or gcp)", key, value)
		}
	}
	if key == KeyAWSUsePathStyle {
		if err := validate.Var(value, "boolean"); err != nil {
			return fmt.Errorf("invalid value for %s: %q (expected true or false)", key, value)
		}
	}

	m.v.Set(key, value)
	return m.save()
}

func (m *ConfigManager) GetValue(key string) (interface{}, bool) {
	key = strings.ToLower(key)
	if !m.v.IsSet(key) {
		return nil, false
	}
	return m.v.Get(key), true
}

// Removes a key. Returns false if it was not set.
func (m *ConfigManager) DeleteValue(key string) (bool, error) {
	key = strings.ToLower(key)
	if !m.v.IsSet(key) {
		return false, nil
	}

	// Viper cannot unset a key, so rebuild from the remaining settings
	settings := m.v.AllSettings()
	deleteNested(settings, strings.Split(key, "."))

	fresh := viper.New()
	fresh.SetConfigName(ConfigFileName)
	fresh.SetConfigType(ConfigFileType)
	fresh.AddConfigPath(filepath.Dir(m.configPath))
	if err := fresh.MergeConfigMap(settings); err != nil {
		return false, fmt.Errorf("error rebuilding configuration: %w", err)
	}
	m.v = fresh

	if err := m.save(); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ConfigManager) GetAllSettings() map[string]interface{} {
	return m.v.AllSettings()
}

func (m *ConfigManager) save() error {
	if err := m.v.WriteConfigAs(m.configPath); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

func SupportedKeys() []string {
	keys := make([]string, 0, len(supportedKeys))
	for k := range supportedKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func deleteNested(m map[string]interface{}, path []string) {
	if len(path) == 1 {
		delete(m, path[0])
		return
	}
	child, ok := m[path[0]].(map[string]interface{})
	if !ok {
		return
	}
	deleteNested(child, path[1:])
	if len(child) == 0 {
		delete(m, path[0])
	}
}
