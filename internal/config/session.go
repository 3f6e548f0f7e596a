// File: internal/config/session.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrConfiguration is returned when a required setting is missing or invalid
var ErrConfiguration = errors.New("configuration error")

// Environment variables read when opening an AWS session
const (
	EnvAWSAccessKeyID     = "AWS_ACCESS_KEY_ID"
	EnvAWSSecretAccessKey = "AWS_SECRET_ACCESS_KEY"
	EnvAWSDefaultRegion   = "AWS_DEFAULT_REGION"
	EnvAWSEndpoint        = "AWS_ENDPOINT_URL_S3"
	EnvAWSForcePathStyle  = "AWS_S3_FORCE_PATH_STYLE"
	EnvGCPCredentials     = "GOOGLE_APPLICATION_CREDENTIALS"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

func OSEnv() LookupFunc {
	return os.LookupEnv
}

// Everything needed to open an S3 session
type AWSConfig struct {
	AccessKeyID     string `validate:"required"`
	SecretAccessKey string `validate:"required"`
	Region          string `validate:"required"`
	Endpoint        string `validate:"omitempty,url"`
	UsePathStyle    bool
}

// Everything needed to open a GCS session. Empty CredentialsFile means
// Application Default Credentials.
type GCPConfig struct {
	Project         string
	CredentialsFile string `validate:"omitempty,file"`
}

// Builds the AWS session config. The three credential/region variables are always
// taken from env; endpoint and path style fall back to the file settings.
func AWSConfigFromEnv(env LookupFunc, settings *AWSSettings) (AWSConfig, error) {
	cfg := AWSConfig{
		AccessKeyID:     lookup(env, EnvAWSAccessKeyID),
		SecretAccessKey: lookup(env, EnvAWSSecretAccessKey),
		Region:          lookup(env, EnvAWSDefaultRegion),
		Endpoint:        lookup(env, EnvAWSEndpoint),
	}

	if settings != nil {
		if cfg.Endpoint == "" {
			cfg.Endpoint = settings.Endpoint
		}
		cfg.UsePathStyle = settings.UsePathStyle
	}
	if v := lookup(env, EnvAWSForcePathStyle); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return AWSConfig{}, fmt.Errorf("%w: %s must be true or false, got %q", ErrConfiguration, EnvAWSForcePathStyle, v)
		}
		cfg.UsePathStyle = b
	}

	if err := validateSession(cfg); err != nil {
		return AWSConfig{}, err
	}
	return cfg, nil
}

// Builds the GCS session config from the file settings, with the credentials
// file falling back to GOOGLE_APPLICATION_CREDENTIALS
func GCPConfigFrom(settings *GCPSettings, env LookupFunc) (GCPConfig, error) {
	var cfg GCPConfig
	if settings != nil {
		cfg.Project = settings.Project
		cfg.CredentialsFile = settings.CredentialsFile
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = lookup(env, EnvGCPCredentials)
	}

	if err := validateSession(cfg); err != nil {
		return GCPConfig{}, err
	}
	return cfg, nil
}

func lookup(env LookupFunc, key string) string {
	if env == nil {
		return ""
	}
	v, ok := env(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// Turns validator errors into ErrConfiguration naming the offending variables
func validateSession(cfg interface{}) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	var missing, invalid []string
	for _, fe := range validationErrs {
		name := envName(cfg, fe.StructField())
		if fe.Tag() == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, fmt.Sprintf("%s (%s)", name, fe.Tag()))
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing required environment variable(s): "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		parts = append(parts, "invalid value(s): "+strings.Join(invalid, ", "))
	}
	return fmt.Errorf("%w: %s", ErrConfiguration, strings.Join(parts, "; "))
}

func envName(cfg interface{}, field string) string {
	switch field {
	case "AccessKeyID":
		return EnvAWSAccessKeyID
	case "SecretAccessKey":
		return EnvAWSSecretAccessKey
	case "Region":
		return EnvAWSDefaultRegion
	case "Endpoint":
		return EnvAWSEndpoint
	case "CredentialsFile":
		if _, ok := cfg.(GCPConfig); ok {
			return "gcp.credentials_file / " + EnvGCPCredentials
		}
	}
	return field
}
