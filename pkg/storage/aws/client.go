// File: pkg/storage/aws/client.go
package aws

import (
	"context"
	"fmt"
	"geobucket/internal/config"
	"geobucket/internal/provider/registry"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"log/slog"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

func init() {
	registry.RegisterProvider("aws", registry.ProviderRegistration{
		Provider:    common.AWS,
		ConfigCheck: checkConfig,
		Initializer: initialize,
	})
}

// Checks that the credential and region variables are present
func checkConfig(cfg *config.Config, env config.LookupFunc) error {
	_, err := config.AWSConfigFromEnv(env, cfg.AWS)
	return err
}

func initialize(ctx context.Context, cfg *config.Config, env config.LookupFunc, logger *slog.Logger) (storage.ObjectStore, error) {
	awsCfg, err := config.AWSConfigFromEnv(env, cfg.AWS)
	if err != nil {
		return nil, err
	}
	return NewAWSStorage(ctx, awsCfg, logger)
}

// S3API is the subset of *s3.Client used here, so tests can substitute a mock
type S3API interface {
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

type AWSStorage struct {
	client S3API
	region string
	logger *slog.Logger
}

var _ storage.ObjectStore = (*AWSStorage)(nil)

// Opens an S3 session from an explicit config. Nothing is read from the
// environment or shared AWS files here.
func NewAWSStorage(ctx context.Context, cfg config.AWSConfig, logger *slog.Logger) (*AWSStorage, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("%w: AWS region is empty", config.ErrConfiguration)
	}

	opts := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = awssdk.String(cfg.Endpoint)
	}

	return NewAWSStorageWithClient(s3.New(opts), cfg.Region, logger), nil
}

func NewAWSStorageWithClient(client S3API, region string, logger *slog.Logger) *AWSStorage {
	if logger == nil {
		logger = slog.Default()
	}
	return &AWSStorage{
		client: client,
		region: region,
		logger: logger,
	}
}

func (s *AWSStorage) ProviderName() common.Provider {
	return common.AWS
}

func (s *AWSStorage) Close() error {
	// The SDK client holds no resources that need releasing
	return nil
}
