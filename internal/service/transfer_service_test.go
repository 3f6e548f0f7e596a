package service

import (
	"context"
	"errors"
	"fmt"
	"geobucket/internal/config"
	"geobucket/internal/provider/factory"
	"geobucket/internal/provider/registry"
	"geobucket/pkg/common"
	"geobucket/pkg/storage"
	"geobucket/pkg/storage/storagetest"
	"io"
	"log/slog"
	"strings"
	"testing"

	// Registers the aws and gcp prefixes
	_ "geobucket/internal/provider"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeFactory struct {
	stores  map[string]*storagetest.MemStore
	openErr error
	opened  []string
}

func (f *fakeFactory) ResolveProvider(explicit string, locators ...string) (string, error) {
	if explicit != "" {
		if _, ok := f.stores[explicit]; !ok {
			return "", fmt.Errorf("unsupported provider: %s", explicit)
		}
		return explicit, nil
	}
	for _, loc := range locators {
		switch {
		case strings.HasPrefix(loc, "gs://"):
			return "gcp", nil
		case strings.HasPrefix(loc, "s3://"):
			return "aws", nil
		}
	}
	return "aws", nil
}

func (f *fakeFactory) Registration(name string) (registry.ProviderRegistration, error) {
	p, ok := common.ProviderFromName(name)
	if !ok {
		return registry.ProviderRegistration{}, fmt.Errorf("unsupported provider: %s", name)
	}
	return registry.ProviderRegistration{Provider: p}, nil
}

func (f *fakeFactory) GetStorageProvider(ctx context.Context, name string) (storage.ObjectStore, error) {
	f.opened = append(f.opened, name)
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.stores[name], nil
}

func newTransferFixture() (*TransferService, *fakeFactory, afero.Fs) {
	factory := &fakeFactory{stores: map[string]*storagetest.MemStore{
		"aws": storagetest.NewMemStore(common.AWS, "imagery"),
		"gcp": storagetest.NewMemStore(common.GCP, "imagery"),
	}}
	fs := afero.NewMemMapFs()
	return NewTransferService(factory, fs, discardLogger()), factory, fs
}

func TestTransferService_RoutesByLocatorPrefix(t *testing.T) {
	svc, factory, fs := newTransferFixture()
	ctx := context.Background()
	require.NoError(t, afero.WriteFile(fs, "/data/dem.tif", []byte("dem"), 0644))

	require.NoError(t, svc.CopyOrUpload(ctx, "/data/dem.tif", "gs://imagery/dem.tif", ""))
	require.NoError(t, svc.CopyOrUpload(ctx, "/data/dem.tif", "s3://imagery/dem.tif", ""))

	_, _, ok := factory.stores["gcp"].Object("imagery", "dem.tif")
	assert.True(t, ok)
	_, _, ok = factory.stores["aws"].Object("imagery", "dem.tif")
	assert.True(t, ok)
	assert.Equal(t, []string{"gcp", "aws"}, factory.opened)
	assert.Equal(t, 1, factory.stores["gcp"].Closed())
	assert.Equal(t, 1, factory.stores["aws"].Closed())
}

func TestTransferService_DownloadStatDelete(t *testing.T) {
	svc, factory, fs := newTransferFixture()
	ctx := context.Background()
	factory.stores["aws"].Seed("imagery", "roads.geojson", []byte(`{"type":"FeatureCollection"}`))

	require.NoError(t, svc.Download(ctx, "s3://imagery/roads.geojson", "/cache/roads.geojson", ""))
	data, err := afero.ReadFile(fs, "/cache/roads.geojson")
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection"}`, string(data))

	info, err := svc.Stat(ctx, "s3://imagery/roads.geojson", "")
	require.NoError(t, err)
	assert.Equal(t, common.AWS, info.Provider)

	require.NoError(t, svc.DeleteIfExists(ctx, "s3://imagery/roads.geojson", ""))
	_, err = svc.Stat(ctx, "s3://imagery/roads.geojson", "")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	require.NoError(t, svc.DeleteIfExists(ctx, "/cache/roads.geojson", ""))
	require.NoError(t, svc.DeleteIfExists(ctx, "/cache/roads.geojson", ""))
}

func TestTransferService_ExplicitProvider(t *testing.T) {
	svc, factory, _ := newTransferFixture()
	factory.stores["gcp"].Seed("imagery", "a.tif", []byte("x"))

	info, err := svc.Stat(context.Background(), "gs://imagery/a.tif", "gcp")
	require.NoError(t, err)
	assert.Equal(t, common.GCP, info.Provider)
}

// A provider flag that contradicts the locator prefix must fail before any
// local filesystem access, not treat the remote locator as a local path.
func TestTransferService_ExplicitProviderConflictsWithPrefix(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/data/a.tif", []byte("x"), 0644))
	svc := NewTransferService(factory.NewFactory(&config.Config{}, nil, discardLogger()), fs, discardLogger())
	ctx := context.Background()

	err := svc.DeleteIfExists(ctx, "s3://imagery/a.tif", "gcp")
	assert.ErrorContains(t, err, "belongs to provider aws")

	err = svc.CopyOrUpload(ctx, "/data/a.tif", "s3://imagery/a.tif", "gcp")
	assert.ErrorContains(t, err, "belongs to provider aws")
	exists, err := afero.DirExists(fs, "s3:")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Stat(ctx, "gs://imagery/a.tif", "aws")
	assert.ErrorContains(t, err, "belongs to provider gcp")
}

func TestTransferService_Errors(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		svc, _, _ := newTransferFixture()
		err := svc.DeleteIfExists(context.Background(), "s3://imagery/a.tif", "azure")
		assert.ErrorContains(t, err, "error resolving provider")
	})

	t.Run("session failure", func(t *testing.T) {
		svc, factory, _ := newTransferFixture()
		factory.openErr = errors.New("AWS_ACCESS_KEY_ID is not set")
		err := svc.Download(context.Background(), "s3://imagery/a.tif", "/cache/a.tif", "")
		assert.ErrorIs(t, err, factory.openErr)
		assert.ErrorContains(t, err, "error initializing provider")
	})

	t.Run("missing object", func(t *testing.T) {
		svc, _, fs := newTransferFixture()
		err := svc.Download(context.Background(), "s3://imagery/none.tif", "/cache/none.tif", "")
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
		exists, _ := afero.Exists(fs, "/cache/none.tif")
		assert.False(t, exists)
	})
}
