package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"geobucket/internal/config"
	"geobucket/internal/provider/factory"
	"geobucket/internal/provider/registry"
	"geobucket/internal/service"
	"geobucket/internal/ui/prompt"
	"geobucket/pkg/common"
	"geobucket/pkg/geo"
	"geobucket/pkg/storage"
	"geobucket/pkg/storage/storagetest"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Always resolves to the in-memory aws store
type memFactory struct {
	store *storagetest.MemStore
}

func (f memFactory) ResolveProvider(explicit string, locators ...string) (string, error) {
	return "aws", nil
}

func (f memFactory) Registration(name string) (registry.ProviderRegistration, error) {
	return registry.ProviderRegistration{Provider: common.AWS}, nil
}

func (f memFactory) GetStorageProvider(ctx context.Context, name string) (storage.ObjectStore, error) {
	return f.store, nil
}

type stubDataset string

func (d stubDataset) SpatialRef() (string, error) { return string(d), nil }
func (d stubDataset) Close() error                { return nil }

type stubReader map[string]string

func (r stubReader) OpenRaster(path string) (geo.Dataset, error) {
	if !strings.HasSuffix(path, ".tif") {
		return nil, errors.New("not a raster")
	}
	return r.open(path)
}

func (r stubReader) OpenVector(path string) (geo.Dataset, error) {
	if strings.HasSuffix(path, ".tif") {
		return nil, errors.New("not a vector")
	}
	return r.open(path)
}

func (r stubReader) open(path string) (geo.Dataset, error) {
	code, ok := r[path]
	if !ok {
		return nil, fmt.Errorf("%s: no such file", path)
	}
	return stubDataset(`PROJCS["EPSG ` + code + `"]`), nil
}

func (r stubReader) Normalize(wkt string) (geo.CRS, error) {
	name := geo.NameFromWKT(wkt)
	return geo.CRS{Authority: "EPSG", Code: strings.TrimPrefix(name, "EPSG "), Name: name, WKT: wkt}, nil
}

func (r stubReader) Same(a, b geo.CRS) (bool, error) {
	return a.Equal(b), nil
}

type testApp struct {
	app   *appContainer
	store *storagetest.MemStore
	fs    afero.Fs
}

func newTestApp(t *testing.T, promptInput string) *testApp {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfgManager, err := config.NewConfigManagerAt(t.TempDir())
	require.NoError(t, err)
	cfg, err := cfgManager.LoadConfig()
	require.NoError(t, err)

	env := func(key string) (string, bool) { return "", false }
	store := storagetest.NewMemStore(common.AWS, "imagery")
	fs := afero.NewMemMapFs()

	return &testApp{
		app: &appContainer{
			Config:          cfg,
			ConfigManager:   cfgManager,
			ProviderFactory: factory.NewFactory(cfg, env, logger),
			TransferService: service.NewTransferService(memFactory{store: store}, fs, logger),
			GeoService: service.NewGeoService(stubReader{
				"dem.tif":       "32631",
				"roads.geojson": "32631",
				"parcels.shp":   "2154",
			}, logger),
			Prompter: prompt.NewStandardPrompter(strings.NewReader(promptInput), io.Discard),
			Logger:   logger,
		},
		store: store,
		fs:    fs,
	}
}

func (a *testApp) run(args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd(a.app)
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCpAndStat(t *testing.T) {
	a := newTestApp(t, "")
	require.NoError(t, afero.WriteFile(a.fs, "/data/dem.tif", []byte("II*\x00raster"), 0644))

	out, err := a.run("cp", "/data/dem.tif", "s3://imagery/dem.tif")
	require.NoError(t, err)
	assert.Contains(t, out, "Copied '/data/dem.tif' to 's3://imagery/dem.tif'")

	out, err = a.run("stat", "s3://imagery/dem.tif", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"bucket": "imagery"`)
	assert.Contains(t, out, `"size": 10`)

	_, err = a.run("stat", "s3://imagery/missing.tif")
	assert.ErrorIs(t, err, storage.ErrObjectNotFound)

	_, err = a.run("stat", "s3://imagery/dem.tif", "-o", "xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestDownload(t *testing.T) {
	a := newTestApp(t, "")
	a.store.Seed("imagery", "roads.geojson", []byte("{}"))

	out, err := a.run("download", "s3://imagery/roads.geojson", "/cache/roads.geojson")
	require.NoError(t, err)
	assert.Contains(t, out, "Downloaded")

	data, err := afero.ReadFile(a.fs, "/cache/roads.geojson")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestRm(t *testing.T) {
	t.Run("remote confirmed by typing the locator", func(t *testing.T) {
		a := newTestApp(t, "s3://imagery/a.tif\n")
		a.store.Seed("imagery", "a.tif", []byte("x"))

		out, err := a.run("rm", "s3://imagery/a.tif")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted")
		_, _, ok := a.store.Object("imagery", "a.tif")
		assert.False(t, ok)
	})

	t.Run("remote declined", func(t *testing.T) {
		a := newTestApp(t, "y\n")
		a.store.Seed("imagery", "a.tif", []byte("x"))

		out, err := a.run("rm", "s3://imagery/a.tif")
		require.NoError(t, err)
		assert.Contains(t, out, "Deletion cancelled.")
		_, _, ok := a.store.Object("imagery", "a.tif")
		assert.True(t, ok)
	})

	t.Run("local with force", func(t *testing.T) {
		a := newTestApp(t, "")
		require.NoError(t, afero.WriteFile(a.fs, "/data/a.tif", []byte("x"), 0644))

		_, err := a.run("rm", "--force", "/data/a.tif")
		require.NoError(t, err)
		exists, _ := afero.Exists(a.fs, "/data/a.tif")
		assert.False(t, exists)

		_, err = a.run("rm", "-f", "/data/a.tif")
		assert.NoError(t, err)
	})
}

func TestCrsCommands(t *testing.T) {
	a := newTestApp(t, "")

	out, err := a.run("crs", "raster", "dem.tif")
	require.NoError(t, err)
	assert.Contains(t, out, "32631")

	out, err = a.run("crs", "compare", "dem.tif", "roads.geojson", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "equal: true")

	out, err = a.run("crs", "compare", "dem.tif", "parcels.shp")
	assert.ErrorIs(t, err, errCRSMismatch)
	assert.Contains(t, out, "CRS differ")

	_, err = a.run("crs", "vector", "dem.tif")
	assert.ErrorIs(t, err, geo.ErrUnreadableFile)
}

func TestConfigCommands(t *testing.T) {
	a := newTestApp(t, "")

	out, err := a.run("config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No configuration values set")

	_, err = a.run("config", "set", "aws.endpoint", "http://localhost:9000")
	require.NoError(t, err)
	_, err = a.run("config", "set", "default_provider", "GCP")
	require.NoError(t, err)

	out, err = a.run("config", "get", "aws.endpoint")
	require.NoError(t, err)
	assert.Equal(t, "aws.endpoint = http://localhost:9000\n", out)

	out, err = a.run("config", "list")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "aws.endpoint"), strings.Index(out, "default_provider"))

	_, err = a.run("config", "delete", "aws.endpoint")
	require.NoError(t, err)
	_, err = a.run("config", "get", "aws.endpoint")
	assert.ErrorContains(t, err, "not found")

	_, err = a.run("config", "set", "aws.region", "eu-west-1")
	assert.ErrorContains(t, err, "unknown config key")
}

func TestProvidersCommand(t *testing.T) {
	a := newTestApp(t, "")

	out, err := a.run("providers")
	require.NoError(t, err)
	assert.Contains(t, out, "s3://")
	assert.Contains(t, out, "gs://")
}

func TestFlattenConfigMap(t *testing.T) {
	flat := flattenConfigMap(map[string]interface{}{
		"default_provider": "aws",
		"aws": map[string]interface{}{
			"endpoint":       "http://localhost:9000",
			"use_path_style": true,
		},
	})

	assert.Equal(t, map[string]interface{}{
		"default_provider":   "aws",
		"aws.endpoint":       "http://localhost:9000",
		"aws.use_path_style": true,
	}, flat)
}
