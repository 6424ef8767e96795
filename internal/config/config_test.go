package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{"source": {"api_key": "secret"}}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "5m", cfg.App.CacheTTL)
	assert.Equal(t, 50, cfg.App.MaxBatchSize)
	assert.Equal(t, "10m", cfg.App.RefreshInterval)
	assert.Equal(t, "secret", cfg.Source.APIKey)
	assert.Equal(t, "in", cfg.Source.Country)
	assert.Equal(t, "newsfeed.db", cfg.Storage.Path)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `{
		"server": {"address": ":9090"},
		"app": {"cache_ttl": "1m", "max_batch_size": 20, "refresh_interval": "2m"},
		"source": {"api_key": "secret", "country": "us"}
	}`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "1m", cfg.App.CacheTTL)
	assert.Equal(t, 20, cfg.App.MaxBatchSize)
	assert.Equal(t, "us", cfg.Source.Country)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfigFile(t, `{"server":`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := New()
	cfg.Source.APIKey = "secret"
	require.NoError(t, cfg.Validate())

	noKey := New()
	assert.ErrorContains(t, noKey.Validate(), "source.api_key")

	badTTL := New()
	badTTL.Source.APIKey = "secret"
	badTTL.App.CacheTTL = "five minutes"
	assert.ErrorContains(t, badTTL.Validate(), "app.cache_ttl")

	badBatch := New()
	badBatch.Source.APIKey = "secret"
	badBatch.App.MaxBatchSize = 0
	assert.ErrorContains(t, badBatch.Validate(), "app.max_batch_size")

	badInterval := New()
	badInterval.Source.APIKey = "secret"
	badInterval.App.RefreshInterval = "soon"
	assert.ErrorContains(t, badInterval.Validate(), "app.refresh_interval")

	noPath := New()
	noPath.Source.APIKey = "secret"
	noPath.Storage.Path = ""
	assert.ErrorContains(t, noPath.Validate(), "storage.path")
}
