package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config-api.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  port: 9090\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, 1000, cfg.Ingest.MaxBatchSize)
	assert.Equal(t, 50, cfg.Heatmap.MaxBatchAssets)
	assert.Equal(t, 24, cfg.Scoring.ClampBound)
	assert.Equal(t, 8.0, cfg.Scoring.DisplayDivisor)
	assert.Equal(t, 2, cfg.Scoring.DisplayDecimals)
}
