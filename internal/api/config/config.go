package config

import (
	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/config"
)

// Ingest holds intake limits.
type Ingest struct {
	MaxBatchSize int `mapstructure:"max_batch_size"`
}

// Heatmap holds read-side limits.
type Heatmap struct {
	MaxBatchAssets int    `mapstructure:"max_batch_assets"`
	AssetCacheTTL  string `mapstructure:"asset_cache_ttl"`
}

// Config holds the full configuration for the API service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	API      config.API      `mapstructure:"api"`
	Ingest   Ingest          `mapstructure:"ingest"`
	Heatmap  Heatmap         `mapstructure:"heatmap"`
	Scoring  config.Scoring  `mapstructure:"scoring"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                 "bias-api-service",
		"logger.level":             "info",
		"logger.encoding":          "json",
		"api.port":                 8080,
		"api.rate_limit":           50.0,
		"redis.stream_max_len":     100000,
		"ingest.max_batch_size":    common.DefaultMaxIngestBatchSize,
		"heatmap.max_batch_assets": common.DefaultMaxHeatmapAssets,
		"heatmap.asset_cache_ttl":  "0s",
		"scoring.clamp_bound":      common.DefaultClampBound,
		"scoring.display_divisor":  common.DefaultDisplayDivisor,
		"scoring.display_decimals": common.DefaultDisplayDecimals,
	}
}

// Load loads the API configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}
