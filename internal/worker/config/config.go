package config

import (
	"time"

	"golang-bias-heatmap/pkg/common"
	"golang-bias-heatmap/pkg/config"
)

// Worker holds stream processing settings.
type Worker struct {
	// ConsumerName is the group consumer prefix; reading loops append their index.
	// Empty means the host name and pid are used.
	ConsumerName    string        `mapstructure:"consumer_name"`
	Concurrency     int           `mapstructure:"concurrency"`
	TaskTimeout     time.Duration `mapstructure:"task_timeout"`
	ReadBlock       time.Duration `mapstructure:"read_block"`
	RetryInterval   time.Duration `mapstructure:"retry_interval"`
	MaxIdleDuration time.Duration `mapstructure:"max_idle_duration"`
	MaxRetry        int           `mapstructure:"max_retry"`
	RecomputeCron   string        `mapstructure:"recompute_cron"`
	// MetricsPort exposes /metrics when positive.
	MetricsPort int `mapstructure:"metrics_port"`
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the worker service.
type Config struct {
	App      config.App      `mapstructure:"app"`
	Logger   config.Logger   `mapstructure:"logger"`
	Database config.Database `mapstructure:"database"`
	Redis    config.Redis    `mapstructure:"redis"`
	Worker   Worker          `mapstructure:"worker"`
	Scoring  config.Scoring  `mapstructure:"scoring"`
	Telegram Telegram        `mapstructure:"telegram"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"app.name":                 "bias-worker-service",
		"logger.level":             "info",
		"logger.encoding":          "json",
		"redis.stream_max_len":     100000,
		"worker.consumer_name":     "",
		"worker.concurrency":       1,
		"worker.task_timeout":      "30s",
		"worker.read_block":        "2s",
		"worker.retry_interval":    "10s",
		"worker.max_idle_duration": "1m",
		"worker.max_retry":         5,
		"worker.recompute_cron":    "",
		"worker.metrics_port":      0,
		"scoring.weights_path":     "configs/weights.yaml",
		"scoring.clamp_bound":      common.DefaultClampBound,
		"scoring.snapshot_scope":   "asset",
	}
}

// Load loads the worker configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, defaults()); err != nil {
		return nil, err
	}
	return &cfg, nil
}
