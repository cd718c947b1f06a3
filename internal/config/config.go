// Package config assembles the service configuration from YAML, ENV and
// defaults.
package config

import (
	"fmt"

	"github.com/SajeelSafdar99/mockupgenerator-be/internal/auth"
	"github.com/SajeelSafdar99/mockupgenerator-be/internal/storage/mongo"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/configloader"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/httpserver"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/logger"
	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/telemetry"
)

type Config struct {
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`

	// PublicBaseURL is the externally visible origin used to build file
	// download links.
	PublicBaseURL string `mapstructure:"public_base_url"`

	// MaxUploadBytes caps a single file upload.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// FileOrigins is the CORS allow-list for the public file route.
	FileOrigins []string `mapstructure:"file_origins"`

	HTTP      httpserver.Config `mapstructure:"http"`
	JWT       auth.Config       `mapstructure:"jwt"`
	Mongo     mongo.Config      `mapstructure:"mongo"`
	Logging   logger.Config     `mapstructure:"logging"`
	Telemetry telemetry.Config  `mapstructure:"telemetry"`
}

func Load(path string) (*Config, error) {
	var cfg Config
	if err := configloader.Load(configloader.Options{
		Path:      path,
		EnvPrefix: "MOCKUP",
		Out:       &cfg,
		Defaults: map[string]interface{}{
			"service_name":    "mockupgenerator-be",
			"service_version": "v1.0.0",
			"public_base_url": "http://localhost:8080",

			"max_upload_bytes": 10 * 1024 * 1024,
			"file_origins":     []string{"http://localhost:3000"},

			"http.addr":             ":8080",
			"http.read_timeout":     "10s",
			"http.write_timeout":    "30s",
			"http.idle_timeout":     "60s",
			"http.shutdown_timeout": "5s",
			"http.metrics_path":     "/metrics",
			"http.healthz_path":     "/healthz",
			"http.readyz_path":      "/readyz",

			"jwt.access_ttl":   "15m",
			"jwt.refresh_ttl":  "168h",
			"jwt.remember_ttl": "720h",

			"mongo.database": "mockupgenerator",

			"logging.level":    "info",
			"logging.dev_mode": false,

			"telemetry.endpoint":        "otel-collector:4317",
			"telemetry.service_name":    "mockupgenerator-be",
			"telemetry.service_version": "v1.0.0",
			"telemetry.insecure":        true,
			"telemetry.sampler_ratio":   1.0,
		},
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return fmt.Errorf("config: service_name is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("config: max_upload_bytes must be positive")
	}
	c.JWT.ApplyDefaults()
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	c.Mongo.ApplyDefaults()
	if err := c.Mongo.Validate(); err != nil {
		return err
	}
	c.Logging.ApplyDefaults()
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return nil
}
