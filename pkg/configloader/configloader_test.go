package configloader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SajeelSafdar99/mockupgenerator-be/pkg/configloader"
)

type testConfig struct {
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
	Nested  struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"nested"`
}

func TestLoad_DefaultsOnly(t *testing.T) {
	var cfg testConfig
	err := configloader.Load(configloader.Options{
		EnvPrefix: "CLTEST",
		Out:       &cfg,
		Defaults: map[string]interface{}{
			"name":         "svc",
			"timeout":      "5s",
			"nested.level": "info",
		},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "svc" || cfg.Timeout != 5*time.Second || cfg.Nested.Level != "info" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "name: from-file\nnested:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	var cfg testConfig
	err := configloader.Load(configloader.Options{
		Path:      path,
		EnvPrefix: "CLTEST",
		Out:       &cfg,
		Defaults:  map[string]interface{}{"name": "default", "timeout": "1s"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-file" {
		t.Errorf("file value not applied: %q", cfg.Name)
	}
	if cfg.Nested.Level != "debug" {
		t.Errorf("nested file value not applied: %q", cfg.Nested.Level)
	}
	if cfg.Timeout != time.Second {
		t.Errorf("default not kept: %v", cfg.Timeout)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	err := configloader.Load(configloader.Options{
		Path: filepath.Join(t.TempDir(), "nope.yaml"),
		Out:  &cfg,
	})
	if err == nil {
		t.Error("expected error for missing config file")
	}
}
