// Package configloader loads service configuration from YAML + ENV + defaults.
package configloader

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Options controls a single Load call.
type Options struct {
	// Path to a YAML config file; empty means ENV + defaults only.
	Path string
	// EnvPrefix for environment overrides, e.g. "MOCKUP".
	EnvPrefix string
	// Out is a pointer to the target config struct.
	Out interface{}
	// Defaults are applied before file and ENV values.
	Defaults map[string]interface{}
}

// Load populates opts.Out from defaults, then the config file, then ENV.
func Load(opts Options) error {
	v := viper.New()

	for key, val := range opts.Defaults {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix(opts.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("configloader: read config %q: %w", opts.Path, err)
		}
	}

	if err := decode(v.AllSettings(), opts.Out); err != nil {
		return fmt.Errorf("configloader: decode failed: %w", err)
	}

	if val, ok := opts.Out.(interface{ Validate() error }); ok {
		if err := val.Validate(); err != nil {
			return fmt.Errorf("configloader: validation failed: %w", err)
		}
	}
	return nil
}
