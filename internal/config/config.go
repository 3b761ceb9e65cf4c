// Package config loads and validates run configuration for iconshift
// from file, environment and defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrMissingLegacyModule      = errors.New("legacy module must be set")
	ErrMissingReplacementModule = errors.New("replacement module must be set")
	ErrSameModule               = errors.New("legacy and replacement modules are identical")
	ErrModuleOverlap            = errors.New("replacement module contains the legacy module name")
	ErrNoExtensions             = errors.New("at least one file extension is required")
	ErrBadExtension             = errors.New("extensions must start with a dot")
	ErrNegativeWorkers          = errors.New("workers must be zero or positive")
)

// Defaults.
const (
	DefaultLegacyModule      = "lucide-react"
	DefaultReplacementModule = "@aliimam/icons"
)

// Config holds all settings for a migration run.
type Config struct {
	Root              string   `mapstructure:"root"`
	LegacyModule      string   `mapstructure:"legacy_module"`
	ReplacementModule string   `mapstructure:"replacement_module"`
	MappingFile       string   `mapstructure:"mapping_file"`
	Extensions        []string `mapstructure:"extensions"`
	Exclude           []string `mapstructure:"exclude"`
	Workers           int      `mapstructure:"workers"`
}

// Load reads configuration from configPath (or the default search path
// when empty), applies ICONSHIFT_* environment overrides, and validates
// the result.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("iconshift")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
	}

	viperCfg.SetEnvPrefix("ICONSHIFT")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config

	unmarshalErr := viperCfg.Unmarshal(&cfg)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("root", ".")
	viperCfg.SetDefault("legacy_module", DefaultLegacyModule)
	viperCfg.SetDefault("replacement_module", DefaultReplacementModule)
	viperCfg.SetDefault("mapping_file", "")
	viperCfg.SetDefault("extensions", []string{".ts", ".tsx"})
	viperCfg.SetDefault("exclude", []string{"**/*.test.ts", "**/*.test.tsx"})
	viperCfg.SetDefault("workers", 0)
}

// Validate checks invariants the engine depends on.
func (c *Config) Validate() error {
	if c.LegacyModule == "" {
		return ErrMissingLegacyModule
	}

	if c.ReplacementModule == "" {
		return ErrMissingReplacementModule
	}

	if c.LegacyModule == c.ReplacementModule {
		return fmt.Errorf("%w: %q", ErrSameModule, c.LegacyModule)
	}

	// Residual detection counts occurrences of the legacy name, so a
	// replacement that embeds it would flag every migrated file.
	if strings.Contains(c.ReplacementModule, c.LegacyModule) {
		return fmt.Errorf("%w: %q in %q", ErrModuleOverlap, c.LegacyModule, c.ReplacementModule)
	}

	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("%w: %q", ErrBadExtension, ext)
		}
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeWorkers, c.Workers)
	}

	return nil
}
