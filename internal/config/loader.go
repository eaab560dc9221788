package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read before the process environment when present.
const DefaultEnvFile = ".env"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: DefaultEnvFile,
	}
}

// WithEnvFile points the loader at a different dotenv file. An empty name
// disables dotenv loading.
func (l *Loader) WithEnvFile(name string) *Loader {
	l.envFile = name
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Fill unset environment variables from the dotenv file
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if l.envFile != "" {
		// godotenv never overwrites variables that are already set
		if err := godotenv.Load(l.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", l.envFile, err)
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(config)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	Host            *string
	Port            *int
	ShutdownTimeout *time.Duration
	DBPath          *string
	AllowedOrigins  []string
	Verbose         *bool
}

// Apply copies every set override onto config
func (o *ConfigOverrides) Apply(config *Config) {
	if o.Host != nil {
		config.Server.Host = *o.Host
	}
	if o.Port != nil {
		config.Server.Port = *o.Port
	}
	if o.ShutdownTimeout != nil {
		config.Server.ShutdownTimeout = *o.ShutdownTimeout
	}
	if o.DBPath != nil {
		config.Database.Path = *o.DBPath
	}
	if len(o.AllowedOrigins) > 0 {
		config.CORS.AllowedOrigins = o.AllowedOrigins
	}
	if o.Verbose != nil {
		config.Application.Verbose = *o.Verbose
	}
}
