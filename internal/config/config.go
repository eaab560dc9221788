package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for the todo service
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	CORS        CORSConfig
	Application ApplicationConfig
}

// ServerConfig holds HTTP listener configuration
type ServerConfig struct {
	Host            string        `env:"TODO_SERVER_HOST"`
	Port            int           `env:"TODO_SERVER_PORT"`
	ShutdownTimeout time.Duration `env:"TODO_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Path           string `env:"TODO_DB_PATH"`
	DirPermissions uint32 `env:"TODO_DB_DIR_PERMISSIONS"`
}

// CORSConfig holds the cross-origin policy applied to every route
type CORSConfig struct {
	AllowedOrigins []string `env:"TODO_CORS_ALLOWED_ORIGINS"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Verbose bool `env:"TODO_APP_VERBOSE"`
}

// NewConfig creates a new configuration with the service defaults
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "localhost",
			Port:            3000,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           "todos.db",
			DirPermissions: 0755,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Application: ApplicationConfig{
			Verbose: false,
		},
	}
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if host, ok := os.LookupEnv("TODO_SERVER_HOST"); ok {
		c.Server.Host = host
	}
	if port := os.Getenv("TODO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if timeout := os.Getenv("TODO_SHUTDOWN_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Server.ShutdownTimeout = d
		}
	}

	// Database configuration
	if path := os.Getenv("TODO_DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if perms := os.Getenv("TODO_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// CORS configuration
	if origins := os.Getenv("TODO_CORS_ALLOWED_ORIGINS"); origins != "" {
		c.CORS.AllowedOrigins = splitList(origins)
	}

	// Application configuration
	if verbose := os.Getenv("TODO_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: "port must be between 1 and 65535"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}
	if c.Database.Path == "" {
		return &ConfigError{Field: "database.path", Message: "database path cannot be empty"}
	}
	if len(c.CORS.AllowedOrigins) == 0 {
		return &ConfigError{Field: "cors.allowed_origins", Message: "at least one allowed origin is required"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
