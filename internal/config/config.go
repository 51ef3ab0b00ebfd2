package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/forgo/gatekeeper/internal/model"
)

// Storage drivers
const (
	DriverSurrealDB = "surrealdb"
	DriverMemory    = "memory"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Fixture  FixtureConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds storage settings
type DatabaseConfig struct {
	Driver    string
	Host      string
	Port      string
	Namespace string
	Database  string
	User      string
	Password  string
}

// JWTConfig holds JWT signing settings
type JWTConfig struct {
	PrivateKeyPath string
	PublicKeyPath  string
	ExpirationMins int
	Issuer         string
	Guard          string
}

// FixtureConfig holds defaults for the test-user fixture
type FixtureConfig struct {
	Guard              string
	DefaultRoles       string
	DefaultPermissions string
	BcryptCost         int
}

// DefaultAccess returns the configured default access, or nil when none is
// configured
func (f FixtureConfig) DefaultAccess() *model.Access {
	if f.DefaultRoles == "" && f.DefaultPermissions == "" {
		return nil
	}
	return &model.Access{Roles: f.DefaultRoles, Permissions: f.DefaultPermissions}
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	guard := getEnv("AUTH_GUARD", "api")
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Env:          getEnv("SERVER_ENV", "development"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
		},
		Database: DatabaseConfig{
			Driver:    getEnv("DB_DRIVER", DriverSurrealDB),
			Host:      getEnv("DB_HOST", "localhost"),
			Port:      getEnv("DB_PORT", "8000"),
			Namespace: getEnv("DB_NAMESPACE", "gatekeeper"),
			Database:  getEnv("DB_DATABASE", "main"),
			User:      getEnv("DB_USER", "root"),
			Password:  getEnv("DB_PASSWORD", "root"),
		},
		JWT: JWTConfig{
			PrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./keys/private.pem"),
			PublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./keys/public.pem"),
			ExpirationMins: getIntEnv("JWT_EXPIRATION_MINS", 15),
			Issuer:         getEnv("JWT_ISSUER", "gatekeeper.forgo.software"),
			Guard:          guard,
		},
		Fixture: FixtureConfig{
			Guard:              getEnv("TEST_GUARD", guard),
			DefaultRoles:       getEnv("TEST_DEFAULT_ROLES", ""),
			DefaultPermissions: getEnv("TEST_DEFAULT_PERMISSIONS", ""),
			BcryptCost:         getIntEnv("TEST_BCRYPT_COST", 4),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}

	switch c.Database.Driver {
	case DriverMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("DB_DRIVER=memory is not allowed in production"))
		}
	case DriverSurrealDB:
		if c.Database.Host == "" {
			errs = append(errs, errors.New("DB_HOST is required"))
		}
		if c.Database.Port == "" {
			errs = append(errs, errors.New("DB_PORT is required"))
		}
		if c.Database.Namespace == "" {
			errs = append(errs, errors.New("DB_NAMESPACE is required"))
		}
		if c.Database.Database == "" {
			errs = append(errs, errors.New("DB_DATABASE is required"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be '%s' or '%s', got '%s'", DriverSurrealDB, DriverMemory, c.Database.Driver))
	}

	if c.IsProduction() && c.JWT.PrivateKeyPath == "" && c.JWT.PublicKeyPath == "" {
		errs = append(errs, errors.New("JWT_PRIVATE_KEY_PATH or JWT_PUBLIC_KEY_PATH is required in production"))
	}
	if c.JWT.ExpirationMins <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRATION_MINS must be positive"))
	}
	if c.JWT.Guard == "" {
		errs = append(errs, errors.New("AUTH_GUARD is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Validate checks the fixture settings. The server never calls it; only
// code that builds a test-user fixture does.
func (f FixtureConfig) Validate() error {
	var errs []error

	if f.Guard == "" {
		errs = append(errs, errors.New("TEST_GUARD is required"))
	}
	if f.BcryptCost < 4 || f.BcryptCost > 31 {
		errs = append(errs, fmt.Errorf("TEST_BCRYPT_COST must be between 4 and 31, got %d", f.BcryptCost))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
