package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"eduresource-api/internal/infrastructure/database"
)

// Config holds the whole application configuration.
// It is populated from environment variables, optionally loaded from .env.
type Config struct {
	App          AppConfig
	Database     *database.DBConfig
	JWT          JWTConfig
	Security     SecurityConfig
	InitialAdmin InitialAdminConfig
	CORS         CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, test, production
	Port        string
	Version     string
	LogLevel    string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type SecurityConfig struct {
	BcryptCost int
}

// InitialAdminConfig is the account the seeder creates on an empty database.
type InitialAdminConfig struct {
	Email    string
	UserName string
	Password string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	db, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "EduResource API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: db,
		JWT: JWTConfig{
			Secret:      os.Getenv("JWT_SECRET"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 8),
		},
		Security: SecurityConfig{
			BcryptCost: getEnvInt("BCRYPT_COST", 10),
		},
		InitialAdmin: InitialAdminConfig{
			Email:    os.Getenv("INITIAL_ADMIN_EMAIL"),
			UserName: os.Getenv("INITIAL_ADMIN_USERNAME"),
			Password: os.Getenv("INITIAL_ADMIN_PASSWORD"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	if c.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("JWT_EXPIRY_HOURS must be positive")
	}
	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	switch c.Database.Driver {
	case "pgx", "postgres", "sqlite3":
	default:
		return fmt.Errorf("DB_DRIVER %q is not supported", c.Database.Driver)
	}

	if c.IsProduction() {
		// HS512 wants at least a 512-bit key
		if len(c.JWT.Secret) < 64 {
			return fmt.Errorf("JWT_SECRET must be at least 64 characters in production")
		}
		if c.Database.Driver != "sqlite3" && c.Database.URL == "" && c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
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
