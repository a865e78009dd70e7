package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/felixgeelhaar/focusos/internal/shared/infrastructure/security"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultUserID is the single local user when no session is present.
const DefaultUserID = "00000000-0000-0000-0000-000000000001"

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv    string
	LogLevel  string
	LogFormat string
	UserID    string
	TimeZone  string

	// Database
	DatabaseDriver string
	DatabaseURL    string
	SQLitePath     string

	// Redis
	RedisURL      string
	ScoreReuseTTL time.Duration

	// RabbitMQ
	RabbitMQURL string

	// HTTP API
	HTTPAddr    string
	JWTSecret   string
	TestAuth    bool
	TestUserID  string
	CORSOrigins []string

	// MCP
	MCPAddr      string
	MCPAuthToken string
}

// fileConfig is the optional YAML overlay. Environment variables win.
type fileConfig struct {
	AppEnv         string   `yaml:"app_env"`
	LogLevel       string   `yaml:"log_level"`
	LogFormat      string   `yaml:"log_format"`
	UserID         string   `yaml:"user_id"`
	TimeZone       string   `yaml:"timezone"`
	DatabaseDriver string   `yaml:"database_driver"`
	DatabaseURL    string   `yaml:"database_url"`
	SQLitePath     string   `yaml:"sqlite_path"`
	RedisURL       string   `yaml:"redis_url"`
	ScoreReuseTTL  string   `yaml:"score_reuse_ttl"`
	RabbitMQURL    string   `yaml:"rabbitmq_url"`
	HTTPAddr       string   `yaml:"http_addr"`
	JWTSecret      string   `yaml:"jwt_secret"`
	CORSOrigins    []string `yaml:"cors_origins"`
	MCPAddr        string   `yaml:"mcp_addr"`
	MCPAuthToken   string   `yaml:"mcp_auth_token"`
}

// Load loads configuration from .env, the FOCUSOS_CONFIG file and the environment.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("FOCUSOS_CONFIG"))
}

// LoadFile is Load with an explicit overlay path; an empty path skips the file.
func LoadFile(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	var file fileConfig
	if path != "" {
		data, err := security.SafeReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	reuseTTL := 10 * time.Minute
	if file.ScoreReuseTTL != "" {
		d, err := time.ParseDuration(file.ScoreReuseTTL)
		if err != nil {
			return nil, fmt.Errorf("invalid score_reuse_ttl: %w", err)
		}
		reuseTTL = d
	}

	cors := file.CORSOrigins
	if len(cors) == 0 {
		cors = []string{"http://localhost:3000"}
	}

	cfg := &Config{
		AppEnv:    getEnv("APP_ENV", or(file.AppEnv, "development")),
		LogLevel:  getEnv("LOG_LEVEL", or(file.LogLevel, "info")),
		LogFormat: getEnv("LOG_FORMAT", or(file.LogFormat, "text")),
		UserID:    getEnv("FOCUSOS_USER_ID", or(file.UserID, DefaultUserID)),
		TimeZone:  getEnv("FOCUSOS_TIMEZONE", or(file.TimeZone, "America/Chicago")),

		DatabaseDriver: getEnv("DATABASE_DRIVER", file.DatabaseDriver),
		DatabaseURL:    getEnv("DATABASE_URL", file.DatabaseURL),
		SQLitePath:     getEnv("SQLITE_PATH", or(file.SQLitePath, defaultSQLitePath())),

		RedisURL:      getEnv("REDIS_URL", file.RedisURL),
		ScoreReuseTTL: getDurationEnv("SCORE_REUSE_TTL", reuseTTL),

		RabbitMQURL: getEnv("RABBITMQ_URL", file.RabbitMQURL),

		HTTPAddr:    getEnv("HTTP_ADDR", or(file.HTTPAddr, "0.0.0.0:8080")),
		JWTSecret:   getEnv("JWT_SECRET", file.JWTSecret),
		TestAuth:    getBoolEnv("TEST_AUTH", false),
		TestUserID:  getEnv("TEST_USER_ID", DefaultUserID),
		CORSOrigins: getListEnv("CORS_ORIGINS", cors),

		MCPAddr:      getEnv("MCP_ADDR", or(file.MCPAddr, "0.0.0.0:8082")),
		MCPAuthToken: getEnv("MCP_AUTH_TOKEN", file.MCPAuthToken),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesSQLite reports whether the local SQLite store is selected.
func (c *Config) UsesSQLite() bool {
	if c.DatabaseDriver != "" {
		return c.DatabaseDriver == "sqlite"
	}
	return c.DatabaseURL == ""
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "focusos.db"
	}
	return filepath.Join(home, ".focusos", "focusos.db")
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
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

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
