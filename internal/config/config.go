package config

import (
	"os"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Config struct {
	Environment string
	DatabaseURL string
	TablePrefix string
	// Logging
	LogLevel    string
	LogFormat   string
	LogDir      string // empty = log to stderr
	LogMaxFiles int
	// Site
	SiteURL   string
	AdminPath string
	NoColor   bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", "sqlite:wireshell.db"),
		TablePrefix: getTablePrefix(env),
		LogLevel:    getEnv("LOG_LEVEL", getDefaultLogLevel(env)),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
		SiteURL:     getEnv("SITE_URL", "http://localhost"),
		AdminPath:   getEnv("ADMIN_PATH", "/admin/"),
		NoColor:     os.Getenv("NO_COLOR") != "",
	}
}

// Validate checks the loaded values before any store is opened.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment, validation.Required, validation.In("dev", "test", "prod")),
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.LogFormat, validation.In("text", "json")),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
		validation.Field(&c.AdminPath, validation.Required),
	)
}

// getDefaultLogLevel returns the default log level based on environment
func getDefaultLogLevel(env string) string {
	if env == "dev" {
		return "debug"
	}
	return "warn"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix, ok := os.LookupEnv("TABLE_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
