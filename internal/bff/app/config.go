package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/taxrefund/pkg/jwtx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"
)

// Config is resolved in three layers: built-in defaults, then the optional
// YAML file named by BFF_CONFIG_FILE, then environment variables.
type Config struct {
	RecordServiceURL    string        `yaml:"record_service_url"`    // Record service base URL (default: http://localhost:8080)
	UpstreamCallTimeout time.Duration `yaml:"upstream_call_timeout"` // Per-call upstream timeout (default: 5s)
	TaxYears            []int         `yaml:"tax_years"`             // Optional: fixed fallback years for the dashboard
	TaxYearWindow       int           `yaml:"tax_year_window"`       // Recent years used when TaxYears is empty (default: 3)
	FanOutLimit         int           `yaml:"fan_out_limit"`         // Concurrent per-user calls for refund status (default: 8)

	StoreDriver  string `yaml:"store_driver"`  // sqlite or postgres (default: sqlite)
	DatabaseFile string `yaml:"database_file"` // SQLite file (default: bff.db)
	DatabaseURL  string `yaml:"-"`             // Postgres URL, required for the postgres driver

	SessionSecret   string        `yaml:"-"`              // HS256 secret, at least 32 bytes. Random per process when empty
	SessionIssuer   string        `yaml:"session_issuer"` // iss claim (default: taxrefund-bff)
	SessionTTL      time.Duration `yaml:"session_ttl"`    // Session lifetime (default: 12h)
	PepperFile      string        `yaml:"pepper_file"`    // Password pepper file, created when missing (default: pepper)
	DefaultPassword string        `yaml:"-"`              // Optional: accepted for users without a stored password

	AllowedOrigins []string `yaml:"allowed_origins"` // CORS origins (default: http://localhost:3000)

	Env                  string        `yaml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        `yaml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        `yaml:"log_format"`            // Log format (json, text) (default: json)
	Port                 int           `yaml:"port"`                  // HTTP server port (default: 3000)
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval"` // Session pruning interval (default: 1h)
}

func defaultConfig() Config {
	return Config{
		RecordServiceURL:     "http://localhost:8080",
		UpstreamCallTimeout:  5 * time.Second,
		TaxYearWindow:        3,
		FanOutLimit:          8,
		StoreDriver:          StoreDriverSQLite,
		DatabaseFile:         "bff.db",
		SessionIssuer:        "taxrefund-bff",
		SessionTTL:           jwtx.DefaultSessionTTL,
		PepperFile:           "pepper",
		AllowedOrigins:       []string{"http://localhost:3000"},
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 3000,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: time.Hour,
	}
}

// LoadDotEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("BFF_CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// The record service variable keeps the name the UI deployment already uses.
	cfg.RecordServiceURL = getEnvOrDefault("BADHTAXFILESERV_BASEURL", cfg.RecordServiceURL)
	cfg.UpstreamCallTimeout = getEnvDurationOrDefault("UPSTREAM_CALL_TIMEOUT", cfg.UpstreamCallTimeout)
	cfg.TaxYears = getEnvIntListOrDefault("TAX_YEARS", cfg.TaxYears)
	cfg.TaxYearWindow = getEnvIntOrDefault("TAX_YEAR_WINDOW", cfg.TaxYearWindow)
	cfg.FanOutLimit = getEnvIntOrDefault("FAN_OUT_LIMIT", cfg.FanOutLimit)

	cfg.StoreDriver = strings.ToLower(getEnvOrDefault("STORE_DRIVER", cfg.StoreDriver))
	cfg.DatabaseFile = getEnvOrDefault("BFF_DATABASE_FILE", cfg.DatabaseFile)
	cfg.DatabaseURL = getEnvOrDefault("DATABASE_URL", cfg.DatabaseURL)

	cfg.SessionSecret = getEnvOrDefault("SESSION_SECRET", cfg.SessionSecret)
	cfg.SessionIssuer = getEnvOrDefault("SESSION_ISSUER", cfg.SessionIssuer)
	cfg.SessionTTL = getEnvDurationOrDefault("SESSION_TTL", cfg.SessionTTL)
	cfg.PepperFile = getEnvOrDefault("BFF_PEPPER_FILE", cfg.PepperFile)
	cfg.DefaultPassword = getEnvOrDefault("AUTH_DEFAULT_PASSWORD", cfg.DefaultPassword)

	cfg.AllowedOrigins = getEnvListOrDefault("CORS_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot start with.
func (c Config) Validate() error {
	var errs []error

	if c.RecordServiceURL == "" {
		errs = append(errs, errors.New("record service URL is required"))
	}
	switch c.StoreDriver {
	case StoreDriverSQLite:
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown store driver %q", c.StoreDriver))
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < jwtx.MinSecretLen {
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", jwtx.MinSecretLen))
	}
	if c.TaxYearWindow < 1 && len(c.TaxYears) == 0 {
		errs = append(errs, errors.New("TAX_YEAR_WINDOW must be positive when TAX_YEARS is unset"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvIntListOrDefault falls back to defaultValue if any entry is not an integer.
func getEnvIntListOrDefault(key string, defaultValue []int) []int {
	parts := getEnvListOrDefault(key, nil)
	if parts == nil {
		return defaultValue
	}

	out := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return defaultValue
		}
		out = append(out, n)
	}
	return out
}
