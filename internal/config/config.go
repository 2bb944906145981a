package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string
	ServerPort    string
	SessionSecret string

	AuthEnabled   bool
	AdminUsername string
	AdminPassword string

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string

	// empty disables the report cache
	RedisAddr      string
	ReportCacheTTL time.Duration

	DBMaxOpenConns     int
	DBMaxIdleConns     int
	DBConnMaxLifetime  time.Duration
	DBConnectAttempts  int
	DBConnectRetryWait time.Duration
}

// Load reads .env (when present) and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL"))),
		LogFormat:     strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT"))),
		RedisAddr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),

		DBConnectRetryWait: 2 * time.Second,
	}

	var errs []error
	var err error

	if cfg.AuthEnabled, err = boolFromEnv("AUTH_ENABLED", true); err != nil {
		errs = append(errs, err)
	}
	ttl, err := intFromEnv("REPORT_CACHE_TTL_SECONDS", 120)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.ReportCacheTTL = time.Duration(ttl) * time.Second

	if cfg.DBMaxOpenConns, err = intFromEnv("DB_MAX_OPEN_CONNS", 25); err != nil {
		errs = append(errs, err)
	}
	if cfg.DBMaxIdleConns, err = intFromEnv("DB_MAX_IDLE_CONNS", 10); err != nil {
		errs = append(errs, err)
	}
	lifetime, err := intFromEnv("DB_CONN_MAX_LIFETIME_SECONDS", 300)
	if err != nil {
		errs = append(errs, err)
	}
	cfg.DBConnMaxLifetime = time.Duration(lifetime) * time.Second
	if cfg.DBConnectAttempts, err = intFromEnv("DB_CONNECT_ATTEMPTS", 10); err != nil {
		errs = append(errs, err)
	}

	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
		}
	}

	if cfg.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is not set"))
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.AuthEnabled && cfg.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is not set"))
	}
	if cfg.AdminUsername == "" {
		cfg.AdminUsername = "admin"
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = "Admin123!"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
	}
	if cfg.DBConnectAttempts < 1 {
		cfg.DBConnectAttempts = 1
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// ReportCacheEnabled reports whether a Redis address was configured.
func (c *Config) ReportCacheEnabled() bool {
	return c.RedisAddr != "" && c.ReportCacheTTL > 0
}

func intFromEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func boolFromEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return b, nil
}
