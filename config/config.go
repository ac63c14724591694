package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Script    ScriptConfig
	Log       LogConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Port    string
	Env     string
	BaseURL string
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	TimeZone string
	Path     string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CookieConfig struct {
	Name   string
	Secure bool
	Domain string
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RPS        float64
	Burst      int
	TrustProxy bool
}

type ScriptConfig struct {
	Timeout time.Duration
	Binary  string
}

type LogConfig struct {
	Level      string
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// LoadConfig reads .env from the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom reads the given env file (when it exists) and lets the
// process environment override every key.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	jwtExpiry, err := time.ParseDuration(v.GetString("JWT_EXPIRY"))
	if err != nil {
		jwtExpiry = 24 * time.Hour
	}

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		cacheTTL = 10 * time.Minute
	}

	scriptTimeout, err := time.ParseDuration(v.GetString("SCRIPT_TIMEOUT"))
	if err != nil {
		scriptTimeout = 2 * time.Minute
	}

	config := &Config{
		App: AppConfig{
			Port:    v.GetString("APP_PORT"),
			Env:     v.GetString("APP_ENV"),
			BaseURL: strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),
		},
		DB: DBConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			TimeZone: v.GetString("DB_TIMEZONE"),
			Path:     v.GetString("DB_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Expiry: jwtExpiry,
		},
		Cookie: CookieConfig{
			Name:   v.GetString("COOKIE_NAME"),
			Secure: v.GetBool("COOKIE_SECURE"),
			Domain: v.GetString("COOKIE_DOMAIN"),
		},
		Cache: CacheConfig{
			TTL: cacheTTL,
		},
		RateLimit: RateLimitConfig{
			RPS:        v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:      v.GetInt("RATE_LIMIT_BURST"),
			TrustProxy: v.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
		Script: ScriptConfig{
			Timeout: scriptTimeout,
			Binary:  v.GetString("SCRIPT_BINARY"),
		},
		Log: LogConfig{
			Level:      v.GetString("LOG_LEVEL"),
			File:       v.GetString("LOG_FILE"),
			MaxSizeMB:  v.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: v.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: v.GetInt("LOG_MAX_AGE_DAYS"),
		},
		Admin: AdminConfig{
			Email:    v.GetString("ADMIN_EMAIL"),
			Password: v.GetString("ADMIN_PASSWORD"),
			Name:     v.GetString("ADMIN_NAME"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, ErrMissingJWTSecret
	}

	if config.Script.Binary == "" {
		if exe, err := os.Executable(); err == nil {
			config.Script.Binary = exe
		}
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_BASE_URL", "http://localhost:8080")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "clinic")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_PATH", "clinic.db")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_EXPIRY", "24h")

	v.SetDefault("COOKIE_NAME", "admin_token")
	v.SetDefault("COOKIE_SECURE", false)

	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("RATE_LIMIT_RPS", 0.2)
	v.SetDefault("RATE_LIMIT_BURST", 5)
	v.SetDefault("RATE_LIMIT_TRUST_PROXY", false)

	v.SetDefault("SCRIPT_TIMEOUT", "2m")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)

	v.SetDefault("ADMIN_NAME", "Administrator")
}
