package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL      string
	DBConnectTimeout time.Duration
	JWTSecretKey     string
	JWTTTL           time.Duration
	ServerPort       int
	LogLevel         slog.Level
	CORSOrigins      []string
	R2               R2Config
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether every R2 setting is present.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != "" && c.PublicBaseURL != ""
}

func (c R2Config) partiallySet() bool {
	return !c.Enabled() && (c.AccountID != "" || c.AccessKeyID != "" || c.SecretAccessKey != "" || c.BucketName != "" || c.PublicBaseURL != "")
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DB_CONNECT_TIMEOUT", "5s")
	v.SetDefault("JWT_TTL", "24h")
	return v
}

// FromViper builds and validates a Config from already-bound settings.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:      v.GetString("DATABASE_URL"),
		JWTSecretKey:     v.GetString("JWT_SECRET_KEY"),
		ServerPort:       v.GetInt("SERVER_PORT"),
		DBConnectTimeout: v.GetDuration("DB_CONNECT_TIMEOUT"),
		JWTTTL:           v.GetDuration("JWT_TTL"),
		R2: R2Config{
			AccountID:       v.GetString("R2_ACCOUNT_ID"),
			AccessKeyID:     v.GetString("R2_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("R2_SECRET_ACCESS_KEY"),
			BucketName:      v.GetString("R2_BUCKET_NAME"),
			PublicBaseURL:   v.GetString("R2_PUBLIC_BASE_URL"),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}
	if cfg.JWTSecretKey == "" {
		return nil, errors.New("JWT_SECRET_KEY environment variable is not set")
	}
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}
	if cfg.DBConnectTimeout <= 0 {
		return nil, fmt.Errorf("DB_CONNECT_TIMEOUT must be a positive duration, got %q", v.GetString("DB_CONNECT_TIMEOUT"))
	}
	if cfg.JWTTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be a positive duration, got %q", v.GetString("JWT_TTL"))
	}
	if cfg.R2.partiallySet() {
		return nil, errors.New("R2 storage is partially configured: set all R2_* variables or none")
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	return cfg, nil
}
