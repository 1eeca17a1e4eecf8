package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type HTTPConfig struct {
	Addr        string
	CORSOrigins string
}

type DBConfig struct {
	URL      string
	MaxConns int32
}

type AuthConfig struct {
	JWTSecret       []byte
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

type NATSConfig struct {
	URL           string
	MaxReconnects int
	ReconnectWait time.Duration
}

type AppConfig struct {
	ServiceName string
	LogLevel    string
	Env         string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	NATS        NATSConfig
}

// IsProduction reports whether APP_ENV is "production".
func (c AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func Load() (AppConfig, error) {
	cfg := AppConfig{
		ServiceName: env("SERVICE_NAME", "forum"),
		LogLevel:    env("LOG_LEVEL", "info"),
		Env:         env("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Addr:        env("HTTP_ADDR", ":8080"),
			CORSOrigins: env("CORS_ALLOWED_ORIGINS", ""),
		},
		DB: DBConfig{
			URL:      env("DATABASE_URL", ""),
			MaxConns: int32(envInt("DB_MAX_CONNS", 10)),
		},
		Auth: AuthConfig{
			JWTSecret:       []byte(env("JWT_SECRET", "")),
			AccessTokenTTL:  envDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL: envDuration("REFRESH_TOKEN_TTL", 720*time.Hour),
		},
		NATS: NATSConfig{
			URL:           env("NATS_URL", ""),
			MaxReconnects: envInt("NATS_MAX_RECONNECTS", 5),
			ReconnectWait: envDuration("NATS_RECONNECT_WAIT", 2*time.Second),
		},
	}
	if len(cfg.Auth.JWTSecret) == 0 {
		return AppConfig{}, errors.New("JWT_SECRET is required")
	}
	if cfg.DB.URL == "" && cfg.IsProduction() {
		return AppConfig{}, errors.New("DATABASE_URL is required in production")
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	n, err := strconv.Atoi(env(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(env(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
