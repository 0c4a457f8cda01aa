package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL, default=15m"`
	ResetTokenTTL  time.Duration `env:"RESET_TOKEN_TTL,  default=24h"`
	// ResetBaseURL is the frontend page the reset link points at; the token
	// is appended as a query parameter.
	ResetBaseURL string `env:"RESET_BASE_URL, default=http://localhost:3000/reset-password"`

	Mongo MongoConfig
	Redis RedisConfig
	SMTP  SMTPConfig
	Brute BruteConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=localhost"`
	Port     int    `env:"SMTP_PORT, default=25"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM, default=no-reply@localhost"`
	Workers  int    `env:"SMTP_WORKERS, default=2"`
}

type BruteConfig struct {
	MaxAttempts int           `env:"BRUTE_MAX_ATTEMPTS, default=5"`
	Window      time.Duration `env:"BRUTE_WINDOW,       default=15m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
