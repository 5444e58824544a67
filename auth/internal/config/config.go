package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/database"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the auth service configuration. All fields are populated
// eagerly from the environment; missing required values abort startup.
type Config struct {
	Env        string `envconfig:"ENV" default:"development"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ServerPort string `envconfig:"SERVER_PORT" default:"8081"`

	// Database (PostgreSQL: users + token blacklist)
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`

	// Redis (rate limiter store)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// RabbitMQ (user lifecycle events)
	RabbitMQURL string `envconfig:"RABBITMQ_URL" required:"true"`

	// Token subsystem. Secret and algorithm must match every other service.
	JWTSecret                       string `envconfig:"JWT_SECRET" required:"true"`
	JWTAlgorithm                    string `envconfig:"JWT_ALGORITHM" default:"HS256"`
	AccessTokenExpireSeconds        int    `envconfig:"ACCESS_TOKEN_EXPIRE_SECONDS" default:"3600"`
	RefreshTokenExpireSeconds       int    `envconfig:"REFRESH_TOKEN_EXPIRE_SECONDS" default:"604800"`
	ResetPasswordTokenExpireMinutes int    `envconfig:"RESET_PASSWORD_TOKEN_EXPIRE_MINUTES" default:"30"`

	// Revocation store policy while Postgres is unreachable: reject all
	// tokens (true) or keep serving (false).
	BlacklistFailClosed bool `envconfig:"BLACKLIST_FAIL_CLOSED" default:"false"`

	PasswordPepper string `envconfig:"PASSWORD_PEPPER" required:"true"`

	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// TokenConfig maps the env surface onto the shared token subsystem config.
func (c *Config) TokenConfig() authutils.Config {
	return authutils.Config{
		Secret:                c.JWTSecret,
		Algorithm:             c.JWTAlgorithm,
		AccessTokenTTL:        time.Duration(c.AccessTokenExpireSeconds) * time.Second,
		RefreshTokenTTL:       time.Duration(c.RefreshTokenExpireSeconds) * time.Second,
		ResetPasswordTokenTTL: time.Duration(c.ResetPasswordTokenExpireMinutes) * time.Minute,
	}
}

// PostgresConfig maps the DB fields onto the shared pool config.
func (c *Config) PostgresConfig() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		Name:     c.DBName,
		SSLMode:  c.DBSSLMode,
		MaxConns: c.DBMaxConns,
	}
}

// GetAllowedOrigins splits the CORS origins string into a slice.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig loads configuration from the environment, optionally seeded
// from a .env file.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("error processing env vars: %w", err)
	}
	return &cfg, nil
}
