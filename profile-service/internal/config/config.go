package config

import (
	"fmt"
	"log"
	"os"

	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"
	"github.com/dnlksnvv/Trainova-sub001/shared/database"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	JWT      JWTConfig
	Log      LogConfig

	ServerPort         string `yaml:"server_port" env:"SERVER_PORT" env-default:"8082"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST" env-required:"true"`
	Port     string `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"DB_USER" env-required:"true"`
	Password string `yaml:"password" env:"DB_PASSWORD" env-required:"true"`
	Name     string `yaml:"name" env:"DB_NAME" env-required:"true"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxConns int32  `yaml:"max_conns" env:"DB_MAX_CONNS" env-default:"10"`
}

type RabbitMQConfig struct {
	URL string `yaml:"url" env:"RABBITMQ_URL" env-required:"true"`
}

// JWTConfig must carry the same secret and algorithm as the auth service:
// tokens are verified locally, no call back to auth.
type JWTConfig struct {
	Secret    string `yaml:"secret" env:"JWT_SECRET" env-required:"true"`
	Algorithm string `yaml:"algorithm" env:"JWT_ALGORITHM" env-default:"HS256"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

func (c *Config) TokenConfig() authutils.Config {
	return authutils.Config{Secret: c.JWT.Secret, Algorithm: c.JWT.Algorithm}
}

func (c *Config) PostgresConfig() database.PostgresConfig {
	return database.PostgresConfig{
		Host:     c.Database.Host,
		Port:     c.Database.Port,
		User:     c.Database.User,
		Password: c.Database.Password,
		Name:     c.Database.Name,
		SSLMode:  c.Database.SSLMode,
		MaxConns: c.Database.MaxConns,
	}
}

func LoadConfig() (*Config, error) {
	configPath := "config.yml"

	var cfg Config
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
		}
		return &cfg, nil
	}

	log.Printf("Config file '%s' not found, reading environment only", configPath)
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return &cfg, nil
}
