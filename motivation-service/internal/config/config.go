package config

import (
	"fmt"
	"log"
	"os"

	"github.com/dnlksnvv/Trainova-sub001/shared/authutils"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Redis  RedisConfig
	OpenAI OpenAIConfig
	JWT    JWTConfig
	Log    LogConfig

	ServerPort         string `yaml:"server_port" env:"SERVER_PORT" env-default:"8086"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// OpenAIConfig is optional: with no API key the service serves the built-in
// quote rotation instead of generated text.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`
	Model   string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

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
