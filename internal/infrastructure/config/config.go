package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// insecureSecret is the placeholder value the original deployment shipped
// with. Starting with it would make every issued token forgeable, so it is
// rejected the same as a missing secret.
const insecureSecret = "your-secret-key"

type Config struct {
	Port      string `env:"PORT,      default=5000"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB,  default=taskmanager"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig
// and rejects misconfiguration that would compromise the deployment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Mongo.URI == "" {
		return errors.New("config: MONGO_URI is required")
	}
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.JWTSecret == insecureSecret {
		return errors.New("config: JWT_SECRET is set to the insecure placeholder value")
	}
	return nil
}
