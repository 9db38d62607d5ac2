package config

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const EnvDevelopment = "development"

type Config struct {
	AppEnv           string        `envconfig:"APP_ENV"           default:"production"`
	HTTPPort         string        `envconfig:"HTTP_PORT"         default:":3000"`
	GrpcPort         string        `envconfig:"GRPC_PORT"         default:":50051"` // gRPC health port
	LogLevel         string        `envconfig:"LOG_LEVEL"         default:"info"`
	DatabaseURL      string        `envconfig:"DATABASE_URL"` // empty selects the in-memory stores
	SeedData         bool          `envconfig:"SEED_DATA"         default:"true"`
	PlaceholderImage string        `envconfig:"PLACEHOLDER_IMAGE" default:"https://placehold.co/600x400?text=No+Image"`
	ShutdownTimeout  time.Duration `envconfig:"SHUTDOWN_TIMEOUT"  default:"10s"`
}

func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, EnvDevelopment)
}

func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

var (
	config Config
	once   sync.Once
)

// Load reads the process environment into a fresh Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process configuration from environment variables: %w", err)
	}
	if cfg.HTTPPort == "" || cfg.GrpcPort == "" {
		return nil, fmt.Errorf("HTTP_PORT and GRPC_PORT must not be empty")
	}
	return &cfg, nil
}

// LoadConfig loads an optional .env file, then the environment, once per
// process. Invalid configuration is fatal.
func LoadConfig(logger *logrus.Logger) *Config {
	once.Do(func() {
		err := godotenv.Load()
		if err != nil && !os.IsNotExist(err) {
			logger.Warnf("Error loading .env file (but continuing): %v", err)
		} else if err == nil {
			logger.Info("Loaded configuration from .env file")
		}

		cfg, err := Load()
		if err != nil {
			logger.Fatalf("Configuration error: %v", err)
		}
		config = *cfg

		logger.Infof("Configuration loaded: AppEnv=%s, HTTP Port=%s, GRPC Port=%s, LogLevel=%s",
			config.AppEnv, config.HTTPPort, config.GrpcPort, config.LogLevel)
		if config.UsePostgres() {
			logger.Info("Configuration loaded: DatabaseURL is set, using PostgreSQL stores")
		} else {
			logger.Info("Configuration loaded: DatabaseURL is not set, using in-memory stores")
		}
	})
	return &config
}
