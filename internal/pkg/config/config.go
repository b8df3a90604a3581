package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the environment-provided configuration shared by all three
// binaries. PORT carries no default here because each binary applies its
// own (5000 listing, 8080 reporting, 8000 router).
type Config struct {
	Port     string `env:"PORT"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Database DatabaseConfig
	Secrets  SecretsConfig
	Router   RouterConfig
}

type DatabaseConfig struct {
	Host     string `env:"DB_HOST"`
	Port     string `env:"DB_PORT, default=5432"`
	Name     string `env:"DB_NAME"`
	Username string `env:"DB_USERNAME"`
	SSLMode  string `env:"DB_SSLMODE, default=require"`
}

type SecretsConfig struct {
	PasswordSecretARN string `env:"DB_PASSWORD_SECRET_ARN"`
	Region            string `env:"AWS_REGION"`
}

// RouterConfig is only consumed by the router binary. The health-check
// defaults mirror the load balancer target group this router replaced:
// 30s interval, 5s timeout, two consecutive probes to flip state.
type RouterConfig struct {
	ListingTarget       string        `env:"LISTING_TARGET,        default=http://localhost:5000"`
	ReportingTarget     string        `env:"REPORTING_TARGET,      default=http://localhost:8080"`
	HealthCheckInterval time.Duration `env:"HEALTH_CHECK_INTERVAL, default=30s"`
	HealthCheckTimeout  time.Duration `env:"HEALTH_CHECK_TIMEOUT,  default=5s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
