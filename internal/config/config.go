// In file: internal/config/config.go

// Package config loads the gateway configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// AppConfig holds all configuration shared by the gateway and assistantctl.
type AppConfig struct {
	Port      string `envconfig:"PORT" default:"8001"`
	GinMode   string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	// FixturesFile points at a YAML catalog; empty means the embedded default.
	FixturesFile string `envconfig:"FIXTURES_FILE"`

	// RedisAddr selects the shared ledger. Empty keeps balances in process memory.
	RedisAddr       string `envconfig:"REDIS_ADDR"`
	LedgerKeyPrefix string `envconfig:"LEDGER_KEY_PREFIX" default:"ledger"`

	// DemoAccountID is the account every balance and payment utterance resolves
	// to, since there is no per-user session.
	DemoAccountID string `envconfig:"DEMO_ACCOUNT_ID" default:"123456"`

	ZomatoMockMode bool `envconfig:"ZOMATO_MOCK_MODE" default:"true"`
	AmazonMockMode bool `envconfig:"AMAZON_MOCK_MODE" default:"true"`
	BankMockMode   bool `envconfig:"BANK_MOCK_MODE" default:"true"`

	ToolTimeout    time.Duration `envconfig:"TOOL_TIMEOUT" default:"5s"`
	StreamInterval time.Duration `envconfig:"STREAM_INTERVAL" default:"20ms"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:3001"`
}

// Load reads an optional .env file and then decodes the environment.
//
// The .env file is only consulted outside release mode. In containers
// (GIN_MODE=release) the configuration is provided directly as environment variables.
func Load() (*AppConfig, error) {
	if os.Getenv("GIN_MODE") != "release" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read .env: %w", err)
		}
	}
	return FromEnv()
}

// FromEnv decodes the process environment without touching .env.
func FromEnv() (*AppConfig, error) {
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.DemoAccountID) == "" {
		return errors.New("DEMO_ACCOUNT_ID must not be empty")
	}
	if c.ToolTimeout <= 0 {
		return fmt.Errorf("TOOL_TIMEOUT must be positive, got %s", c.ToolTimeout)
	}
	if c.StreamInterval < 0 {
		return fmt.Errorf("STREAM_INTERVAL must not be negative, got %s", c.StreamInterval)
	}
	return nil
}

// UsesRedis reports whether balances live in Redis rather than in memory.
func (c *AppConfig) UsesRedis() bool {
	return c.RedisAddr != ""
}
