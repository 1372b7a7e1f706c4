package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings read from the environment.
type Config struct {
	Addr          string        `env:"COCALC_ADDR" envDefault:":8080"`
	RedisAddr     string        `env:"COCALC_REDIS_ADDR"`
	CacheTTL      time.Duration `env:"COCALC_CACHE_TTL" envDefault:"10m"`
	RateLimit     int           `env:"COCALC_RATE_LIMIT" envDefault:"60"`
	RateWindow    time.Duration `env:"COCALC_RATE_WINDOW" envDefault:"1m"`
	LogLevel      string        `env:"COCALC_LOG_LEVEL" envDefault:"info"`
	LogPretty     bool          `env:"COCALC_LOG_PRETTY" envDefault:"false"`
	DefaultsFile  string        `env:"COCALC_DEFAULTS_FILE"`
	ReportHistory int           `env:"COCALC_REPORT_HISTORY" envDefault:"100"`
}

// Load reads an optional .env file and then parses the environment.
func Load(dotenvFiles ...string) (Config, error) {
	if err := godotenv.Load(dotenvFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}
	return Parse()
}

// Parse loads configuration from environment variables only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.RateLimit <= 0 {
		return fmt.Errorf("COCALC_RATE_LIMIT must be positive, got %d", c.RateLimit)
	}
	if c.RateWindow <= 0 {
		return fmt.Errorf("COCALC_RATE_WINDOW must be positive, got %s", c.RateWindow)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("COCALC_CACHE_TTL must not be negative, got %s", c.CacheTTL)
	}
	return nil
}
