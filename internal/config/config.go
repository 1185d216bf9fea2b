package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Runtime is the process configuration read from the environment.
type Runtime struct {
	DataDir        string `env:"BLOSSOM_DATA_DIR"         envDefault:"config/blossom"`
	Language       string `env:"BLOSSOM_LANGUAGE"         envDefault:"en_us"`
	DiscordToken   string `env:"BLOSSOM_DISCORD_TOKEN"`
	DiscordGuildID string `env:"BLOSSOM_DISCORD_GUILD_ID"`
	DatabaseURL    string `env:"BLOSSOM_DATABASE_URL"`
	NoColor        bool   `env:"BLOSSOM_LOG_NO_COLOR"`
	Workers        int    `env:"BLOSSOM_WORKERS"          envDefault:"8"`
}

// LoadRuntime loads the runtime configuration from the environment and validates it.
func LoadRuntime() (*Runtime, error) {
	// .env is optional when the variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	var cfg Runtime
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Runtime) validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("config: BLOSSOM_DATA_DIR must not be empty")
	}
	if strings.TrimSpace(c.Language) == "" {
		return fmt.Errorf("config: BLOSSOM_LANGUAGE must not be empty")
	}
	if c.Workers <= 0 {
		return fmt.Errorf("config: BLOSSOM_WORKERS must be positive, got %d", c.Workers)
	}

	for _, r := range c.DiscordGuildID {
		if r < '0' || r > '9' {
			return fmt.Errorf("config: BLOSSOM_DISCORD_GUILD_ID must be a Discord guild ID (digits only)")
		}
	}

	if c.DatabaseURL != "" {
		parsed, err := url.Parse(c.DatabaseURL)
		if err != nil {
			return fmt.Errorf("config: invalid BLOSSOM_DATABASE_URL (%q): %w", c.DatabaseURL, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("config: invalid BLOSSOM_DATABASE_URL (%q): missing scheme or host", c.DatabaseURL)
		}
	}

	return nil
}
