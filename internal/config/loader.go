package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variable names.
const (
	EnvPrefix = "GOBU_"
	EnvFile   = "GOBU_CONFIG"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if GOBU_CONFIG is set
//  3. env (prefix GOBU_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// GOBU_QUEUE_SIZE -> queue_size; underscores are kept to match the
	// flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.PetsPath == "" || c.TalentsPath == "":
		return fmt.Errorf("%w: pets_path and talents_path must not be empty", ErrInvalidConfig)
	case c.Addr == "" && c.DiscordToken == "":
		return fmt.Errorf("%w: addr must not be empty without a discord_token", ErrInvalidConfig)
	case strings.TrimSpace(c.CommandPrefix) == "":
		return fmt.Errorf("%w: command_prefix must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.ListDelimiter) == "":
		return fmt.Errorf("%w: list_delimiter must not be blank", ErrInvalidConfig)
	case c.QueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MentionCooldownRate <= 0 || c.MentionCooldownSeconds <= 0:
		return fmt.Errorf("%w: mention cooldown rate and window must be positive", ErrInvalidConfig)
	case c.CooldownMaxGuilds <= 0 || c.PagerSessions <= 0:
		return fmt.Errorf("%w: cooldown_max_guilds and pager_sessions must be positive", ErrInvalidConfig)
	case c.ResponseCacheItems < 0:
		return fmt.Errorf("%w: response_cache_items must not be negative", ErrInvalidConfig)
	case c.LogFormat != "text" && c.LogFormat != "json":
		return fmt.Errorf("%w: log_format must be text or json", ErrInvalidConfig)
	}
	return nil
}
