// Package config defines the bot's configuration and how it is loaded.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Functions accept context.Context as the first parameter.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080". Empty
	// disables the HTTP API.
	Addr string `koanf:"addr"`

	// PetsPath and TalentsPath locate the static dataset.
	PetsPath    string `koanf:"pets_path"`
	TalentsPath string `koanf:"talents_path"`

	// DiscordToken authenticates the chat gateway. Empty disables it.
	DiscordToken string `koanf:"discord_token"`

	// CommandPrefix is the text that routes a chat message to the bot.
	CommandPrefix string `koanf:"command_prefix"`

	// ListDelimiter separates names in list arguments (hatch pairs,
	// prioritise lists, between bounds).
	ListDelimiter string `koanf:"list_delimiter"`

	// QueueSize bounds the in-memory invocation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of command workers.
	WorkerCount int `koanf:"worker_count"`

	// MentionCooldownRate replies are allowed per MentionCooldownSeconds
	// per guild when the bot is mentioned without a command.
	MentionCooldownRate    int `koanf:"mention_cooldown_rate"`
	MentionCooldownSeconds int `koanf:"mention_cooldown_seconds"`

	// CooldownMaxGuilds caps the number of guilds tracked by the limiter.
	CooldownMaxGuilds int `koanf:"cooldown_max_guilds"`

	// PagerSessions caps the number of paginated replies kept for
	// button navigation.
	PagerSessions int `koanf:"pager_sessions"`

	// ResponseCacheItems bounds the HTTP response cache. Zero disables it.
	ResponseCacheItems int `koanf:"response_cache_items"`
}

// New creates a Config holding the defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		PetsPath:               "data/pets.json",
		TalentsPath:            "data/talents.json",
		CommandPrefix:          ">?",
		ListDelimiter:          ",",
		QueueSize:              1024,
		WorkerCount:            runtime.NumCPU() * 2,
		MentionCooldownRate:    1,
		MentionCooldownSeconds: 10,
		CooldownMaxGuilds:      10_000,
		PagerSessions:          1_000,
		ResponseCacheItems:     10_000,
	}
}
