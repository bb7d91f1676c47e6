// Package config provides YAML-based configuration loading for Podium.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Podium configuration, loaded from podium.yaml.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Server    ServerConfig    `yaml:"server"`
	Poll      PollConfig      `yaml:"poll"`
	Announce  AnnounceConfig  `yaml:"announce"`
	Retention RetentionConfig `yaml:"retention"`
}

// StorageConfig selects and configures the record store backend.
type StorageConfig struct {
	Driver   string `yaml:"driver"` // "sqlite" (default) or "mysql"
	Path     string `yaml:"path"`   // sqlite database file
	Host     string `yaml:"host"`   // mysql only
	Port     int    `yaml:"port"`   // mysql only
	Database string `yaml:"database"`
}

// ServerConfig holds settings for the display/admin HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// PollConfig holds viewer cadences, in seconds. The tick recomputes derived
// state from the cached snapshot; session and message control how often the
// store is re-fetched. FreshWindow is how long a newly arrived announcement
// keeps its visual emphasis.
type PollConfig struct {
	TickSeconds        int `yaml:"tick_seconds"`
	SessionSeconds     int `yaml:"session_seconds"`
	MessageSeconds     int `yaml:"message_seconds"`
	FreshWindowSeconds int `yaml:"fresh_window_seconds"`
}

// AnnounceConfig configures optional chat mirrors for operator messages.
// Empty values disable the corresponding mirror.
type AnnounceConfig struct {
	SlackWebhook   string `yaml:"slack_webhook"`
	DiscordToken   string `yaml:"discord_token"`
	DiscordChannel string `yaml:"discord_channel"`
}

// RetentionConfig controls the janitor sweep that hides old announcements.
type RetentionConfig struct {
	MessageHours int    `yaml:"message_hours"` // 0 disables the sweep
	Schedule     string `yaml:"schedule"`      // 5-field cron expression
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Config with all defaults applied, used when no config
// file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Storage.Driver == "" {
		c.Storage.Driver = "sqlite"
	}
	if c.Storage.Driver == "sqlite" && c.Storage.Path == "" {
		c.Storage.Path = os.ExpandEnv("${HOME}/.podium/podium.db")
	}
	if c.Storage.Driver == "mysql" {
		if c.Storage.Host == "" {
			c.Storage.Host = "127.0.0.1"
		}
		if c.Storage.Port == 0 {
			c.Storage.Port = 3306
		}
		if c.Storage.Database == "" {
			c.Storage.Database = "podium"
		}
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Poll.TickSeconds == 0 {
		c.Poll.TickSeconds = 1
	}
	if c.Poll.SessionSeconds == 0 {
		c.Poll.SessionSeconds = 2
	}
	if c.Poll.MessageSeconds == 0 {
		c.Poll.MessageSeconds = 5
	}
	if c.Poll.FreshWindowSeconds == 0 {
		c.Poll.FreshWindowSeconds = 5
	}
	if c.Retention.Schedule == "" {
		c.Retention.Schedule = "0 4 * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.Storage.Driver {
	case "sqlite":
		if c.Storage.Path == "" {
			errs = append(errs, "storage.path is required for sqlite")
		}
	case "mysql":
		if c.Storage.Database == "" {
			errs = append(errs, "storage.database is required for mysql")
		}
	default:
		errs = append(errs, fmt.Sprintf("storage.driver %q is not supported (sqlite, mysql)", c.Storage.Driver))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	for _, p := range []struct {
		name  string
		value int
	}{
		{"poll.tick_seconds", c.Poll.TickSeconds},
		{"poll.session_seconds", c.Poll.SessionSeconds},
		{"poll.message_seconds", c.Poll.MessageSeconds},
		{"poll.fresh_window_seconds", c.Poll.FreshWindowSeconds},
	} {
		if p.value < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", p.name))
		}
	}
	if c.Announce.DiscordToken != "" && c.Announce.DiscordChannel == "" {
		errs = append(errs, "announce.discord_channel is required when announce.discord_token is set")
	}
	if c.Retention.MessageHours < 0 {
		errs = append(errs, "retention.message_hours must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Tick returns the derivation tick interval.
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Poll.TickSeconds) * time.Second
}

// SessionPoll returns the session re-fetch interval.
func (c *Config) SessionPoll() time.Duration {
	return time.Duration(c.Poll.SessionSeconds) * time.Second
}

// MessagePoll returns the message re-fetch interval.
func (c *Config) MessagePoll() time.Duration {
	return time.Duration(c.Poll.MessageSeconds) * time.Second
}

// FreshWindow returns how long a fresh announcement stays emphasized.
func (c *Config) FreshWindow() time.Duration {
	return time.Duration(c.Poll.FreshWindowSeconds) * time.Second
}
