package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_Minimal(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Storage.Driver = %q, want %q", cfg.Storage.Driver, "sqlite")
	}
	if cfg.Storage.Path == "" {
		t.Error("Storage.Path should default to a file under the home directory")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestParse_PollDefaults(t *testing.T) {
	cfg, err := Parse([]byte("{}"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		name string
		got  int
		want int
	}{
		{"tick_seconds", cfg.Poll.TickSeconds, 1},
		{"session_seconds", cfg.Poll.SessionSeconds, 2},
		{"message_seconds", cfg.Poll.MessageSeconds, 5},
		{"fresh_window_seconds", cfg.Poll.FreshWindowSeconds, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestParse_MySQLDefaults(t *testing.T) {
	cfg, err := Parse([]byte("storage:\n  driver: mysql\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.Storage.Host != "127.0.0.1" {
		t.Errorf("Storage.Host = %q, want 127.0.0.1", cfg.Storage.Host)
	}
	if cfg.Storage.Port != 3306 {
		t.Errorf("Storage.Port = %d, want 3306", cfg.Storage.Port)
	}
	if cfg.Storage.Database != "podium" {
		t.Errorf("Storage.Database = %q, want podium", cfg.Storage.Database)
	}
}

func TestParse_UnknownDriver(t *testing.T) {
	_, err := Parse([]byte("storage:\n  driver: postgres\n"))
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
	if !strings.Contains(err.Error(), "is not supported") {
		t.Errorf("error = %q, want to mention unsupported driver", err.Error())
	}
}

func TestParse_NegativePoll(t *testing.T) {
	_, err := Parse([]byte("poll:\n  session_seconds: -1\n"))
	if err == nil {
		t.Fatal("expected error for negative poll interval")
	}
	if !strings.Contains(err.Error(), "poll.session_seconds") {
		t.Errorf("error = %q, want to name poll.session_seconds", err.Error())
	}
}

func TestParse_DiscordChannelRequired(t *testing.T) {
	_, err := Parse([]byte("announce:\n  discord_token: Bot.abc\n"))
	if err == nil {
		t.Fatal("expected error for discord token without channel")
	}
	if !strings.Contains(err.Error(), "discord_channel") {
		t.Errorf("error = %q, want to name discord_channel", err.Error())
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte(":\nnot yaml at all ["))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "config: parse") {
		t.Errorf("error = %q, want config: parse prefix", err.Error())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/podium.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("error = %q, want config: read prefix", err.Error())
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "podium.yaml")
	content := `
storage:
  driver: sqlite
  path: /tmp/podium-test.db
server:
  port: 9090
poll:
  message_seconds: 10
retention:
  message_hours: 48
  schedule: "30 3 * * *"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Path != "/tmp/podium-test.db" {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Poll.MessageSeconds != 10 {
		t.Errorf("Poll.MessageSeconds = %d, want 10", cfg.Poll.MessageSeconds)
	}
	if cfg.Retention.MessageHours != 48 {
		t.Errorf("Retention.MessageHours = %d, want 48", cfg.Retention.MessageHours)
	}
	if cfg.Retention.Schedule != "30 3 * * *" {
		t.Errorf("Retention.Schedule = %q", cfg.Retention.Schedule)
	}
}

func TestDurations(t *testing.T) {
	cfg := Default()
	if got := cfg.Tick(); got != time.Second {
		t.Errorf("Tick() = %v, want 1s", got)
	}
	if got := cfg.SessionPoll(); got != 2*time.Second {
		t.Errorf("SessionPoll() = %v, want 2s", got)
	}
	if got := cfg.MessagePoll(); got != 5*time.Second {
		t.Errorf("MessagePoll() = %v, want 5s", got)
	}
	if got := cfg.FreshWindow(); got != 5*time.Second {
		t.Errorf("FreshWindow() = %v, want 5s", got)
	}
}

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Errorf("Default() should validate cleanly, got %v", err)
	}
}
