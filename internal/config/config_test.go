package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tape-escape/internal/engine"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	parsed, ok := parse(defaultYAML)
	if !ok {
		t.Fatal("embedded default YAML does not parse")
	}
	if parsed != Default() {
		t.Errorf("embedded defaults drifted from Default():\n%+v\n%+v", parsed, Default())
	}
	if err := parsed.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestEngineRules(t *testing.T) {
	rules, err := Default().EngineRules()
	if err != nil {
		t.Fatalf("EngineRules failed: %v", err)
	}
	if rules != engine.DefaultConfig() {
		t.Errorf("expected engine defaults, got %+v", rules)
	}

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"long symbol", func(c *Config) { c.Engine.Symbols.Wall = "##" }},
		{"empty symbol", func(c *Config) { c.Engine.Symbols.Goal = "" }},
		{"zero tape", func(c *Config) { c.Engine.MaxTapeLength = 0 }},
		{"bad letters", func(c *Config) { c.Engine.BlockLetters = "A" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if _, err := cfg.EngineRules(); err == nil {
				t.Error("expected error")
			}
			if err := cfg.Validate(); err == nil {
				t.Error("expected Validate to fail")
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "debug"
	lvl, err := cfg.LogLevel()
	if err != nil || lvl != log.DebugLevel {
		t.Errorf("expected debug level, got %v (%v)", lvl, err)
	}

	cfg.Log.Level = "loud"
	if _, err := cfg.LogLevel(); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := `engine:
  max_tape_length: 4
history:
  depth: 10
ssh:
  idle_timeout: 90s
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Engine.MaxTapeLength != 4 {
		t.Errorf("expected tape length 4, got %d", cfg.Engine.MaxTapeLength)
	}
	if cfg.History.Depth != 10 {
		t.Errorf("expected depth 10, got %d", cfg.History.Depth)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("expected 90s idle timeout, got %s", cfg.SSH.IdleTimeout)
	}
	// Untouched keys keep their defaults.
	if cfg.Engine.BlockLetters != "abcdef" || cfg.SSH.Address != ":23235" {
		t.Errorf("expected defaults preserved, got %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("engine: [1, 2"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	_, err := Load(bad)
	if err == nil || !strings.Contains(err.Error(), "failed to parse") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadLocalConfigsDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", FileName), []byte("log:\n  level: warn\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected local config to win, got level %q", cfg.Log.Level)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	testCases := []struct {
		in   string
		want string
	}{
		{"~/a/b.db", filepath.Join(home, "a", "b.db")},
		{"/abs/path.db", "/abs/path.db"},
		{"rel.db", "rel.db"},
		{"~", "~"},
	}
	for _, tc := range testCases {
		got, err := ExpandHome(tc.in)
		if err != nil {
			t.Fatalf("ExpandHome(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ExpandHome(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}
