package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPathKeepsMissingDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "match:\n  columns: 13\n  starting_color: red\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Match.Columns != 13 {
		t.Errorf("Columns = %d, expected 13", cfg.Match.Columns)
	}
	if cfg.Match.StartingColor != "red" {
		t.Errorf("StartingColor = %q, expected red", cfg.Match.StartingColor)
	}
	if cfg.Match.TurnDelay() != 1500*time.Millisecond {
		t.Errorf("TurnDelay() = %v, expected 1.5s", cfg.Match.TurnDelay())
	}
	if cfg.SSH.Address != ":23234" {
		t.Errorf("SSH.Address = %q, expected default", cfg.SSH.Address)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("match: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() of malformed YAML should fail")
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Match.StartingColor = "green"
	cfg.Match.TurnDelayMS = -5
	cfg.Logging.Level = "loud"
	cfg.SSH.Address = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	for _, field := range []string{"match.starting_color", "match.turn_delay_ms", "logging.level", "ssh.address"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Validate() error %q does not mention %s", err, field)
		}
	}
}

func TestValidateDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, expected nil", err)
	}
}

func TestIdleTimeout(t *testing.T) {
	s := SSHConfig{IdleTimeoutMinutes: 2}
	if s.IdleTimeout() != 2*time.Minute {
		t.Errorf("IdleTimeout() = %v, expected 2m", s.IdleTimeout())
	}
}
