// Package config provides YAML-based configuration loading for stickrace.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/stickrace/internal/match"
)

// Config is the whole configuration file.
type Config struct {
	Match   MatchConfig   `yaml:"match"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
	SSH     SSHConfig     `yaml:"ssh"`
}

// MatchConfig defines how new matches are set up.
type MatchConfig struct {
	Columns       int    `yaml:"columns"`
	StartingColor string `yaml:"starting_color"`
	TurnDelayMS   int    `yaml:"turn_delay_ms"`
}

// StorageConfig locates the match history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// LoggingConfig defines log verbosity and destination.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SSHConfig defines the SSH server settings.
type SSHConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// TurnDelay returns the handoff pause as a duration.
func (m MatchConfig) TurnDelay() time.Duration {
	return time.Duration(m.TurnDelayMS) * time.Millisecond
}

// Starting returns the configured starting side.
func (m MatchConfig) Starting() (match.Color, error) {
	return match.ParseColor(m.StartingColor)
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// Validate reports every problem in the configuration at once.
func (c Config) Validate() error {
	var errs []error

	if _, err := c.Match.Starting(); err != nil {
		errs = append(errs, fmt.Errorf("match.starting_color: %w", err))
	}
	if c.Match.TurnDelayMS < 0 {
		errs = append(errs, fmt.Errorf("match.turn_delay_ms: must not be negative, got %d", c.Match.TurnDelayMS))
	}
	if strings.TrimSpace(c.Storage.DBPath) == "" {
		errs = append(errs, errors.New("storage.db_path: must not be empty"))
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}
	if strings.TrimSpace(c.SSH.Address) == "" {
		errs = append(errs, errors.New("ssh.address: must not be empty"))
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout_minutes: must not be negative, got %d", c.SSH.IdleTimeoutMinutes))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
