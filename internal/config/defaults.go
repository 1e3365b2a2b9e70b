package config

import (
	_ "embed"
)

//go:embed defaults/stickrace.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration used when nothing
// else can be loaded.
func DefaultConfig() Config {
	return Config{
		Match: MatchConfig{
			Columns:       9,
			StartingColor: "blue",
			TurnDelayMS:   1500,
		},
		Storage: StorageConfig{
			DBPath: "~/.stickrace/matches.db",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
