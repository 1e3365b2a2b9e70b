// stickrace is a two-player dice race on a four-row snake track, played
// hot-seat in the terminal.
//
// Usage:
//
//	stickrace variants            - List board presets
//	stickrace play [variant]      - Play a match (setup menu when no variant is given)
//	stickrace menu                - Start with the setup menu
//	stickrace history [match-id]  - Show recorded matches, or the moves of one
//	stickrace serve               - Start SSH server for remote play
//	stickrace dice                - Roll the die many times and check its odds
//
// Global flags:
//
//	--config <path> - Config file (default: ~/.stickrace/config.yaml, then ./configs/stickrace.yaml)
//	--seed <value>  - Set RNG seed for reproducible rolls
//	--db <path>     - Set match database path (default from config: ~/.stickrace/matches.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrace/internal/config"
)

var (
	// Global flags
	flagConfig string
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stickrace",
	Short: "Stickrace - a dice race for two players in your terminal",
	Long: `Stickrace is a two-player race game. Pieces run a snake-shaped track
over four rows toward the far edge, driven by a weighted die.
Land on an opponent to capture it; the first side to lose every
piece loses the match.

Available commands:
  variants - Show all board presets
  play     - Play a match directly
  menu     - Interactive setup menu
  history  - View recorded matches
  serve    - Start SSH server for remote play
  dice     - Check the die against its probability table

Examples:
  stickrace variants
  stickrace play classic
  stickrace play --columns 13 --start red
  stickrace history
  stickrace serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to match database (overrides config)")

	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(diceCmd)
}

// loadConfig reads the configuration and applies the global overrides.
// Exits on invalid configuration.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	return cfg
}
