package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrace/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the setup menu",
	Long: `Start in interactive menu mode.

Pick a board with Up/Down, the side that rolls first with Left/Right,
and press Enter to play. After a match you return to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Switch the side that rolls first
  Enter/Space     - Play the selected board
  Tab             - Match history
  Q               - Quit

Examples:
  stickrace menu
  stickrace menu --db ./matches.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	runSession(cfg, registry.ForColumns(cfg.Match.Columns).ID, startingColor(cfg), false)
}
