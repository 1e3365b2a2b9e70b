package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stickrace/internal/config"
	"github.com/vovakirdan/stickrace/internal/core"
	"github.com/vovakirdan/stickrace/internal/logging"
	"github.com/vovakirdan/stickrace/internal/match"
	"github.com/vovakirdan/stickrace/internal/platform/tui"
	"github.com/vovakirdan/stickrace/internal/registry"
	"github.com/vovakirdan/stickrace/internal/storage"
)

var (
	flagColumns int
	flagStart   string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a hot-seat match",
	Long: `Start a match between two players sharing the keyboard.
Without a variant or --columns the setup menu is shown first.

Controls:
  Arrows/hjkl  - Move the cursor
  Space/R      - Roll the dice
  Enter        - Move the piece under the cursor, or land on a branch cell
  Tab          - Jump to the next movable piece
  P            - Pass when no piece can move
  F            - Toggle flipping the board for red
  N            - New match
  Esc/B        - Back to the menu
  Q/Ctrl+C     - Quit

Examples:
  stickrace play
  stickrace play marathon
  stickrace play --columns 11 --start red
  stickrace play classic --seed 42`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagColumns, "columns", 0, "Board width (odd, 7-15); picks the matching variant")
	playCmd.Flags().StringVar(&flagStart, "start", "", "Side that rolls first: red or blue")
}

func runPlay(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	variant := registry.ForColumns(cfg.Match.Columns).ID
	direct := false

	switch {
	case len(args) == 1:
		if !registry.Exists(args[0]) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'stickrace variants' to see available variants.")
			os.Exit(1)
		}
		variant, direct = args[0], true
	case cmd.Flags().Changed("columns"):
		variant, direct = registry.ForColumns(flagColumns).ID, true
	}

	runSession(cfg, variant, startingColor(cfg), direct)
}

// startingColor resolves --start, falling back to the configured side.
func startingColor(cfg config.Config) match.Color {
	name := cfg.Match.StartingColor
	if flagStart != "" {
		name = flagStart
	}
	c, err := match.ParseColor(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return c
}

// runSession runs a local session until the user quits.
func runSession(cfg config.Config, variant string, starting match.Color, direct bool) {
	// The alternate screen owns the terminal: log to a file or nowhere.
	logger, logCloser, err := logging.New(cfg.Logging, "stickrace", io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open match database: %v\n", err)
		// Continue without history - matches still work
		store = nil
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runErr := tui.Run(tui.SessionOptions{
		Store:  store,
		Logger: logger,
		Config: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    flagSeed,
		},
		Variant:   variant,
		Starting:  starting,
		TurnDelay: cfg.Match.TurnDelay(),
		Direct:    direct,
	})

	// Close resources before potential exit
	if store != nil {
		store.Close()
	}
	logCloser.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running session: %v\n", runErr)
		os.Exit(1)
	}
}
