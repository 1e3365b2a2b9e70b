package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrace/internal/platform/tui"
	"github.com/vovakirdan/stickrace/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [match-id]",
	Short: "Show recorded matches",
	Long: `Without arguments, list the most recent matches with overall totals.
With a match ID, print every move of that match.

Examples:
  stickrace history
  stickrace history --limit 50
  stickrace history 3f2b8c1e-...
  stickrace history --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of matches to list")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded match")
}

func runHistory(cmd *cobra.Command, args []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match database: %v\n", err)
		os.Exit(1)
	}

	switch {
	case flagClear:
		err = store.ClearHistory()
		if err == nil {
			fmt.Println("Match history cleared.")
		}
	case len(args) == 1:
		err = printMoves(store, args[0])
	default:
		err = printMatches(store, flagLimit)
	}

	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printMatches(store *storage.Store, limit int) error {
	matches, err := store.RecentMatches(limit)
	if err != nil {
		return fmt.Errorf("retrieving matches: %w", err)
	}

	fmt.Println("Match History")
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'stickrace play' and finish a match to see it here!")
		return nil
	}

	fmt.Printf("  %-36s  %-16s  %-8s  %-5s  %-9s  %-5s  %s\n", "ID", "Date", "Variant", "Start", "Winner", "Moves", "Time")
	fmt.Printf("  %-36s  %-16s  %-8s  %-5s  %-9s  %-5s  %s\n", "--", "----", "-------", "-----", "------", "-----", "----")

	for _, m := range matches {
		winner := m.Winner
		if winner == "" {
			winner = m.EndReason
		}
		fmt.Printf("  %-36s  %-16s  %-8s  %-5s  %-9s  %-5d  %s\n",
			m.MatchID,
			m.CreatedAt.Local().Format("2006-01-02 15:04"),
			m.Variant,
			m.Starting,
			winner,
			m.Moves,
			tui.FormatDuration(m.Duration),
		)
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("computing totals: %w", err)
	}
	fmt.Println()
	fmt.Printf("Matches: %d (%d completed)  Red wins: %d  Blue wins: %d  Average moves: %.1f\n",
		stats.Matches, stats.Completed, stats.RedWins, stats.BlueWins, stats.AvgMoves)
	return nil
}

func printMoves(store *storage.Store, matchID string) error {
	m, err := store.MatchByID(matchID)
	if err != nil {
		return fmt.Errorf("retrieving match: %w", err)
	}
	if m == nil {
		return fmt.Errorf("unknown match %q", matchID)
	}

	moves, err := store.Moves(matchID)
	if err != nil {
		return fmt.Errorf("retrieving moves: %w", err)
	}

	result := m.EndReason
	if m.Winner != "" {
		result = m.Winner + " won"
	}
	fmt.Printf("Match %s - %s, %d columns, %s rolled first, %s\n", m.MatchID, m.Variant, m.Columns, m.Starting, result)
	fmt.Println()

	fmt.Printf("  %-4s  %-5s  %-5s  %-4s  %-9s  %s\n", "#", "Side", "Piece", "Roll", "Move", "Captured")
	fmt.Printf("  %-4s  %-5s  %-5s  %-4s  %-9s  %s\n", "-", "----", "-----", "----", "----", "--------")

	for _, mv := range moves {
		captured := "-"
		if mv.Captured >= 0 {
			captured = fmt.Sprintf("%d", mv.Captured)
		}
		fmt.Printf("  %-4d  %-5s  %-5d  %-4d  %-9s  %s\n",
			mv.Seq, mv.Color, mv.Piece, mv.Face, fmt.Sprintf("%d -> %d", mv.From, mv.To), captured)
	}
	return nil
}
