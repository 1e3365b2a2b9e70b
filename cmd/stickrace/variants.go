package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrace/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:     "variants",
	Aliases: []string{"list"},
	Short:   "List all board presets",
	Long:    `Shows every board preset that can be passed to 'stickrace play'.`,
	Run:     runVariants,
}

func runVariants(cmd *cobra.Command, args []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Columns", "First", "Description")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "-------", "-----", "-----------")

	for _, v := range variants {
		fmt.Printf("  %-*s  %-7d  %-5s  %s\n", maxIDLen, v.ID, v.Columns, v.Starting, v.Description)
	}

	fmt.Println()
	fmt.Println("Run 'stickrace play <id>' to play a match.")
}
