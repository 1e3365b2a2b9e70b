package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stickrace/internal/dice"
)

var flagDraws int

var diceCmd = &cobra.Command{
	Use:   "dice",
	Short: "Roll the die many times and compare with its odds",
	Long: `Throw the weighted die --draws times and print how often each face
came up next to its expected probability, followed by a chi-square
goodness-of-fit test. A tiny p-value means the die is off.

Examples:
  stickrace dice
  stickrace dice --draws 1000000 --seed 7`,
	Args: cobra.NoArgs,
	Run:  runDice,
}

func init() {
	diceCmd.Flags().IntVar(&flagDraws, "draws", 100000, "Number of throws")
}

func runDice(_ *cobra.Command, _ []string) {
	if flagDraws <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --draws must be positive")
		os.Exit(1)
	}

	die := dice.New(dice.NewSeededSource(flagSeed), nil)
	counts := dice.Tally(die, flagDraws)
	freqs := dice.Frequencies(counts)

	fmt.Printf("Dice - %d throws\n", flagDraws)
	fmt.Println()
	fmt.Printf("  %-4s  %-5s  %-8s  %-8s  %s\n", "Face", "Steps", "Expected", "Observed", "Count")
	fmt.Printf("  %-4s  %-5s  %-8s  %-8s  %s\n", "----", "-----", "--------", "--------", "-----")

	for f := range dice.FaceCount {
		face := dice.Face(f)
		extra := ""
		if face.ExtraTurn() {
			extra = "  (extra turn)"
		}
		fmt.Printf("  %-4d  %-5d  %-8.4f  %-8.4f  %d%s\n",
			f, face.Steps(), dice.Probabilities[f], freqs[f], counts[f], extra)
	}

	chi2, p, err := dice.GoodnessOfFit(counts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Printf("Chi-square: %.3f (4 degrees of freedom)  p-value: %.4f\n", chi2, p)
}
