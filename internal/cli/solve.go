package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
	"github.com/ironsheep/wordsearch-mcp/internal/solver"
)

var solveWords string

var solveCmd = &cobra.Command{
	Use:   "solve <grid.txt> [WORD...]",
	Short: "Find words in a letter grid",
	Long: `Reads a grid file with one row of letters per line and searches it for
each word in all eight directions. Prints one line per word:

  WORD: (col,row)(col,row)
  WORD: Not Found

Words come from the arguments, from --words, or both.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveWords, "words", "w", "", "word list file, one word per line")
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open grid: %w", err)
	}
	defer f.Close()

	grid, err := solver.ParseGrid(f)
	if err != nil {
		return fmt.Errorf("failed to read grid: %w", err)
	}

	words := args[1:]
	if solveWords != "" {
		more, err := readWords(solveWords)
		if err != nil {
			return err
		}
		words = append(words, more...)
	}
	if len(words) == 0 {
		return fmt.Errorf("no words to search for")
	}

	printReport(cmd.OutOrStdout(), puzzle.Solve(grid, words))
	return nil
}
