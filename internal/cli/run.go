package cli

import (
	"fmt"

	dimaging "github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
)

var (
	runWords     string
	runAnnotate  string
	runThickness int
)

var runCmd = &cobra.Command{
	Use:   "run <image>",
	Short: "Extract, read and solve a puzzle image",
	Long: `Extracts and classifies a puzzle image, then solves it for the word list
read from the page, or for --words when given. With --annotate the binary
page is saved with a stroke over every found word; the format follows the
file extension.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runWords, "words", "w", "", "word list file used instead of the recognized list")
	runCmd.Flags().StringVarP(&runAnnotate, "annotate", "a", "", "write the solved page to this image file")
	runCmd.Flags().IntVar(&runThickness, "thickness", 5, "annotation stroke thickness in pixels")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	res, err := extract(args[0])
	if err != nil {
		return err
	}
	rec, err := recognize(res)
	if err != nil {
		return err
	}

	grid, err := rec.Grid.Solver()
	if err != nil {
		return err
	}
	words := rec.WordList()
	if runWords != "" {
		if words, err = readWords(runWords); err != nil {
			return err
		}
	}

	rep := puzzle.Solve(grid, words)
	printReport(cmd.OutOrStdout(), rep)
	cmd.Printf("found %d of %d words\n", rep.Found, len(rep.Matches))

	if runAnnotate != "" {
		overlay := imaging.SolutionOverlay(res.Binary.Image(), puzzle.Strokes(res.Grid, rep.Matches), runThickness)
		if err := dimaging.Save(overlay, runAnnotate); err != nil {
			return fmt.Errorf("failed to save %s: %w", runAnnotate, err)
		}
	}
	return nil
}
