package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/wordsearch-mcp/internal/artifacts"
	"github.com/ironsheep/wordsearch-mcp/internal/puzzle"
)

var (
	extractOut   string
	extractNoOCR bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <image>",
	Short: "Cut a puzzle image into cells, words and letters",
	Long: `Runs the extraction pipeline on one puzzle image and prints what it found.

With --out the binary page, every grid cell (cells/c_RR_CC.bmp), every word
(words/w_NN.bmp) and every letter (word_letters/w_NN_MM.bmp) are written
together with manifest.json. Unless --no-ocr is given the glyphs are also
classified and grid.txt and words.txt are written.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractOut, "out", "o", "", "directory for the extracted images")
	extractCmd.Flags().BoolVar(&extractNoOCR, "no-ocr", false, "skip glyph classification")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	res, err := extract(args[0])
	if err != nil {
		return err
	}
	printExtraction(cmd.OutOrStdout(), res)

	var rec *puzzle.Recognition
	if !extractNoOCR {
		if rec, err = recognize(res); err != nil {
			return err
		}
		printRecognition(cmd.OutOrStdout(), rec)
	}

	if extractOut == "" {
		return nil
	}
	w := artifacts.NewWriter(extractOut)
	m, err := w.WriteExtraction(res, args[0])
	if err != nil {
		return err
	}
	if rec != nil {
		if err := w.WriteRecognition(m, rec); err != nil {
			return err
		}
	}
	cmd.Printf("wrote %d files to %s (run %s)\n", len(m.Files), extractOut, m.RunID)
	return nil
}
