package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("wordsearch version %s\n", version)
		if verbose {
			cmd.Printf("  Build time: %s\n", buildInfo.BuildTime)
			cmd.Printf("  Git commit: %s\n", buildInfo.GitCommit)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
