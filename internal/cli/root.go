package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/wordsearch-mcp/internal/config"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// BuildInfo is stamped into the binary by ldflags.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

var (
	version   = "dev"
	buildInfo = BuildInfo{Version: "dev", BuildTime: "unknown", GitCommit: "unknown"}

	cfgFile string
	envFile string
	verbose bool

	// cfg is resolved before every command runs.
	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wordsearch",
	Short: "Extract, read and solve word-search puzzle images",
	Long: `wordsearch cuts a scanned word-search puzzle into its grid cells and
word-list glyphs, classifies them, and finds every listed word in the grid.

Settings come from the built-in defaults, then the --config TOML file, then
WORDSEARCH_* environment variables (optionally loaded from a .env file).`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "TOML settings file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file read before the environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig(_ *cobra.Command, _ []string) error {
	c := config.Default()
	if cfgFile != "" {
		var err error
		if c, err = config.Load(cfgFile); err != nil {
			return err
		}
	}
	if err := config.ApplyEnv(&c, envFile); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = logging.LevelDebug
	}
	logging.SetLevel(level)

	cfg = c
	return nil
}

// Execute runs the command line.
func Execute(info BuildInfo) error {
	buildInfo = info
	version = info.Version
	return rootCmd.Execute()
}
