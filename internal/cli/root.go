// Package cli implements the factbook command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dgallion1/factbook/internal/config"
	"github.com/dgallion1/factbook/internal/convert"
)

// version is set at build time with -ldflags.
var version = "dev"

var (
	verbose    bool
	limitsFile string
)

var rootCmd = &cobra.Command{
	Use:   "factbook",
	Short: "Convert topic/subtopic/fact Markdown into a fact book",
	Long: `factbook reads Markdown documents, one topic per document, and builds a
fact book of topics, subtopics and facts. Structural problems are reported
with the surrounding text of the document they were found in.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&limitsFile, "limits", "", "TOML file with a [limits] table")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func loadLimits() (convert.Limits, error) {
	limits := convert.DefaultLimits()
	if limitsFile != "" {
		l, err := config.LoadLimitsFile(limitsFile, limits)
		if err != nil {
			return convert.Limits{}, err
		}
		limits = l
	}
	return limits, limits.Validate()
}
