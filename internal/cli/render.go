package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dgallion1/factbook/internal/book"
	"github.com/dgallion1/factbook/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [book.json|book.yaml]",
	Short: "Write a fact book back out as Markdown files",
	Long:  `Writes one Markdown document per topic of the fact book, named after the topic title.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

// renderOutDir is the --out-dir flag of the render command.
var renderOutDir string

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out-dir", "d", ".", "Directory to write the Markdown files to")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	b, err := book.Unmarshal(data, book.FormatFromPath(args[0]))
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if err := os.MkdirAll(renderOutDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", renderOutDir, err)
	}
	for _, f := range render.Files(b) {
		path := filepath.Join(renderOutDir, f.Location)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		cmd.Println(path)
	}
	return nil
}
