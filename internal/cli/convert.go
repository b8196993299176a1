package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/factbook/internal/book"
	"github.com/dgallion1/factbook/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert [path...]",
	Short: "Convert Markdown files into a fact book",
	Long: `Converts every given file, and every Markdown file under every given
directory, into a single fact book printed as JSON or YAML. Warnings go to stderr.
Nothing is printed on stdout when any document has an error.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

var checkCmd = &cobra.Command{
	Use:   "check [path...]",
	Short: "Validate Markdown files without writing a fact book",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

// Flags of the convert command.
var (
	convertOut    string
	convertFormat string
)

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Write the fact book to this file instead of stdout")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format, json or yaml (default from --out extension, else json)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(checkCmd)
}

// convertPaths runs one conversion over paths and reports its diagnostics.
func convertPaths(cmd *cobra.Command, paths []string) (convert.Result, error) {
	files, err := collectFiles(paths)
	if err != nil {
		return convert.Result{}, err
	}
	docs, err := readFiles(files)
	if err != nil {
		return convert.Result{}, err
	}
	limits, err := loadLimits()
	if err != nil {
		return convert.Result{}, err
	}

	conv := convert.New(
		convert.WithLimits(limits),
		convert.WithLogger(newLogger(cmd)),
	)
	result := conv.Convert(docs...)

	stderr := cmd.ErrOrStderr()
	printDiagnostics(stderr, files, result.Warnings)
	printDiagnostics(stderr, files, result.Errors)
	if err := result.Err(); err != nil {
		return result, fmt.Errorf("%d error(s) in %d file(s)", len(result.Errors), len(files))
	}
	return result, nil
}

func printDiagnostics(w io.Writer, files []string, diags []convert.Diagnostic) {
	for _, d := range diags {
		name := fmt.Sprintf("document %d", d.FileIndex)
		if d.FileIndex >= 0 && d.FileIndex < len(files) {
			name = files[d.FileIndex]
		}
		fmt.Fprintf(w, "%s: %s: %s\n", d.Severity, name, d.Message)
		if d.Context != "" {
			fmt.Fprintf(w, "    %s\n", d.Context)
		}
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	format := book.FormatFromPath(convertOut)
	if convertFormat != "" {
		f, err := book.ParseFormat(convertFormat)
		if err != nil {
			return err
		}
		format = f
	}

	result, err := convertPaths(cmd, args)
	if err != nil {
		return err
	}

	data, err := book.Marshal(result.Book, format)
	if err != nil {
		return fmt.Errorf("encode book: %w", err)
	}

	if convertOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(convertOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", convertOut, err)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	result, err := convertPaths(cmd, args)
	if err != nil {
		return err
	}
	cmd.Printf("ok: %d topic(s), %d fact(s), %d warning(s)\n",
		len(result.Book.Topics), result.Book.FactCount(), len(result.Warnings))
	return nil
}
