package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/factbook/internal/book"
)

const topicDoc = `# Topic Name

Topic description.

## Subtopic Name

Subtopic description.

- Fact 1
- Fact 2`

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	convertOut, convertFormat, renderOutDir, limitsFile, verbose = "", "", ".", "", false

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "convert")
	assert.Contains(t, names, "check")
	assert.Contains(t, names, "render")
	assert.Contains(t, names, "version")
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	out, _, err := execute(t, "version")

	assert.NoError(t, err)
	assert.Contains(t, out, "factbook version test-version-1.0.0")
}

func TestConvertCmd_RequiresArgs(t *testing.T) {
	_, _, err := execute(t, "convert")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 1 arg(s)")
}

func TestConvertCmd_PrintsBook(t *testing.T) {
	path := writeFile(t, t.TempDir(), "topic.md", topicDoc)

	out, stderr, err := execute(t, "convert", path)
	require.NoError(t, err)
	assert.Empty(t, stderr)

	var b book.Book
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	require.Len(t, b.Topics, 1)
	assert.Equal(t, "Topic Name", b.Topics[0].Title)
	assert.Equal(t, 2, b.FactCount())
}

func TestConvertCmd_WritesOutFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "topic.md", topicDoc)
	outPath := filepath.Join(dir, "book.json")

	out, _, err := execute(t, "convert", path, "--out", outPath)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"title": "Topic Name"`)
}

func TestConvertCmd_ReportsErrorsWithFileName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", topicDoc)
	bad := writeFile(t, dir, "b.md", "# Other\n\n## Sub\n\nd\n\n- Some fact")

	out, stderr, err := execute(t, "convert", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 error(s) in 2 file(s)")
	assert.Empty(t, out)
	assert.Contains(t, stderr, "error: "+bad)
	assert.Contains(t, stderr, "missing a description")
}

func TestConvertCmd_WarningsOnStderr(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "topic.md", topicDoc+"\n- Fact 1")

	out, stderr, err := execute(t, "convert", path)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Contains(t, stderr, "warning: "+path)
	assert.Contains(t, stderr, "duplicated")
}

func TestConvertCmd_LimitsFlag(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "topic.md", topicDoc)
	limits := writeFile(t, dir, "limits.toml", "[limits]\nfact = 4\n")

	_, stderr, err := execute(t, "convert", path, "--limits", limits)
	require.Error(t, err)
	assert.Contains(t, stderr, "exceeds the maximum length of 4")
}

func TestConvertCmd_YAMLRoundTripThroughRender(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "topic.md", topicDoc)
	bookPath := filepath.Join(dir, "book.yaml")

	_, _, err := execute(t, "convert", src, "--out", bookPath)
	require.NoError(t, err)
	data, err := os.ReadFile(bookPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: Topic Name")

	outDir := filepath.Join(dir, "out")
	_, _, err = execute(t, "render", bookPath, "--out-dir", outDir)
	require.NoError(t, err)
	rendered, err := os.ReadFile(filepath.Join(outDir, "Topic Name.md"))
	require.NoError(t, err)
	assert.Equal(t, topicDoc, string(rendered))
}

func TestConvertCmd_FormatFlag(t *testing.T) {
	path := writeFile(t, t.TempDir(), "topic.md", topicDoc)

	out, _, err := execute(t, "convert", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "topics:")

	_, _, err = execute(t, "convert", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCheckCmd_Summary(t *testing.T) {
	path := writeFile(t, t.TempDir(), "topic.md", topicDoc)

	out, _, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1 topic(s), 2 fact(s), 0 warning(s)")
}

func TestRenderCmd_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "topic.md", topicDoc)
	bookPath := filepath.Join(dir, "book.json")
	_, _, err := execute(t, "convert", src, "--out", bookPath)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "out")
	out, _, err := execute(t, "render", bookPath, "--out-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Topic Name.md")

	data, err := os.ReadFile(filepath.Join(outDir, "Topic Name.md"))
	require.NoError(t, err)
	assert.Equal(t, topicDoc, string(data))
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.md", "x")
	writeFile(t, dir, "a.markdown", "x")
	writeFile(t, dir, "sub/c.md", "x")
	writeFile(t, dir, "notes.txt", "x")
	single := writeFile(t, t.TempDir(), "z.md", "x")

	files, err := collectFiles([]string{single, dir})
	require.NoError(t, err)
	assert.Equal(t, []string{
		single,
		filepath.Join(dir, "a.markdown"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "sub", "c.md"),
	}, files)
}

func TestCollectFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	txt := writeFile(t, dir, "notes.txt", "x")

	_, err := collectFiles([]string{txt})
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = collectFiles([]string{filepath.Join(dir, "missing.md")})
	assert.Error(t, err)

	_, err = collectFiles([]string{t.TempDir()})
	assert.ErrorContains(t, err, "no markdown files found")
}
