package convert

import (
	"fmt"
	"strings"

	"github.com/dgallion1/factbook/internal/parser"
)

// Severity tells whether a Diagnostic blocks the run.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Context window sizes, in token fragments.
const (
	warningWindow = 10
	errorWindow   = 20
)

// Diagnostic is a warning or error about one input document. Context stands
// in for a line number: the tokenizer does not report usable positions, so it
// holds the most recent token text plus the topic, subtopic and fact being
// built when the problem was found.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	FileIndex int      `json:"file_index"`
	Context   string   `json:"context"`
	Message   string   `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: document %d: %s", d.Severity, d.FileIndex, d.Message)
}

// snapshot is the builder state reported with each diagnostic.
type snapshot struct {
	topic    string
	subtopic string
	fact     string
}

func (s snapshot) String() string {
	return fmt.Sprintf("Topic: %q | Subtopic: %q | Fact: %q", s.topic, s.subtopic, s.fact)
}

// collector records the diagnostics of one document and the trailing window
// of token fragments used to build their context.
type collector struct {
	fileIndex int
	window    []string
	warnings  []Diagnostic
	errors    []Diagnostic
}

func newCollector(fileIndex int) *collector {
	return &collector{
		fileIndex: fileIndex,
		window:    make([]string, 0, errorWindow),
	}
}

// observe appends the non-empty markup and content of tok to the window.
func (c *collector) observe(tok parser.Token) {
	for _, frag := range []string{tok.Markup, tok.Content} {
		if strings.TrimSpace(frag) == "" {
			continue
		}
		if len(c.window) == errorWindow {
			copy(c.window, c.window[1:])
			c.window = c.window[:errorWindow-1]
		}
		c.window = append(c.window, frag)
	}
}

func (c *collector) context(size int, snap snapshot) string {
	recent := c.window
	if len(recent) > size {
		recent = recent[len(recent)-size:]
	}
	return strings.Join(recent, " ") + "\n" + snap.String()
}

func (c *collector) warn(snap snapshot, msg string) {
	c.warnings = append(c.warnings, Diagnostic{
		Severity:  SeverityWarning,
		FileIndex: c.fileIndex,
		Context:   c.context(warningWindow, snap),
		Message:   msg,
	})
}

func (c *collector) fail(snap snapshot, msg string) {
	c.errors = append(c.errors, Diagnostic{
		Severity:  SeverityError,
		FileIndex: c.fileIndex,
		Context:   c.context(errorWindow, snap),
		Message:   msg,
	})
}
