// Package convert turns Markdown documents written in the topic/subtopic/fact
// dialect into a book.Book, reporting warnings and errors along the way.
//
// Documents are processed strictly in input order: duplicate detection for a
// document depends on the facts and topics of every document before it.
package convert

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/factbook/internal/book"
	"github.com/dgallion1/factbook/internal/parser"
)

// Result is the outcome of one run. On success it carries the Book and any
// warnings; on failure only the errors, from every document.
type Result struct {
	Success  bool         `json:"success"`
	Book     *book.Book   `json:"book,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty"`
	Errors   []Diagnostic `json:"errors,omitempty"`
}

// MarshalJSON encodes the success and failure shapes separately so that
// empty lists come out as [] rather than disappearing.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success {
		warnings := r.Warnings
		if warnings == nil {
			warnings = []Diagnostic{}
		}
		return json.Marshal(struct {
			Success  bool         `json:"success"`
			Book     *book.Book   `json:"book"`
			Warnings []Diagnostic `json:"warnings"`
		}{true, r.Book, warnings})
	}
	errs := r.Errors
	if errs == nil {
		errs = []Diagnostic{}
	}
	return json.Marshal(struct {
		Success bool         `json:"success"`
		Errors  []Diagnostic `json:"errors"`
	}{false, errs})
}

// Err returns nil on success, or a *ConversionError holding the errors.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return &ConversionError{Errors: r.Errors}
}

// ConversionError is returned by Result.Err when a run failed.
type ConversionError struct {
	Errors []Diagnostic
}

func (e *ConversionError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "conversion failed"
	case 1:
		return fmt.Sprintf("conversion failed: %s", e.Errors[0])
	default:
		return fmt.Sprintf("conversion failed with %d errors, first: %s", len(e.Errors), e.Errors[0])
	}
}

// Converter runs documents through the tokenizer and the document builder.
type Converter struct {
	tokenizer parser.Tokenizer
	limits    Limits
	log       *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLimits overrides the default length limits.
func WithLimits(l Limits) Option {
	return func(c *Converter) { c.limits = l }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Converter) { c.log = log }
}

// WithTokenizer replaces the goldmark tokenizer.
func WithTokenizer(t parser.Tokenizer) Option {
	return func(c *Converter) { c.tokenizer = t }
}

func New(opts ...Option) *Converter {
	c := &Converter{
		tokenizer: parser.NewMarkdownTokenizer(),
		limits:    DefaultLimits(),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert processes docs in order. A failing document does not stop the
// others from being checked, but any error anywhere fails the whole run.
func (c *Converter) Convert(docs ...[]byte) Result {
	start := time.Now()
	tracker := NewTracker()
	out := book.New()
	var warnings, errs []Diagnostic

	for i, src := range docs {
		log := c.log.With("file_index", i)

		tokens, err := c.tokenizer.Tokenize(src)
		if err != nil {
			log.Debug("tokenize failed", "error", err)
			errs = append(errs, Diagnostic{
				Severity:  SeverityError,
				FileIndex: i,
				Message:   fmt.Sprintf("Document could not be parsed: %v", err),
			})
			continue
		}

		b := newDocBuilder(i, c.limits, tracker)
		topic := b.build(tokens)
		warnings = append(warnings, b.diags.warnings...)
		errs = append(errs, b.diags.errors...)

		if topic != nil {
			out.Topics = append(out.Topics, *topic)
			log.Debug("document converted",
				"topic", topic.Title,
				"subtopics", len(topic.Subtopics),
				"warnings", len(b.diags.warnings),
			)
		} else {
			log.Debug("document skipped",
				"warnings", len(b.diags.warnings),
				"errors", len(b.diags.errors),
			)
		}
	}

	c.log.Info("conversion finished",
		"documents", len(docs),
		"topics", len(out.Topics),
		"facts", out.FactCount(),
		"warnings", len(warnings),
		"errors", len(errs),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if len(errs) > 0 {
		return Result{Success: false, Errors: errs}
	}
	return Result{Success: true, Book: out, Warnings: warnings}
}

// Strings converts documents given as strings with the default settings.
func Strings(docs ...string) Result {
	srcs := make([][]byte, len(docs))
	for i, d := range docs {
		srcs[i] = []byte(d)
	}
	return New().Convert(srcs...)
}
