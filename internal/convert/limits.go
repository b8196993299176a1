package convert

import (
	"fmt"
	"unicode/utf8"
)

// Limits are upper bounds, in characters, on the trimmed text of each field.
// A value reaching its limit is already too long.
type Limits struct {
	Title       int `toml:"title" json:"title"`
	Description int `toml:"description" json:"description"`
	Fact        int `toml:"fact" json:"fact"`
	Question    int `toml:"question" json:"question"`
	Attachment  int `toml:"attachment" json:"attachment"`
}

// DefaultLimits returns the limits used when none are configured.
func DefaultLimits() Limits {
	return Limits{
		Title:       100,
		Description: 500,
		Fact:        300,
		Question:    200,
		Attachment:  300,
	}
}

// Validate checks that every limit is positive.
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"title", l.Title},
		{"description", l.Description},
		{"fact", l.Fact},
		{"question", l.Question},
		{"attachment", l.Attachment},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("%s limit must be positive, got %d", c.name, c.value)
		}
	}
	return nil
}

// tooLong reports whether s has reached limit characters.
func tooLong(s string, limit int) bool {
	return utf8.RuneCountInString(s) >= limit
}
