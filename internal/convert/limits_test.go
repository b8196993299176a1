package convert

import (
	"strings"
	"testing"
)

func TestDefaultLimits_Valid(t *testing.T) {
	if err := DefaultLimits().Validate(); err != nil {
		t.Errorf("expected default limits to be valid, got %v", err)
	}
}

func TestLimitsValidate_RejectsNonPositive(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Limits)
		want   string
	}{
		{"title zero", func(l *Limits) { l.Title = 0 }, "title"},
		{"description negative", func(l *Limits) { l.Description = -1 }, "description"},
		{"fact zero", func(l *Limits) { l.Fact = 0 }, "fact"},
		{"question zero", func(l *Limits) { l.Question = 0 }, "question"},
		{"attachment zero", func(l *Limits) { l.Attachment = 0 }, "attachment"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := DefaultLimits()
			tc.mutate(&l)
			err := l.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error to mention %q, got %v", tc.want, err)
			}
		})
	}
}

func TestTooLong_Boundaries(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  bool
	}{
		{"well below", "abc", 10, false},
		{"one below", strings.Repeat("a", 9), 10, false},
		{"exactly at limit", strings.Repeat("a", 10), 10, true},
		{"above", strings.Repeat("a", 11), 10, true},
		{"multibyte counted as characters", strings.Repeat("é", 9), 10, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tooLong(tc.text, tc.limit); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
