package convert

import (
	"regexp"
	"strings"
)

var (
	linkRe      = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	newlineRe   = regexp.MustCompile(`[ \t\r]*\n[ \t]*`)
	periodRunRe = regexp.MustCompile(`\.(?:\s*\.)*\s+`)
)

// StripLinks rewrites every [label](url) to label. It repeats until nothing
// changes, so nested link text is fully unwrapped and the result is stable.
func StripLinks(s string) string {
	for {
		out := linkRe.ReplaceAllString(s, "${1}")
		if out == s {
			return out
		}
		s = out
	}
}

// buildDescription trims and joins buffered description lines with ". ",
// then folds newlines and runs of periods followed by whitespace into ". ".
func buildDescription(lines []string) string {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		if t := strings.TrimSpace(StripLinks(l)); t != "" {
			parts = append(parts, t)
		}
	}
	joined := strings.Join(parts, ". ")
	joined = newlineRe.ReplaceAllString(joined, ". ")
	joined = periodRunRe.ReplaceAllString(joined, ". ")
	return strings.TrimSpace(joined)
}

// isAttachment reports whether trimmed text is wrapped in backticks.
func isAttachment(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, "`") && strings.HasSuffix(s, "`")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
