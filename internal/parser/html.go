package parser

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlText returns the visible text of an HTML fragment, one space between
// text runs. Comments, doctypes and tags produce nothing.
func htmlText(raw string) string {
	z := html.NewTokenizer(strings.NewReader(raw))
	var parts []string
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(parts, " ")
		case html.TextToken:
			if t := strings.TrimSpace(string(z.Text())); t != "" {
				parts = append(parts, t)
			}
		}
	}
}
