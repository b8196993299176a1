package parser

import (
	"bytes"

	"github.com/adrg/frontmatter"
)

var frontMatterDelims = [][]byte{[]byte("---"), []byte("+++")}

// stripFrontMatter removes a leading YAML (---) or TOML (+++) front matter
// block. Documents without one, or whose delimited block is not a non-empty
// key/value table, are returned unchanged: a pair of "---" lines may just as
// well be two thematic breaks.
func stripFrontMatter(src []byte) []byte {
	if !hasFrontMatter(src) {
		return src
	}
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(src), &meta)
	if err != nil || len(meta) == 0 {
		return src
	}
	return body
}

// hasFrontMatter reports whether src opens with a delimiter line that is
// closed by the same delimiter later on. A lone "---" is a thematic break.
func hasFrontMatter(src []byte) bool {
	for _, d := range frontMatterDelims {
		first, rest, ok := bytes.Cut(src, []byte("\n"))
		if !ok || !bytes.Equal(bytes.TrimRight(first, " \t\r"), d) {
			continue
		}
		for _, line := range bytes.Split(rest, []byte("\n")) {
			if bytes.Equal(bytes.TrimRight(line, " \t\r"), d) {
				return true
			}
		}
	}
	return false
}
