// Package render writes a book.Book back out as Markdown, one document per
// Topic, in the same dialect the converter reads.
package render

import (
	"fmt"
	"strings"

	"github.com/dgallion1/factbook/internal/book"
)

// File is a rendered Topic and the file name it should be written to.
type File struct {
	Location string `json:"location"`
	Content  string `json:"content"`
}

// Markdown renders every Topic of b, in order.
func Markdown(b *book.Book) []string {
	docs := make([]string, 0, len(b.Topics))
	for _, t := range b.Topics {
		docs = append(docs, Topic(t))
	}
	return docs
}

// Files renders every Topic of b and names each file after its title. When
// two titles map to the same name, later files get a "-2", "-3", ... suffix.
func Files(b *book.Book) []File {
	files := make([]File, 0, len(b.Topics))
	used := make(map[string]bool, len(b.Topics))
	for _, t := range b.Topics {
		name := FileName(t.Title)
		base := strings.TrimSuffix(name, ".md")
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s-%d.md", base, n)
		}
		used[name] = true
		files = append(files, File{
			Location: name,
			Content:  Topic(t),
		})
	}
	return files
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", "..", "_")

// FileName returns "<title>.md" with path separators replaced.
func FileName(title string) string {
	name := fileNameReplacer.Replace(strings.TrimSpace(title))
	if name == "" || name == "." {
		name = "untitled"
	}
	return name + ".md"
}

// Topic renders a single Topic.
func Topic(t book.Topic) string {
	var lines []string

	if t.Title != "" {
		lines = append(lines, "# "+t.Title+"\n")
	}
	if t.Description != "" {
		lines = append(lines, t.Description)
	}

	for _, s := range t.Subtopics {
		if s.Title != "" {
			lines = append(lines, "\n## "+s.Title+"\n")
		}
		if s.Description != "" {
			lines = append(lines, s.Description+"\n")
		}
		for _, f := range s.Facts {
			lines = append(lines, "- "+f.Text)
			for _, q := range f.Questions {
				lines = append(lines, "  - > "+q)
			}
			for _, a := range f.Attachments {
				lines = append(lines, "  - `"+a+"`")
			}
		}
	}

	return strings.Join(lines, "\n")
}
