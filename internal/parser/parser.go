package parser

import (
	"path/filepath"
	"strings"
)

// SupportedExtensions lists file extensions this tool can convert.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Tokenizer turns one Markdown document into a flat token stream.
type Tokenizer interface {
	Tokenize(src []byte) ([]Token, error)
}
