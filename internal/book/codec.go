package book

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is a serialization of a Book on disk.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown format %q, expected json or yaml", s)
}

// FormatFromPath picks YAML for .yaml and .yml files, JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Marshal encodes b. JSON output is indented and newline terminated.
func Marshal(b *Book, f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return yaml.Marshal(b)
	default:
		data, err := json.MarshalIndent(b, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Unmarshal decodes a Book written by Marshal.
func Unmarshal(data []byte, f Format) (*Book, error) {
	b := New()
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, b)
	default:
		err = json.Unmarshal(data, b)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s book: %w", f, err)
	}
	return b, nil
}
