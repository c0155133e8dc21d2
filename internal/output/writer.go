// Package output handles serialization of converted trees to files or
// stdout.
package output

import (
	"fmt"
	"io"
)

// Format represents output format types.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Writer serializes converted documents.
type Writer interface {
	// Write outputs a single document.
	Write(data any) error

	// Close flushes any buffered output.
	Close() error
}

// NewWriter creates a writer for the specified format. Pretty applies to
// JSON only; YAML is always indented.
func NewWriter(w io.Writer, format Format, pretty bool) (Writer, error) {
	switch format {
	case FormatJSON:
		return NewJSONWriter(w, pretty), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
