package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// JSONWriter writes documents as JSON, one per Write call.
type JSONWriter struct {
	w      *bufio.Writer
	pretty bool
}

// NewJSONWriter creates a JSON writer.
func NewJSONWriter(w io.Writer, pretty bool) *JSONWriter {
	return &JSONWriter{w: bufio.NewWriter(w), pretty: pretty}
}

// Write serializes one document followed by a newline.
func (w *JSONWriter) Write(data any) error {
	var out []byte
	var err error
	if w.pretty {
		out, err = json.MarshalIndent(data, "", "  ")
	} else {
		out, err = json.Marshal(data)
	}
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return nil
}

// Close flushes buffered output.
func (w *JSONWriter) Close() error {
	return w.w.Flush()
}
