// Package converter turns flat HTML fragments into doctree documents.
//
// The converter is not a spec-compliant HTML parser. It scans raw text for a
// closed vocabulary of block and inline tags, which is what the
// product-description HTML it targets actually uses. Unrecognized or
// malformed markup is preserved verbatim in the text runs rather than
// rejected.
package converter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/treecell/treecell/internal/logger"
	"github.com/treecell/treecell/pkg/doctree"
)

// Config controls conversion behavior.
type Config struct {
	// DocumentOrder orders root children by position in the source text.
	// When false (the default) blocks are grouped by pass: paragraphs,
	// unordered lists, ordered lists, then headings by level. The grouped
	// order matches the behavior downstream consumers were built against.
	DocumentOrder bool
}

// Warning is a non-fatal issue recorded during conversion.
type Warning struct {
	Phase   string `json:"phase"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result carries the converted tree plus diagnostics. Root is always
// non-nil: on an internal fault it holds whatever blocks were assembled
// before the fault, and the fault is recorded as a warning.
type Result struct {
	Root     *doctree.Node `json:"root"`
	Warnings []Warning     `json:"warnings,omitempty"`
	Stats    *Stats        `json:"stats"`
}

// Convert builds a document tree from an HTML fragment using the default
// configuration. It never fails; see ConvertWithResult for diagnostics.
func Convert(html string) *doctree.Node {
	return ConvertWithResult(html, nil).Root
}

// ConvertWithResult builds a document tree and returns it with warnings and
// stats. A fault inside extraction is recovered: the partial tree assembled
// so far is returned and the fault becomes a warning.
func ConvertWithResult(html string, cfg *Config) *Result {
	if cfg == nil {
		cfg = &Config{}
	}
	start := time.Now()
	result := &Result{Stats: NewStats()}
	result.Stats.InputBytes = len(html)

	e := &extractor{input: html}
	parseStart := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				msg := fmt.Sprintf("%v", r)
				e.warnings = append(e.warnings, Warning{
					Phase:   "extract",
					Message: "conversion fault, returning partial tree",
					Context: msg,
				})
				logger.Warn("conversion fault, returning partial tree", "fault", msg)
			}
		}()
		e.run()
	}()
	result.Stats.ParseDuration = time.Since(parseStart)

	result.Warnings = e.warnings
	result.Root = assemble(e.spans, cfg.DocumentOrder)
	result.Stats.record(result.Root)
	result.Stats.Warnings = len(result.Warnings)
	result.Stats.TotalDuration = time.Since(start)
	return result
}

// ConvertString converts an HTML fragment and returns the tree as compact
// JSON.
func ConvertString(html string) (string, error) {
	return marshalRoot(Convert(html))
}

// ConvertStringWithConfig is ConvertString with an explicit configuration.
func ConvertStringWithConfig(html string, cfg *Config) (string, error) {
	return marshalRoot(ConvertWithResult(html, cfg).Root)
}

func marshalRoot(root *doctree.Node) (string, error) {
	out, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("serialize tree: %w", err)
	}
	return string(out), nil
}
