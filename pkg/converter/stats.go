package converter

import (
	"fmt"
	"strings"
	"time"

	"github.com/treecell/treecell/pkg/doctree"
)

// Stats captures metrics about one conversion.
type Stats struct {
	InputBytes int `json:"input_bytes"`

	Paragraphs int `json:"paragraphs"`
	Lists      int `json:"lists"`
	ListItems  int `json:"list_items"`
	Headings   int `json:"headings"`
	Runs       int `json:"runs"`
	Warnings   int `json:"warnings"`

	// Durations marshal as time.Duration nanosecond counts. ParseDuration
	// covers block extraction; TotalDuration covers the whole conversion.
	ParseDuration time.Duration `json:"parse_duration"`
	TotalDuration time.Duration `json:"total_duration"`
}

// NewStats creates an empty Stats instance.
func NewStats() *Stats {
	return &Stats{}
}

// Blocks returns the number of top-level blocks counted.
func (s *Stats) Blocks() int {
	return s.Paragraphs + s.Lists + s.Headings
}

// record counts the nodes of a finished tree.
func (s *Stats) record(root *doctree.Node) {
	for _, block := range root.Children {
		switch block.Type {
		case doctree.TypeParagraph:
			s.Paragraphs++
			s.Runs += len(block.Children)
		case doctree.TypeHeading:
			s.Headings++
			s.Runs += len(block.Children)
		case doctree.TypeList:
			s.Lists++
			for _, item := range block.Children {
				s.ListItems++
				s.Runs += len(item.Children)
			}
		}
	}
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Input: %d bytes\n", s.InputBytes))
	sb.WriteString(fmt.Sprintf("Blocks: %d (paragraphs=%d, lists=%d, headings=%d)\n",
		s.Blocks(), s.Paragraphs, s.Lists, s.Headings))
	sb.WriteString(fmt.Sprintf("Runs: %d\n", s.Runs))
	if s.Warnings > 0 {
		sb.WriteString(fmt.Sprintf("Warnings: %d\n", s.Warnings))
	}
	sb.WriteString(fmt.Sprintf("Timing: parse=%v, total=%v\n",
		s.ParseDuration.Round(time.Microsecond), s.TotalDuration.Round(time.Microsecond)))
	return sb.String()
}
