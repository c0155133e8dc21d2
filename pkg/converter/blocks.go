package converter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/treecell/treecell/pkg/doctree"
)

// Pass ranks for legacy ordering: paragraphs, unordered lists, ordered
// lists, then headings by level.
const (
	rankParagraph = 0
	rankUnordered = 1
	rankOrdered   = 2
	rankHeading   = 3 // h1=3 .. h6=8
)

// span is one discovered block with enough position data for either
// ordering strategy.
type span struct {
	rank int // pass rank, for legacy grouped ordering
	pos  int // byte offset of the opening tag, for document ordering
	node *doctree.Node
}

// extractor scans the raw document text for block constructs. Spans and
// warnings are collected as they are found so a recovered failure can still
// assemble a partial tree from whatever was discovered before the fault.
type extractor struct {
	input    string
	spans    []span
	warnings []Warning
}

// passHook is a test seam invoked between extraction passes.
var passHook func(*extractor)

// run performs the four block passes in fixed order.
func (e *extractor) run() {
	e.scanParagraphs()
	if passHook != nil {
		passHook(e)
	}
	e.scanLists("ul", doctree.ListUnordered, rankUnordered)
	e.scanLists("ol", doctree.ListOrdered, rankOrdered)
	e.scanHeadings()
}

// warnUnterminated records an opening block tag that never closes. The tag
// is not extracted, but the caller gets a structured diagnostic instead of a
// silent skip.
func (e *extractor) warnUnterminated(tag string) {
	e.warnings = append(e.warnings, Warning{
		Phase:   "extract",
		Message: "unterminated block tag, skipped",
		Context: "<" + tag + ">",
	})
}

func (e *extractor) scanParagraphs() {
	pos := 0
	for {
		el, ok, dangling := findElement(e.input, "p", pos)
		if !ok {
			if dangling {
				e.warnUnterminated("p")
			}
			break
		}
		runs := paragraphRuns(e.input[el.innerStart:el.innerEnd])
		e.spans = append(e.spans, span{
			rank: rankParagraph,
			pos:  el.outerStart,
			node: doctree.NewParagraph(runs),
		})
		pos = el.outerEnd
	}
}

func (e *extractor) scanLists(tag string, listType doctree.ListType, rank int) {
	pos := 0
	for {
		el, ok, dangling := findElement(e.input, tag, pos)
		if !ok {
			if dangling {
				e.warnUnterminated(tag)
			}
			break
		}
		inner := e.input[el.innerStart:el.innerEnd]
		var items []*doctree.Node
		itemPos := 0
		for {
			item, ok, itemDangling := findElement(inner, "li", itemPos)
			if !ok {
				if itemDangling {
					e.warnUnterminated("li")
				}
				break
			}
			if runs := segment(inner[item.innerStart:item.innerEnd]); len(runs) > 0 {
				items = append(items, doctree.NewListItem(runs))
			}
			itemPos = item.outerEnd
		}
		if len(items) > 0 {
			e.spans = append(e.spans, span{
				rank: rank,
				pos:  el.outerStart,
				node: doctree.NewList(listType, items),
			})
		}
		pos = el.outerEnd
	}
}

func (e *extractor) scanHeadings() {
	for level := 1; level <= 6; level++ {
		tag := "h" + strconv.Itoa(level)
		pos := 0
		for {
			el, ok, dangling := findElement(e.input, tag, pos)
			if !ok {
				if dangling {
					e.warnUnterminated(tag)
				}
				break
			}
			if runs := segment(e.input[el.innerStart:el.innerEnd]); len(runs) > 0 {
				e.spans = append(e.spans, span{
					rank: rankHeading + level - 1,
					pos:  el.outerStart,
					node: doctree.NewHeading(level, runs),
				})
			}
			pos = el.outerEnd
		}
	}
}

// paragraphRuns segments paragraph content, collapsing empty, whitespace-only
// or lone line-break content to a single blank run. A paragraph always has at
// least one run.
func paragraphRuns(inner string) []*doctree.Node {
	if isBlankContent(inner) {
		return []*doctree.Node{doctree.NewText(" ")}
	}
	runs := segment(inner)
	if len(runs) == 0 {
		return []*doctree.Node{doctree.NewText(" ")}
	}
	return runs
}

// lineBreaks are the literal forms a lone <br> may take.
var lineBreaks = []string{"<br>", "<br/>", "<br />"}

func isBlankContent(inner string) bool {
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		return true
	}
	for _, br := range lineBreaks {
		if trimmed == br {
			return true
		}
	}
	return false
}

// element locates one block occurrence in raw text.
type element struct {
	outerStart int
	innerStart int
	innerEnd   int
	outerEnd   int
}

// findElement locates the next <tag ...>...</tag> span at or after from.
// The opening tag may carry attributes; the closing tag is matched as the
// first literal </tag> after the opening tag ends. Matching is over raw
// lowercase tag text, not a parse tree. The third result reports an opening
// tag that never closes, which ends the pass.
func findElement(s, tag string, from int) (el element, found, dangling bool) {
	openPrefix := "<" + tag
	closeTag := "</" + tag + ">"
	for from < len(s) {
		rel := strings.Index(s[from:], openPrefix)
		if rel < 0 {
			return element{}, false, false
		}
		outerStart := from + rel
		nameEnd := outerStart + len(openPrefix)
		if nameEnd >= len(s) {
			return element{}, false, true
		}
		// Reject prefixes of longer tag names, e.g. <p matching <pre>.
		switch s[nameEnd] {
		case '>', ' ', '\t', '\n', '\r':
		default:
			from = outerStart + 1
			continue
		}
		gt := strings.IndexByte(s[nameEnd:], '>')
		if gt < 0 {
			return element{}, false, true
		}
		innerStart := nameEnd + gt + 1
		closeRel := strings.Index(s[innerStart:], closeTag)
		if closeRel < 0 {
			// Unterminated block: nothing past this point can close it
			// either, so the pass ends here.
			return element{}, false, true
		}
		innerEnd := innerStart + closeRel
		return element{
			outerStart: outerStart,
			innerStart: innerStart,
			innerEnd:   innerEnd,
			outerEnd:   innerEnd + len(closeTag),
		}, true, false
	}
	return element{}, false, false
}

// assemble builds the root from collected spans. Legacy ordering keeps the
// grouped pass order the spans were collected in; document ordering sorts by
// position in the source text.
func assemble(spans []span, documentOrder bool) *doctree.Node {
	root := doctree.NewRoot()
	if documentOrder {
		sorted := make([]span, len(spans))
		copy(sorted, spans)
		// Stable so pass order breaks ties at identical offsets.
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].pos < sorted[j].pos })
		spans = sorted
	}
	for _, sp := range spans {
		root.Append(sp.node)
	}
	return root
}
