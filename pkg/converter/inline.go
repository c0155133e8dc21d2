package converter

import (
	"strings"

	"github.com/treecell/treecell/pkg/doctree"
)

// attr identifies one inline formatting attribute.
type attr uint8

const (
	attrItalic attr = iota
	attrBold
	attrUnderline
	attrStrikethrough
	attrCode
	attrHighlight
	attrSmall
	attrSubscript
	attrSuperscript
	numAttrs
)

// set turns the attribute on in a Flags value.
func (a attr) set(f *doctree.Flags) {
	switch a {
	case attrItalic:
		f.Italic = true
	case attrBold:
		f.Bold = true
	case attrUnderline:
		f.Underline = true
	case attrStrikethrough:
		f.Strikethrough = true
	case attrCode:
		f.Code = true
	case attrHighlight:
		f.Highlight = true
	case attrSmall:
		f.Small = true
	case attrSubscript:
		f.Subscript = true
	case attrSuperscript:
		f.Superscript = true
	}
}

// marker is one recognized formatting tag pair. Markers are matched as
// literal fixed strings: an opening tag carrying attributes is not part of
// the vocabulary and stays in the text verbatim.
type marker struct {
	open  string
	close string
	attr  attr
}

// markers is the closed vocabulary of inline formatting tags. Every literal
// ends in '>', so no entry is a prefix of another and match order is
// irrelevant.
var markers = []marker{
	{"<em>", "</em>", attrItalic},
	{"<i>", "</i>", attrItalic},
	{"<strong>", "</strong>", attrBold},
	{"<b>", "</b>", attrBold},
	{"<u>", "</u>", attrUnderline},
	{"<strike>", "</strike>", attrStrikethrough},
	{"<s>", "</s>", attrStrikethrough},
	{"<del>", "</del>", attrStrikethrough},
	{"<code>", "</code>", attrCode},
	{"<mark>", "</mark>", attrHighlight},
	{"<small>", "</small>", attrSmall},
	{"<sub>", "</sub>", attrSubscript},
	{"<sup>", "</sup>", attrSuperscript},
}

type tokenKind uint8

const (
	tokenText tokenKind = iota
	tokenOpen
	tokenClose
)

// token is one piece of segmented content. Marker tokens keep their raw
// literal so an unmatched one can be demoted back to verbatim text.
type token struct {
	kind tokenKind
	text string
	m    *marker
}

// tokenize splits content into text and marker tokens. Anything that is not
// an exact marker literal, including tags outside the vocabulary, remains
// plain text.
func tokenize(content string) []token {
	var toks []token
	start := 0
	i := 0
	for i < len(content) {
		if content[i] != '<' {
			i++
			continue
		}
		m, closing := matchMarker(content[i:])
		if m == nil {
			i++
			continue
		}
		if start < i {
			toks = append(toks, token{kind: tokenText, text: content[start:i]})
		}
		lit := m.open
		kind := tokenOpen
		if closing {
			lit = m.close
			kind = tokenClose
		}
		toks = append(toks, token{kind: kind, text: lit, m: m})
		i += len(lit)
		start = i
	}
	if start < len(content) {
		toks = append(toks, token{kind: tokenText, text: content[start:]})
	}
	return toks
}

// matchMarker reports which marker literal, if any, begins at s.
func matchMarker(s string) (m *marker, closing bool) {
	for i := range markers {
		if strings.HasPrefix(s, markers[i].open) {
			return &markers[i], false
		}
		if strings.HasPrefix(s, markers[i].close) {
			return &markers[i], true
		}
	}
	return nil, false
}

// resolve pairs open markers with their closes (most recent open of the same
// tag wins). Unmatched opens and closes are demoted to text tokens so the
// original markup is preserved verbatim in the output runs.
func resolve(toks []token) {
	open := make(map[*marker][]int)
	matched := make([]bool, len(toks))
	for i, t := range toks {
		switch t.kind {
		case tokenOpen:
			open[t.m] = append(open[t.m], i)
		case tokenClose:
			stack := open[t.m]
			if len(stack) == 0 {
				continue
			}
			j := stack[len(stack)-1]
			open[t.m] = stack[:len(stack)-1]
			matched[i] = true
			matched[j] = true
		}
	}
	for i := range toks {
		if toks[i].kind != tokenText && !matched[i] {
			toks[i].kind = tokenText
			toks[i].m = nil
		}
	}
}

// segment splits inline content into text runs. It walks the resolved token
// stream tracking the active formatting set and flushes a run whenever
// buffered text exists and the set changes. Nested tags of different types
// compose onto a single run; zero-length runs are never emitted.
func segment(content string) []*doctree.Node {
	if content == "" {
		return nil
	}
	toks := tokenize(content)
	resolve(toks)

	var runs []*doctree.Node
	var buf strings.Builder
	var counts [numAttrs]int
	cur := doctree.Flags{}

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		runs = append(runs, doctree.NewTextFlags(buf.String(), cur))
		buf.Reset()
	}

	for _, t := range toks {
		switch t.kind {
		case tokenText:
			buf.WriteString(t.text)
		case tokenOpen:
			counts[t.m.attr]++
			if f := flagsFor(counts); f != cur {
				flush()
				cur = f
			}
		case tokenClose:
			counts[t.m.attr]--
			if f := flagsFor(counts); f != cur {
				flush()
				cur = f
			}
		}
	}
	flush()
	return runs
}

// flagsFor builds the Flags value for the current nesting counts.
func flagsFor(counts [numAttrs]int) doctree.Flags {
	var f doctree.Flags
	for a := attr(0); a < numAttrs; a++ {
		if counts[a] > 0 {
			a.set(&f)
		}
	}
	return f
}
