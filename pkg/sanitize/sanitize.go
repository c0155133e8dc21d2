// Package sanitize strips scripting and styling noise from HTML before it is
// handed to the converter. It is an optional pre-pass: the converter itself
// works on verbatim text, so sanitizing is only wanted when the source cells
// carry embedded scripts or tracking markup.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/treecell/treecell/internal/logger"
)

var commentRegex = regexp.MustCompile(`<!--[\s\S]*?-->`)

var eventAttrs = []string{
	"onclick", "ondblclick", "onmousedown", "onmouseup", "onmouseover",
	"onmouseout", "onkeydown", "onkeypress", "onkeyup",
	"onload", "onunload", "onerror",
	"onfocus", "onblur", "onchange", "onsubmit", "onreset",
}

// Clean removes script, style and noscript elements, HTML comments, and
// inline event-handler attributes. On a parse failure the input is returned
// unchanged; sanitizing never fails a conversion.
func Clean(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		logger.Warn("sanitize: parse failed, keeping original", "error", err)
		return html
	}

	doc.Find("script, style, noscript").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	for _, attr := range eventAttrs {
		doc.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
			s.RemoveAttr(attr)
		})
	}

	// goquery does not expose comment nodes, so comments are stripped from
	// the serialized output instead.
	out, err := doc.Find("body").Html()
	if err != nil {
		logger.Warn("sanitize: serialize failed, keeping original", "error", err)
		return html
	}
	return commentRegex.ReplaceAllString(out, "")
}
