package content

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// content regions tried in order, first non-empty match wins
var contentSelectors = []string{"article", "main", "body"}

// ExtractText pulls readable text out of an HTML document. It prefers the
// primary article region, then the main-content region, then falls back to
// the full body. Whitespace is collapsed to single spaces. A document with
// no text in any region yields an empty string, not an error.
func ExtractText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	// scripts and styles contribute no readable text
	doc.Find("script, style, noscript").Remove()

	for _, sel := range contentSelectors {
		text := normalizeWhitespace(doc.Find(sel).First().Text())
		if text != "" {
			return text, nil
		}
	}
	return "", nil
}

// normalizeWhitespace collapses all whitespace runs to single spaces and trims
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
