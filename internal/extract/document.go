package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// document wraps a parsed HTML page and exposes only what name extraction
// needs: metadata lookups, visible text, and a bounded "text preceding a
// given substring" query. Keeping the surface this small means the extractor
// is not tied to any particular DOM API.
type document struct {
	doc       *goquery.Document
	textNodes []*html.Node
}

// parseDocument parses raw HTML. Returns nil on parse failure; callers fall
// through to regex-only extraction paths.
func parseDocument(rawHTML string) *document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil
	}
	d := &document{doc: doc}
	d.collectTextNodes()
	return d
}

// collectTextNodes walks the node tree in document order, recording every
// non-blank text node outside script and style elements.
func (d *document) collectTextNodes() {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style" || n.Data == "noscript") {
			return
		}
		if n.Type == html.TextNode && strings.TrimSpace(n.Data) != "" {
			d.textNodes = append(d.textNodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, root := range d.doc.Nodes {
		walk(root)
	}
}

// precedingText locates the first text node containing substr and returns up
// to window preceding text nodes concatenated in original document order.
// Returns "" if substr does not appear in any text node (an email found only
// in attributes or raw markup has no context to walk).
func (d *document) precedingText(substr string, window int) string {
	if substr == "" {
		return ""
	}
	idx := -1
	for i, n := range d.textNodes {
		if strings.Contains(n.Data, substr) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}
	start := idx - window
	if start < 0 {
		start = 0
	}
	parts := make([]string, 0, idx-start)
	for _, n := range d.textNodes[start:idx] {
		parts = append(parts, strings.TrimSpace(n.Data))
	}
	return strings.Join(parts, " ")
}

// bodyText returns the visible body text.
func (d *document) bodyText() string {
	return d.doc.Find("body").Text()
}

// pageTitle returns the <title> element text, trimmed.
func (d *document) pageTitle() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// firstHeading returns the text of the first h1, falling back to h2.
func (d *document) firstHeading() string {
	if h := strings.TrimSpace(d.doc.Find("h1").First().Text()); h != "" {
		return h
	}
	return strings.TrimSpace(d.doc.Find("h2").First().Text())
}

// metaAuthor reads an author meta tag, preferring <meta name="author"> and
// falling back to the og:author property.
func (d *document) metaAuthor() string {
	if v, ok := d.doc.Find(`meta[name="author"]`).First().Attr("content"); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	if v, ok := d.doc.Find(`meta[property="og:author"]`).First().Attr("content"); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
