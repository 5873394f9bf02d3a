package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Extract returns the visible text of an HTML document, flattened to a
// single space-joined string. Parsing is best-effort: malformed markup never
// produces an error, just whatever text the parser can recover. Returns ""
// when the document has no visible text.
func Extract(rawHTML string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	doc.Find("script, style, head, title, meta").Remove()

	var parts []string
	for _, root := range doc.Selection.Nodes {
		collectVisibleText(root, &parts)
	}
	return strings.Join(parts, " ")
}

func collectVisibleText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		text := strings.TrimSpace(n.Data)
		if text != "" && !hiddenByParent(n) {
			*parts = append(*parts, text)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectVisibleText(c, parts)
	}
}

// hiddenByParent inspects only the immediate parent's inline style. The
// check does not cascade to outer ancestors or external stylesheets; that
// limited heuristic is intentional.
func hiddenByParent(n *html.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}
	for _, attr := range parent.Attr {
		if attr.Key != "style" {
			continue
		}
		style := strings.ToLower(strings.ReplaceAll(attr.Val, " ", ""))
		return strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden")
	}
	return false
}
