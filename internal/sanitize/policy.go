package sanitize

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// The filter is a whitelist, held as data. Everything not listed here is
// removed (not escaped); text content of removed tags survives, except for
// script/style style containers whose bodies bluemonday skips entirely.
var (
	allowedTags = []string{
		"p", "br",
		"b", "strong", "i", "em", "u",
		"ol", "ul", "li",
		"a",
		"h2", "h3",
		"blockquote", "code", "pre",
		"span", "div",
	}
	allowedURLSchemes = []string{"http", "https", "mailto"}
)

const (
	anchorRel    = "noopener noreferrer"
	anchorTarget = "_blank"
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs("href").OnElements("a")
	p.AllowURLSchemes(allowedURLSchemes...)
	return p
}

// HTML applies the allow-list filter to a fragment and normalizes every
// surviving anchor to carry exactly href, rel="noopener noreferrer" and
// target="_blank". Re-running on its own output is byte-identical.
func HTML(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	return rewriteAnchors(policy.Sanitize(fragment))
}

func rewriteAnchors(fragment string) string {
	context := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return fragment
	}

	var buffer bytes.Buffer
	for _, node := range nodes {
		forceAnchorAttrs(node)
		if err := html.Render(&buffer, node); err != nil {
			return fragment
		}
	}
	return buffer.String()
}

func forceAnchorAttrs(node *html.Node) {
	if node.Type == html.ElementNode && node.DataAtom == atom.A {
		attrs := make([]html.Attribute, 0, 3)
		for _, attr := range node.Attr {
			if attr.Namespace == "" && attr.Key == "href" {
				attrs = append(attrs, attr)
				break
			}
		}
		attrs = append(attrs,
			html.Attribute{Key: "rel", Val: anchorRel},
			html.Attribute{Key: "target", Val: anchorTarget},
		)
		node.Attr = attrs
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		forceAnchorAttrs(child)
	}
}
