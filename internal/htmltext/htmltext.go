// Package htmltext extracts readable text from HTML-shaped generator output
// so it can be fed to sentence attribution. Some backends return rich or
// web-rendered content; the attribution engine only understands plain text.
package htmltext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var tagPattern = regexp.MustCompile(`<[a-zA-Z!/][^>]*>`)

// IsHTML reports whether content looks like markup worth stripping
func IsHTML(content string) bool {
	return tagPattern.MatchString(content)
}

// VisibleText returns the visible text content of an HTML document, skipping
// script, style, noscript, and iframe subtrees
func VisibleText(content string) (string, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return "", err
	}

	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}
