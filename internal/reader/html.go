package reader

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/doctoc/internal/document"
	"golang.org/x/net/html"
)

// HTMLReader handles HTML files. The <title> and <meta name=... content=...>
// tags become metadata; the children of <body> become the document body.
type HTMLReader struct{}

func (p *HTMLReader) Read(r io.Reader, filename string) (*document.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	doc := newDocument(filename)

	// Extract title from <title> tag if present.
	if title := findTitle(root); title != "" {
		doc.SetMeta(document.MetaTitle, title)
	}
	for key, val := range findMeta(root) {
		doc.SetMeta(key, val)
	}

	body := findBody(root)
	if body == nil {
		return doc, nil
	}
	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&sb, c); err != nil {
			return nil, fmt.Errorf("render body: %w", err)
		}
	}
	doc.Body = strings.TrimSpace(sb.String())
	return doc, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// findMeta collects <meta name content> pairs from <head>, lower-casing names.
func findMeta(n *html.Node) map[string]string {
	meta := make(map[string]string)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			var hasContent bool
			for _, a := range n.Attr {
				switch a.Key {
				case "name":
					name = strings.ToLower(strings.TrimSpace(a.Val))
				case "content":
					content, hasContent = a.Val, true
				}
			}
			if name != "" && hasContent {
				meta[name] = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return meta
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
