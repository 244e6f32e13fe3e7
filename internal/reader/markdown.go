package reader

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/doctoc/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"gopkg.in/yaml.v3"
)

// MarkdownReader handles Markdown files using goldmark. A leading YAML front
// matter block supplies the metadata. Heading ids are left to the TOC
// transform, except explicit {#id} attributes which it reuses.
type MarkdownReader struct{}

func (p *MarkdownReader) Read(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc := newDocument(filename)

	fm, body := splitFrontMatter(src)
	if fm != nil {
		meta := map[string]any{}
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("parse front matter: %w", err)
		}
		for k, v := range meta {
			if v == nil {
				continue
			}
			doc.SetMeta(strings.ToLower(k), fmt.Sprint(v))
		}
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAttribute()),
	)
	var buf bytes.Buffer
	if err := md.Convert(body, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	doc.Body = strings.TrimSpace(buf.String())
	return doc, nil
}

// splitFrontMatter separates a "---" delimited YAML block from the body.
// fm is nil when the source has no front matter.
func splitFrontMatter(src []byte) (fm, body []byte) {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(src, []byte("---\n")) {
		return nil, src
	}
	rest := src[4:]
	if bytes.HasPrefix(rest, []byte("---\n")) {
		return []byte{}, rest[4:]
	}
	idx := bytes.Index(rest, []byte("\n---\n"))
	if idx < 0 {
		if bytes.HasSuffix(rest, []byte("\n---")) {
			return rest[:len(rest)-4], nil
		}
		return nil, src
	}
	return rest[:idx+1], rest[idx+5:]
}
