// Package reader turns source files into rendered documents ready for the
// TOC transform.
package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/doctoc/internal/document"
	"golang.org/x/net/html"
)

// Reader converts raw file bytes into a rendered Document.
type Reader interface {
	Read(r io.Reader, filename string) (*document.Document, error)
}

// SupportedExtensions lists file extensions rendered to HTML. Anything else
// is treated as a static asset.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tunes readers that shell out or fall back.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string, opts Options) Reader {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextReader{}
	case ".md", ".markdown":
		return &MarkdownReader{}
	case ".html", ".htm":
		return &HTMLReader{}
	case ".pdf":
		return &PDFReader{FallbackPdftotext: opts.PDFFallbackPdftotext}
	case ".docx":
		return &DOCXReader{}
	default:
		return &StaticReader{}
	}
}

// IsSupportedExtension checks if a file is rendered rather than passed through.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ReadFile is a convenience wrapper picking the reader by extension.
func ReadFile(r io.Reader, filename string, opts Options) (*document.Document, error) {
	doc, err := ForFile(filename, opts).Read(r, filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return doc, nil
}

// StaticReader passes non-renderable files through untouched.
type StaticReader struct{}

func (p *StaticReader) Read(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return &document.Document{
		Path:   filename,
		Body:   string(data),
		Static: true,
	}, nil
}

// newDocument starts a document titled after the file name.
func newDocument(filename string) *document.Document {
	doc := &document.Document{Path: filename}
	base := filepath.Base(filename)
	doc.SetMeta(document.MetaTitle, strings.TrimSuffix(base, filepath.Ext(base)))
	return doc
}

func writeHeading(sb *strings.Builder, level int, text string) {
	fmt.Fprintf(sb, "<h%d>%s</h%d>\n", level, html.EscapeString(text), level)
}

func writeParagraph(sb *strings.Builder, text string) {
	sb.WriteString("<p>")
	sb.WriteString(strings.ReplaceAll(html.EscapeString(text), "\n", "<br>\n"))
	sb.WriteString("</p>\n")
}
