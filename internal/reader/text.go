package reader

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/doctoc/internal/document"
)

// TextReader handles plain text files. Blank lines separate paragraphs.
type TextReader struct{}

func (p *TextReader) Read(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := newDocument(filename)
	var sb strings.Builder
	for _, para := range paragraphs {
		writeParagraph(&sb, para)
	}
	doc.Body = strings.TrimSpace(sb.String())
	return doc, nil
}
