package reader

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/doctoc/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXReader handles .docx files. Paragraphs styled "Heading N" become <hN>
// elements; everything else becomes a paragraph.
type DOCXReader struct{}

func (p *DOCXReader) Read(r io.Reader, filename string) (*document.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "doctoc-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	parsed, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := newDocument(filename)
	var sb strings.Builder
	titled := false
	for _, item := range parsed.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}
		if isDocxTitle(para) && !titled {
			doc.SetMeta(document.MetaTitle, text)
			titled = true
			continue
		}
		if level := docxHeadingLevel(docxStyle(para)); level > 0 {
			writeHeading(&sb, level, text)
		} else {
			writeParagraph(&sb, text)
		}
	}
	doc.Body = strings.TrimSpace(sb.String())
	return doc, nil
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return para.Properties.Style.Val
}

// isDocxTitle reports whether the paragraph uses Word's built-in Title style.
func isDocxTitle(para *docx.Paragraph) bool {
	return strings.EqualFold(docxStyle(para), "Title")
}

// docxHeadingLevel maps "Heading1" or "heading 1" style ids to 1..6.
func docxHeadingLevel(style string) int {
	s := strings.ToLower(strings.ReplaceAll(style, " ", ""))
	if len(s) != len("heading")+1 || !strings.HasPrefix(s, "heading") {
		return 0
	}
	if d := s[len(s)-1]; d >= '1' && d <= '6' {
		return int(d - '0')
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
