package document

// Metadata keys understood by the TOC transform.
const (
	MetaTitle           = "title"
	MetaTOCRun          = "toc_run"
	MetaTOCIncludeTitle = "toc_include_title"
	MetaTOCHeaders      = "toc_headers"
	defaultOutlineTitle = "Title"
)

// Document is a rendered document handed to the transform by the host pipeline.
type Document struct {
	Path     string            // Source path or upload filename
	Body     string            // Rendered HTML body (fragment, no <html>/<body> wrapper)
	Metadata map[string]string // Per-document overrides and title
	Outline  string            // Rendered outline markup; empty when none attached
	Static   bool              // Non-transformable asset, passed through untouched
}

// Meta returns the metadata value for key and whether it was set.
func (d *Document) Meta(key string) (string, bool) {
	if d.Metadata == nil {
		return "", false
	}
	v, ok := d.Metadata[key]
	return v, ok
}

// SetMeta sets a metadata value, allocating the map when needed.
func (d *Document) SetMeta(key, value string) {
	if d.Metadata == nil {
		d.Metadata = make(map[string]string)
	}
	d.Metadata[key] = value
}

// Title returns the document title used for the outline root.
func (d *Document) Title() string {
	if t, ok := d.Meta(MetaTitle); ok && t != "" {
		return t
	}
	return defaultOutlineTitle
}

// HasOutline reports whether an outline has been attached.
func (d *Document) HasOutline() bool {
	return d.Outline != ""
}
