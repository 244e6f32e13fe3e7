// Package toc builds a table of contents for a rendered document. It gives
// every matched heading a unique id, writes the ids back into the body and
// attaches the nested outline markup to the document.
package toc

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/dgallion1/doctoc/internal/document"
	"github.com/dgallion1/doctoc/internal/outline"
	"github.com/dgallion1/doctoc/internal/slug"
)

// Outcome labels reported to the Recorder.
const (
	OutcomeTransformed = "transformed"
	OutcomeSkipped     = "skipped"
	OutcomeNoHeadings  = "no_headings"
	OutcomeFailed      = "failed"
)

// Recorder receives one observation per Transform call.
type Recorder interface {
	ObserveTransform(d time.Duration, headings int, outcome string)
}

// Result summarises a Transform call.
type Result struct {
	Outcome  string
	Headings int
	Options  Options
}

// Transformer applies the TOC transform with fixed site options.
type Transformer struct {
	site Options
	log  *slog.Logger
	rec  Recorder
}

// New returns a Transformer. site is the already merged site-wide option set
// and is never modified. log and rec may be nil.
func New(site Options, log *slog.Logger, rec Recorder) *Transformer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Transformer{site: site, log: log, rec: rec}
}

// Site returns the site-wide options.
func (t *Transformer) Site() Options {
	return t.site
}

// Transform runs the transform on doc in place. Static documents and
// documents with the transform disabled are left untouched. An invalid
// heading pattern is returned as a *PatternError.
func (t *Transformer) Transform(doc *document.Document) (Result, error) {
	start := time.Now()
	res, err := t.transform(doc)
	if err != nil {
		res.Outcome = OutcomeFailed
	}
	if t.rec != nil {
		t.rec.ObserveTransform(time.Since(start), res.Headings, res.Outcome)
	}
	return res, err
}

func (t *Transformer) transform(doc *document.Document) (Result, error) {
	opts := Resolve(t.site, doc.Metadata)
	res := Result{Outcome: OutcomeSkipped, Options: opts}
	log := t.log.With("path", doc.Path)

	if doc.Static || !opts.Enabled {
		log.Debug("toc skipped", "static", doc.Static, "enabled", opts.Enabled)
		return res, nil
	}

	re, err := regexp.Compile(opts.Headers)
	if err != nil {
		log.Error("invalid toc heading pattern", "pattern", opts.Headers, "error", err)
		return res, &PatternError{Pattern: opts.Headers, Path: doc.Path, Err: err}
	}

	nodes, err := parseBody(doc.Body)
	if err != nil {
		return res, fmt.Errorf("toc: parse body: %w", err)
	}

	headings := findHeadings(nodes, re)
	if len(headings) == 0 {
		res.Outcome = OutcomeNoHeadings
		log.Debug("no headings matched", "pattern", opts.Headers)
		return res, nil
	}

	ids := slug.NewSet()
	b := outline.NewBuilder(doc.Title())
	for _, h := range headings {
		id := ids.Assign(h.Text, h.ExistingID)
		setAttr(h.node, "id", id)
		b.Insert(h.Level, h.Text, id)
	}

	body, err := renderBody(nodes)
	if err != nil {
		return res, fmt.Errorf("toc: render body: %w", err)
	}
	doc.Body = body
	doc.Outline = outline.Render(b.Root(), opts.IncludeTitle)

	res.Outcome = OutcomeTransformed
	res.Headings = b.Len()
	log.Debug("toc attached", "headings", res.Headings, "include_title", opts.IncludeTitle)
	return res, nil
}

// Headings returns the headings the transform would use for body under opts,
// without modifying anything.
func Headings(body string, opts Options) ([]Heading, error) {
	re, err := compile(opts.Headers)
	if err != nil {
		return nil, err
	}
	nodes, err := parseBody(body)
	if err != nil {
		return nil, fmt.Errorf("toc: parse body: %w", err)
	}
	return findHeadings(nodes, re), nil
}
