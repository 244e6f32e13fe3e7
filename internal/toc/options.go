package toc

import (
	"regexp"

	"github.com/dgallion1/doctoc/internal/document"
)

// DefaultHeaders matches every heading tag from h1 to h6.
const DefaultHeaders = "^h[1-6]"

// Options controls the transform for one document.
type Options struct {
	Enabled      bool   `json:"enabled"`
	Headers      string `json:"headers"`
	IncludeTitle bool   `json:"include_title"`
}

// Defaults returns the built-in options.
func Defaults() Options {
	return Options{
		Enabled:      true,
		Headers:      DefaultHeaders,
		IncludeTitle: true,
	}
}

// Resolve layers a document's metadata overrides over the site options.
// Boolean overrides are on only for the exact string "true".
func Resolve(site Options, meta map[string]string) Options {
	opts := site
	if v, ok := meta[document.MetaTOCRun]; ok {
		opts.Enabled = v == "true"
	}
	if v, ok := meta[document.MetaTOCIncludeTitle]; ok {
		opts.IncludeTitle = v == "true"
	}
	if v, ok := meta[document.MetaTOCHeaders]; ok {
		opts.Headers = v
	}
	return opts
}

// Validate compiles the heading pattern.
func Validate(opts Options) error {
	_, err := compile(opts.Headers)
	return err
}

func compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &PatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}
