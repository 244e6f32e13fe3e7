package toc

import (
	"errors"
	"fmt"
)

// PatternError reports a heading pattern that does not compile. It is a
// configuration error: the document cannot be processed and callers should
// stop the run.
type PatternError struct {
	Pattern string
	Path    string
	Err     error
}

func (e *PatternError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("toc: invalid heading pattern %q for %s: %v", e.Pattern, e.Path, e.Err)
	}
	return fmt.Sprintf("toc: invalid heading pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// IsPatternError reports whether err is or wraps a *PatternError.
func IsPatternError(err error) bool {
	var pe *PatternError
	return errors.As(err, &pe)
}
