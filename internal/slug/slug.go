// Package slug derives URL-fragment-safe identifiers from heading text and
// keeps them unique within a single document.
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	disallowed = regexp.MustCompile(`[^\p{L}\p{N}\p{Zs}_\s-]`)
	separators = regexp.MustCompile(`[\p{Zs}\s-]+`)
)

// Slugify converts heading text to a fragment-safe slug.
// Accents are folded away before lowercasing so "Résumé" and "Resume" agree.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(strings.TrimSpace(folded))
	folded = disallowed.ReplaceAllString(folded, "")
	folded = separators.ReplaceAllString(folded, "-")
	return strings.Trim(folded, "-")
}

// Set is the per-document set of ids already handed out.
type Set struct {
	used map[string]struct{}
}

// NewSet returns an empty uniqueness set.
func NewSet() *Set {
	return &Set{used: make(map[string]struct{})}
}

// Assign picks the id for a heading. An explicit id on the element wins over
// the slug of its text; either way the result is made unique and recorded.
func (s *Set) Assign(text, existingID string) string {
	candidate := existingID
	if candidate == "" {
		candidate = Slugify(text)
	}
	return Unique(candidate, s.used)
}

// Has reports whether id was already assigned.
func (s *Set) Has(id string) bool {
	_, ok := s.used[id]
	return ok
}

// Len returns the number of assigned ids.
func (s *Set) Len() int {
	return len(s.used)
}

// Unique resolves candidate against used, appending or bumping a "_N" suffix
// until the id is free, then records it in used.
func Unique(candidate string, used map[string]struct{}) string {
	id := candidate
	for {
		if _, taken := used[id]; !taken && id != "" {
			break
		}
		id = nextSuffix(id)
	}
	used[id] = struct{}{}
	return id
}

// nextSuffix turns "stem_N" into "stem_N+1" and anything else into "id_1".
func nextSuffix(id string) string {
	if i := strings.LastIndexByte(id, '_'); i >= 0 {
		if n, ok := parseDigits(id[i+1:]); ok {
			return id[:i] + "_" + strconv.Itoa(n+1)
		}
	}
	return id + "_1"
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
