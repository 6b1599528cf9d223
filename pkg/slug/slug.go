// Package slug derives URL-safe identifiers from human titles.
package slug

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

var (
	invalidChars  = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRuns    = regexp.MustCompile(`-{2,}`)
	validSlugExpr = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Make derives a lowercase, ASCII-hyphenated identifier from a title.
// It is deterministic and total: a title with no transliterable characters
// falls back to "n-" plus an 8-character FNV-64a digest of the raw title,
// so distinct titles keep distinct fallbacks.
func Make(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = invalidChars.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return fallback(title)
	}
	return s
}

// Valid reports whether s is a canonical slug.
func Valid(s string) bool {
	return validSlugExpr.MatchString(s)
}

// WithSuffix appends a numeric disambiguation suffix. Used when the base
// slug is already taken by another row of the same resource type.
func WithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

func fallback(title string) string {
	h := fnv.New64a()
	h.Write([]byte(title))
	return fmt.Sprintf("n-%08x", h.Sum64()&0xffffffff)
}
