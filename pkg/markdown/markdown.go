// Package markdown turns rich article content into plain-text excerpts and
// sanitized HTML for detail pages.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// DefaultExcerptLength is the cap applied when callers pass no length.
const DefaultExcerptLength = 200

// The substitutions run in a fixed order; reordering them changes the
// output for nested markup.
var (
	headingExpr    = regexp.MustCompile(`#{1,6}\s+`)
	boldExpr       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicExpr     = regexp.MustCompile(`\*(.*?)\*`)
	inlineCodeExpr = regexp.MustCompile("`(.*?)`")
	codeBlockExpr  = regexp.MustCompile("(?s)```.*?```")
	linkExpr       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	imageExpr      = regexp.MustCompile(`!\[([^\]]*)\]\([^)]+\)`)
)

// ExtractExcerpt strips Markdown markup from content and truncates the
// result to at most length runes. A non-positive length falls back to
// DefaultExcerptLength. Truncation is a hard cut at a rune boundary with
// trailing whitespace trimmed; already-plain text passes through unchanged
// apart from the cap.
func ExtractExcerpt(content string, length int) string {
	if length <= 0 {
		length = DefaultExcerptLength
	}

	plain := headingExpr.ReplaceAllString(content, "")
	plain = boldExpr.ReplaceAllString(plain, "$1")
	plain = italicExpr.ReplaceAllString(plain, "$1")
	plain = inlineCodeExpr.ReplaceAllString(plain, "$1")
	plain = codeBlockExpr.ReplaceAllString(plain, "")
	// Images before links: the link rule would otherwise consume the
	// bracketed part of image syntax and leave the alt text behind.
	plain = imageExpr.ReplaceAllString(plain, "")
	plain = linkExpr.ReplaceAllString(plain, "$1")
	plain = strings.TrimSpace(plain)

	runes := []rune(plain)
	if len(runes) > length {
		plain = strings.TrimRight(string(runes[:length]), " \t\n")
	}
	return plain
}

// Renderer converts Markdown to sanitized HTML for detail-page display.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer builds a GFM renderer whose output is passed through a UGC
// sanitization policy before it is ever returned.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render converts content to sanitized HTML.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return r.policy.Sanitize(buf.String()), nil
}
