package markdown

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestExtractExcerptStripsMarkup(t *testing.T) {
	t.Parallel()

	got := ExtractExcerpt("# Title\n**bold** and *italic* and `code`", 200)
	require.Equal(t, "Title\nbold and italic and code", got)
}

func TestExtractExcerpt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		length  int
		want    string
	}{
		{
			name:    "empty input",
			content: "",
			length:  200,
			want:    "",
		},
		{
			name:    "plain text is idempotent",
			content: "Just a plain sentence.",
			length:  200,
			want:    "Just a plain sentence.",
		},
		{
			name:    "link keeps display text",
			content: "See [our catalog](https://example.com/products) for details",
			length:  200,
			want:    "See our catalog for details",
		},
		{
			name:    "image removed including alt text",
			content: "Intro ![machine photo](/img/lathe.png) outro",
			length:  200,
			want:    "Intro  outro",
		},
		{
			name:    "zero length falls back to default",
			content: "short",
			length:  0,
			want:    "short",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ExtractExcerpt(tt.content, tt.length))
		})
	}
}

func TestExtractExcerptCapsLength(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 100)
	got := ExtractExcerpt(long, 50)
	require.LessOrEqual(t, utf8.RuneCountInString(got), 50)

	// Rune-safe: multibyte content is never split mid-character.
	cjk := strings.Repeat("机", 300)
	got = ExtractExcerpt(cjk, 200)
	require.Equal(t, 200, utf8.RuneCountInString(got))
	require.True(t, utf8.ValidString(got))
}

func TestExtractExcerptIdempotent(t *testing.T) {
	t.Parallel()

	once := ExtractExcerpt("**bold** text and [a link](http://x)", 200)
	require.Equal(t, once, ExtractExcerpt(once, 200))
}

func TestRendererSanitizes(t *testing.T) {
	t.Parallel()

	r := NewRenderer()

	out, err := r.Render("# Heading\n\nSome **bold** text")
	require.NoError(t, err)
	require.Contains(t, out, "<h1")
	require.Contains(t, out, "<strong>bold</strong>")

	out, err = r.Render("hello <script>alert(1)</script>")
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
}
