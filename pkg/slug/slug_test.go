package slug

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple title",
			input: "High Precision CNC Lathe",
			want:  "high-precision-cnc-lathe",
		},
		{
			name:  "surrounding whitespace",
			input: "  Hydraulic Press 2000  ",
			want:  "hydraulic-press-2000",
		},
		{
			name:  "punctuation collapses to single hyphens",
			input: "Q3 Results: Up 15% (YoY)!",
			want:  "q3-results-up-15-yoy",
		},
		{
			name:  "already a slug",
			input: "industrial-robots",
			want:  "industrial-robots",
		},
		{
			name:  "leading and trailing separators trimmed",
			input: "--edge case--",
			want:  "edge-case",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Make(tt.input))
			require.True(t, Valid(Make(tt.input)))
		})
	}
}

func TestMakeDeterministic(t *testing.T) {
	t.Parallel()

	in := "Some Mixed  题目 Title"
	require.Equal(t, Make(in), Make(in))

	// Applying Make to its own output is a no-op.
	out := Make(in)
	require.Equal(t, out, Make(out))
}

func TestMakeFallback(t *testing.T) {
	t.Parallel()

	// No transliterable characters: deterministic hashed fallback.
	got := Make("数控机床")
	require.True(t, Valid(got))
	require.Regexp(t, `^n-[0-9a-f]{8}$`, got)
	require.Equal(t, got, Make("数控机床"))

	// Distinct inputs keep distinct fallbacks.
	require.NotEqual(t, got, Make("液压设备"))
}

func TestWithSuffix(t *testing.T) {
	t.Parallel()

	require.Equal(t, "pump-2", WithSuffix("pump", 2))
	require.True(t, Valid(WithSuffix("pump", 2)))
}
