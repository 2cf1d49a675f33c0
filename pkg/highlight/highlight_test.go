package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/pkg/highlight"
	"github.com/macropower/lifegen/pkg/theme"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	src := "a: 1\nb: 2\nc: 3\n"

	tcs := map[string]struct {
		opts []highlight.Option
		want string
	}{
		"plain": {
			want: "a: 1\nb: 2\nc: 3",
		},
		"line numbers": {
			opts: []highlight.Option{highlight.WithLineNumbers()},
			want: "    1 | a: 1\n    2 | b: 2\n    3 | c: 3",
		},
		"initial line number": {
			opts: []highlight.Option{highlight.WithLineNumbers(), highlight.WithInitialLineNumber(10)},
			want: "   10 | a: 1\n   11 | b: 2\n   12 | c: 3",
		},
		"error marker": {
			opts: []highlight.Option{highlight.WithLineNumbers(), highlight.WithError(2, 4)},
			want: "    1 | a: 1\n>   2 | b: 2\n      |    ^\n    3 | c: 3",
		},
		"error marker without gutter": {
			opts: []highlight.Option{highlight.WithError(1, 1)},
			want: "a: 1\n^\nb: 2\nc: 3",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := append([]highlight.Option{highlight.WithFormatter("noop")}, tc.opts...)
			got, err := highlight.New(highlight.LangYAML, theme.New("github"), opts...).Render(src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRenderer_UnknownLanguage(t *testing.T) {
	t.Parallel()

	got, err := highlight.New("not-a-language", theme.New("github"), highlight.WithFormatter("noop")).
		Render("fn main() {}")
	require.NoError(t, err)
	assert.Equal(t, "fn main() {}", got)
}
