// Package highlight renders source text with chroma syntax highlighting for
// terminal output, optionally with a line-number gutter and an error marker.
package highlight

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/muesli/termenv"

	"github.com/macropower/lifegen/pkg/theme"
)

// Languages with dedicated helpers.
const (
	LangWGSL = "wgsl"
	LangYAML = "yaml"
)

// Renderer handles rendering content with chroma styling.
type Renderer struct {
	lexer       chroma.Lexer
	formatter   chroma.Formatter
	theme       *theme.Theme
	initialLine int
	errLine     int
	errCol      int
	lineNumbers bool
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithLineNumbers prefixes every line with its line number.
func WithLineNumbers() Option {
	return func(r *Renderer) {
		r.lineNumbers = true
	}
}

// WithInitialLineNumber sets the number of the first rendered line.
func WithInitialLineNumber(n int) Option {
	return func(r *Renderer) {
		r.initialLine = n
	}
}

// WithError marks the given line and 1-based column. The line uses the same
// numbering as the gutter.
func WithError(line, col int) Option {
	return func(r *Renderer) {
		r.errLine = line
		r.errCol = col
	}
}

// WithFormatter sets the chroma formatter explicitly.
// This is primarily useful for testing.
func WithFormatter(name string) Option {
	return func(r *Renderer) {
		r.formatter = formatters.Get(name)
	}
}

// New creates a new [Renderer] for the given chroma language name.
// Unknown languages are rendered without highlighting.
func New(lang string, t *theme.Theme, opts ...Option) *Renderer {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	r := &Renderer{
		lexer:       chroma.Coalesce(lexer),
		formatter:   formatters.Get(profileFormatter(termenv.ColorProfile())),
		theme:       t,
		initialLine: 1,
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

func profileFormatter(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal8"
	case termenv.Ascii:
		return "noop"
	}

	return "noop"
}

// Render highlights src and applies the gutter and error marker.
func (r *Renderer) Render(src string) (string, error) {
	iterator, err := r.lexer.Tokenise(nil, strings.TrimSuffix(src, "\n"))
	if err != nil {
		return "", fmt.Errorf("lexer tokenize: %w", err)
	}

	buf := &bytes.Buffer{}

	err = r.formatter.Format(buf, r.theme.ChromaStyle, iterator)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	var sb strings.Builder

	for i, line := range lines {
		n := r.initialLine + i

		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(r.gutter(n))
		sb.WriteString(line)

		if n == r.errLine && r.errCol > 0 {
			sb.WriteByte('\n')
			sb.WriteString(r.gutter(0))
			sb.WriteString(strings.Repeat(" ", r.errCol-1))
			sb.WriteString(r.theme.ErrorStyle.Render("^"))
		}
	}

	return sb.String(), nil
}

func (r *Renderer) gutter(n int) string {
	if !r.lineNumbers {
		return ""
	}

	switch {
	case n == 0:
		return r.theme.LineNumberStyle.Render("     | ")
	case n == r.errLine:
		return r.theme.ErrorStyle.Render(fmt.Sprintf(">%4d | ", n))
	}

	return r.theme.LineNumberStyle.Render(fmt.Sprintf("%5d | ", n))
}

// WGSL highlights WGSL source with the given theme.
func WGSL(src string, t *theme.Theme) (string, error) {
	return New(LangWGSL, t).Render(src)
}
