// Package theme derives terminal styles from a chroma syntax highlighting
// style, so that highlighted shader output, configuration errors and CLI help
// share one palette.
package theme

import (
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var Default = New("auto")

type Theme struct {
	ChromaStyle *chroma.Style

	ErrorStyle          lipgloss.Style
	ErrorTitleStyle     lipgloss.Style
	GenericTextStyle    lipgloss.Style
	LineNumberStyle     lipgloss.Style
	LogoStyle           lipgloss.Style
	ResultTitleStyle    lipgloss.Style
	SelectedStyle       lipgloss.Style
	SelectedSubtleStyle lipgloss.Style
	SubtleStyle         lipgloss.Style

	// Name is the resolved chroma style name.
	Name string
}

func New(theme string) *Theme {
	style := newChromaStyle(theme)

	var (
		genericStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.Background))

		logoStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromTokenBg(chroma.Background)).
				Background(style.lipglossFromToken(chroma.NameTag)).
				Bold(true)

		selectedStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.NameTag))

		selectedSubtleStyle = lipgloss.NewStyle().
					Foreground(style.lipglossFromTokenWithFactor(chroma.NameTag, 0.3))

		errorStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.GenericDeleted)).
				Bold(true)

		errorTitleStyle = genericStyle.
				Background(style.lipglossFromToken(chroma.GenericDeleted))

		resultTitleStyle = genericStyle.
					Background(style.lipglossFromToken(chroma.GenericInserted))

		subtleStyle = lipgloss.NewStyle().
				Foreground(style.lipglossFromToken(chroma.Comment))
	)

	return &Theme{
		ChromaStyle: style.style,
		Name:        style.style.Name,

		ErrorStyle:          errorStyle,
		ErrorTitleStyle:     errorTitleStyle,
		GenericTextStyle:    genericStyle,
		LineNumberStyle:     subtleStyle,
		LogoStyle:           logoStyle,
		ResultTitleStyle:    resultTitleStyle,
		SelectedStyle:       selectedStyle,
		SelectedSubtleStyle: selectedSubtleStyle,
		SubtleStyle:         subtleStyle,
	}
}

// Register adds a custom chroma style that can then be selected by name.
func Register(name string, entries chroma.StyleEntries) error {
	customTheme, err := chroma.NewStyle(name, entries)
	if err != nil {
		return fmt.Errorf("create chroma style: %w", err)
	}
	styles.Register(customTheme)

	return nil
}

type chromaStyle struct {
	style *chroma.Style
}

func newChromaStyle(theme string) chromaStyle {
	s := styles.Get(getStyle(theme))
	if s == nil {
		s = styles.Fallback
	}

	return chromaStyle{style: s}
}

func (cs chromaStyle) lipglossFromToken(c chroma.TokenType) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Colour.String()) // nolint:misspell // Chroma naming.
}

func (cs chromaStyle) lipglossFromTokenBg(c chroma.TokenType) lipgloss.Color {
	s := cs.style.Get(c)

	return lipgloss.Color(s.Background.String())
}

func (cs chromaStyle) lipglossFromTokenWithFactor(c chroma.TokenType, factor float64) lipgloss.Color {
	s := cs.style.Get(c)

	sc := s.Colour.BrightenOrDarken(factor) // nolint:misspell // Chroma naming.

	return lipgloss.Color(sc.String())
}

func getStyle(style string) string {
	switch style {
	case "dark":
		return "github-dark"
	case "light":
		return "github"
	case "auto", "":
		return getDefaultStyle()
	default:
		return style
	}
}

func getDefaultStyle() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "" // Fallback.
	}
	if termenv.HasDarkBackground() {
		return "github-dark"
	}

	return "github"
}
