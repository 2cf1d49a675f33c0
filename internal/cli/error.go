package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"

	"github.com/macropower/lifegen/pkg/ruleset"
)

// ErrorHandler renders command errors for [fang.WithErrorHandler].
func ErrorHandler(w io.Writer, styles fang.Styles, err error) {
	mustN(fmt.Fprintln(w, styles.ErrorHeader.String()))
	mustN(fmt.Fprintln(w, lipgloss.NewStyle().MarginLeft(2).Render(err.Error())))
	mustN(fmt.Fprintln(w))

	switch {
	case isUsageError(err):
		mustN(fmt.Fprintln(w, hint(styles, "Try", "--help", "for usage.")))
		mustN(fmt.Fprintln(w))

	case errors.Is(err, ruleset.ErrUnknownRuleset):
		mustN(fmt.Fprintln(w, hint(styles, "Run", cmdName+" rulesets", "to list the available rulesets.")))
		mustN(fmt.Fprintln(w))

	case errors.Is(err, ErrWatchEmbedded):
		mustN(fmt.Fprintln(w, hint(styles, "Set", "--shader-root", "to a directory containing the template.")))
		mustN(fmt.Fprintln(w))
	}
}

func hint(styles fang.Styles, before, flag, after string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		styles.ErrorText.UnsetWidth().Render(before),
		styles.Program.Flag.Render(flag),
		styles.ErrorText.UnsetWidth().UnsetMargins().UnsetTransform().PaddingLeft(1).Render(after),
	)
}

// XXX: this is a hack to detect usage errors.
// See: https://github.com/spf13/cobra/pull/2266
func isUsageError(err error) bool {
	s := err.Error()
	for _, prefix := range []string{
		"flag needs an argument:",
		"unknown flag:",
		"unknown shorthand flag:",
		"unknown command",
		"invalid argument",
		"accepts ",
		"requires at least ",
	} {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}

	return false
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func mustN(_ int, err error) {
	must(err)
}
