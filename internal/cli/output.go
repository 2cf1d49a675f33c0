package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/macropower/lifegen/pkg/highlight"
	"github.com/macropower/lifegen/pkg/theme"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd()))
}

// writeCode writes src to w, highlighted with lang when w is a terminal.
func writeCode(w io.Writer, src, lang string, t *theme.Theme) error {
	if isTerminal(w) {
		pretty, err := highlight.New(lang, t).Render(src)
		if err == nil {
			src = pretty
		} else {
			slog.Debug("highlight output", slog.Any("err", err))
		}
	}

	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}

	_, err := io.WriteString(w, src)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
