package shader

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates that an imported path could not be loaded.
	ErrNotFound = errors.New("import not found")
	// ErrCycle indicates that a file transitively imports itself.
	ErrCycle = errors.New("import cycle")
)

// ImportErrorKind classifies an [ImportError].
type ImportErrorKind int

const (
	// NotFound means the loader failed to produce the referenced path.
	NotFound ImportErrorKind = iota
	// Cycle means the referenced path is already being resolved.
	Cycle
)

func (k ImportErrorKind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Cycle:
		return "cycle"
	}

	return fmt.Sprintf("ImportErrorKind(%d)", int(k))
}

// ImportError is returned when an `#import` directive cannot be resolved.
type ImportError struct {
	// Err is the underlying loader error, for [NotFound].
	Err error
	// Path is the path that failed to resolve.
	Path string
	// From is the file containing the directive, empty for the entry file.
	From string
	// Chain is the import chain ending in the repeated path, for [Cycle].
	Chain []string
	// Line is the 1-based line of the directive in From.
	Line int
	Kind ImportErrorKind
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case Cycle:
		return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(e.Chain, " -> "))
	case NotFound:
		msg := fmt.Sprintf("%s: %q", ErrNotFound, e.Path)
		if e.From != "" {
			msg = fmt.Sprintf("%s:%d: %s", e.From, e.Line, msg)
		}
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}

		return msg
	}

	return fmt.Sprintf("import %q: %s", e.Path, e.Kind)
}

func (e *ImportError) Unwrap() []error {
	var errs []error

	switch e.Kind {
	case Cycle:
		errs = append(errs, ErrCycle)
	case NotFound:
		errs = append(errs, ErrNotFound)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}
