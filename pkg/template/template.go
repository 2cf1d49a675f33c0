// Package template substitutes generated rule code into a shader template.
package template

import (
	"errors"
	"fmt"
	"strings"
)

// Placeholder is the marker replaced by generated code.
const Placeholder = "{PLACEHOLDER}"

var (
	// ErrMissingPlaceholder indicates that the template has no marker.
	ErrMissingPlaceholder = errors.New("missing placeholder")
	// ErrMultiplePlaceholders indicates that the template has more than one marker.
	ErrMultiplePlaceholders = errors.New("multiple placeholders")
)

// AssemblyErrorKind classifies an [AssemblyError].
type AssemblyErrorKind int

const (
	MissingPlaceholder AssemblyErrorKind = iota
	MultiplePlaceholders
)

// AssemblyError is returned when a template does not contain exactly one
// [Placeholder].
type AssemblyError struct {
	// Count is the number of markers found.
	Count int
	Kind  AssemblyErrorKind
}

func (e *AssemblyError) Error() string {
	switch e.Kind {
	case MissingPlaceholder:
		return fmt.Sprintf("%s: template does not contain %s", ErrMissingPlaceholder, Placeholder)
	case MultiplePlaceholders:
		return fmt.Sprintf("%s: template contains %s %d times", ErrMultiplePlaceholders, Placeholder, e.Count)
	}

	return fmt.Sprintf("assembly error (%d placeholders)", e.Count)
}

func (e *AssemblyError) Unwrap() error {
	switch e.Kind {
	case MissingPlaceholder:
		return ErrMissingPlaceholder
	case MultiplePlaceholders:
		return ErrMultiplePlaceholders
	}

	return nil
}

// Check reports whether src contains exactly one [Placeholder].
func Check(src string) error {
	switch n := strings.Count(src, Placeholder); n {
	case 0:
		return &AssemblyError{Kind: MissingPlaceholder}
	case 1:
		return nil
	default:
		return &AssemblyError{Kind: MultiplePlaceholders, Count: n}
	}
}

// Assemble replaces the single [Placeholder] in src with code, verbatim.
func Assemble(src, code string) (string, error) {
	if err := Check(src); err != nil {
		return "", err
	}

	return strings.Replace(src, Placeholder, code, 1), nil
}

// MarkerIndent returns the leading whitespace of the line containing the
// first [Placeholder], or "" if src has none.
func MarkerIndent(src string) string {
	i := strings.Index(src, Placeholder)
	if i < 0 {
		return ""
	}

	line := src[strings.LastIndex(src[:i], "\n")+1 : i]

	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}
