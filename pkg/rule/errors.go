package rule

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLex is returned (wrapped) for malformed tokens.
	ErrLex = errors.New("lex error")
	// ErrParse is returned (wrapped) for grammar violations.
	ErrParse = errors.New("parse error")
	// ErrType is returned (wrapped) for boolean/number mismatches.
	ErrType = errors.New("type error")
)

// LexError is returned when the rule text contains a character that does not
// start a valid token.
type LexError struct {
	Reason string
	Pos    Position
	Char   rune
}

func (e *LexError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v at %s: %s", ErrLex, e.Pos, e.Reason)
	}

	return fmt.Sprintf("%v at %s: unexpected character %q", ErrLex, e.Pos, e.Char)
}

func (e *LexError) Unwrap() error {
	return ErrLex
}

// ParseError is returned when the token stream does not match the grammar.
type ParseError struct {
	Expected string
	Found    string
	Hint     string // Optional suggestion, e.g. a similar identifier.
	Pos      Position
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("%v at %s: expected %s, found %s", ErrParse, e.Pos, e.Expected, e.Found)
	if e.Hint != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Hint)
	}

	return msg
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// TypeError is returned when a node's value category does not match what
// its parent requires.
type TypeError struct {
	Context string
	Pos     Position
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v at %s: %s", ErrType, e.Pos, e.Context)
}

func (e *TypeError) Unwrap() error {
	return ErrType
}

// ErrorPosition returns the source position carried by a compile error.
func ErrorPosition(err error) (Position, bool) {
	var (
		lexErr   *LexError
		parseErr *ParseError
		typeErr  *TypeError
	)

	switch {
	case errors.As(err, &lexErr):
		return lexErr.Pos, true
	case errors.As(err, &parseErr):
		return parseErr.Pos, true
	case errors.As(err, &typeErr):
		return typeErr.Pos, true
	}

	return Position{}, false
}

// FormatWithContext renders a compile error together with the offending line
// of src and a caret under the error column. Errors without a position are
// returned as-is.
func FormatWithContext(src string, err error) string {
	pos, ok := ErrorPosition(err)
	if !ok || pos.Line < 1 {
		return err.Error()
	}

	lines := strings.Split(src, "\n")
	if pos.Line > len(lines) {
		return err.Error()
	}

	line := lines[pos.Line-1]
	col := max(pos.Column, 1)
	col = min(col, len(line)+1)

	var sb strings.Builder

	fmt.Fprintf(&sb, "%v\n", err)
	fmt.Fprintf(&sb, "  | %s\n", line)
	fmt.Fprintf(&sb, "  | %s^", strings.Repeat(" ", col-1))

	return sb.String()
}
