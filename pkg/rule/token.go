package rule

import (
	"fmt"
	"strconv"
)

// Position is a location in rule text. Line and Column are 1-based, Column
// counts bytes. Offset is the 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber

	// Keywords.
	tokIf
	tokElse
	tokAnd
	tokOr
	tokNot
	tokTrue
	tokFalse

	// Punctuation and operators.
	tokLParen
	tokRParen
	tokEq
	tokNe
	tokLt
	tokLe
	tokGt
	tokGe
)

var keywords = map[string]tokenKind{
	"if":    tokIf,
	"else":  tokElse,
	"and":   tokAnd,
	"or":    tokOr,
	"not":   tokNot,
	"true":  tokTrue,
	"false": tokFalse,
}

var tokenText = map[tokenKind]string{
	tokIf:     "if",
	tokElse:   "else",
	tokAnd:    "and",
	tokOr:     "or",
	tokNot:    "not",
	tokTrue:   "true",
	tokFalse:  "false",
	tokLParen: "(",
	tokRParen: ")",
	tokEq:     "==",
	tokNe:     "!=",
	tokLt:     "<",
	tokLe:     "<=",
	tokGt:     ">",
	tokGe:     ">=",
}

type token struct {
	lit   string
	pos   Position
	kind  tokenKind
	value uint32 // Set for tokNumber.
}

// describe returns a human-readable description of the token for
// [ParseError.Found].
func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return fmt.Sprintf("identifier %q", t.lit)
	case tokNumber:
		return "number " + t.lit
	}

	return "'" + tokenText[t.kind] + "'"
}

// quote returns the canonical spelling of kind for [ParseError.Expected].
func quote(kind tokenKind) string {
	return "'" + tokenText[kind] + "'"
}

func (t token) isComparison() bool {
	switch t.kind {
	case tokEq, tokNe, tokLt, tokLe, tokGt, tokGe:
		return true
	}

	return false
}
