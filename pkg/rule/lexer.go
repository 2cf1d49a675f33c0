package rule

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type lexer struct {
	src  string
	off  int
	line int
	col  int
}

func newLexer(src string) *lexer {
	return &lexer{src: src, line: 1, col: 1}
}

// lex tokenizes src. The returned slice always ends with a tokEOF token.
func lex(src string) ([]token, error) {
	l := newLexer(src)

	var toks []token

	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}

		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) pos() Position {
	return Position{Offset: l.off, Line: l.line, Column: l.col}
}

func (l *lexer) peek() rune {
	if l.off >= len(l.src) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.src[l.off:])

	return r
}

func (l *lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col += size
	}

	return r
}

func (l *lexer) skipSpace() {
	for l.off < len(l.src) && unicode.IsSpace(l.peek()) {
		l.advance()
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()

	start := l.pos()
	if l.off >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	r := l.advance()

	switch {
	case r == '(':
		return token{kind: tokLParen, lit: "(", pos: start}, nil
	case r == ')':
		return token{kind: tokRParen, lit: ")", pos: start}, nil
	case r == '=':
		if l.peek() != '=' {
			return token{}, &LexError{Pos: start, Char: r, Reason: "expected '==' after '='"}
		}

		l.advance()

		return token{kind: tokEq, lit: "==", pos: start}, nil
	case r == '!':
		if l.peek() != '=' {
			return token{}, &LexError{Pos: start, Char: r, Reason: "expected '!=' (use 'not' for negation)"}
		}

		l.advance()

		return token{kind: tokNe, lit: "!=", pos: start}, nil
	case r == '<' || r == '>':
		return l.comparison(r, start), nil
	case isDigit(r):
		return l.number(start)
	case isIdentStart(r):
		return l.identifier(start), nil
	}

	return token{}, &LexError{Pos: start, Char: r}
}

func (l *lexer) comparison(r rune, start Position) token {
	kind, lit := tokLt, "<"
	if r == '>' {
		kind, lit = tokGt, ">"
	}

	if l.peek() == '=' {
		l.advance()

		kind++ // tokLe / tokGe directly follow tokLt / tokGt.
		lit += "="
	}

	return token{kind: kind, lit: lit, pos: start}
}

func (l *lexer) number(start Position) (token, error) {
	for isDigit(l.peek()) {
		l.advance()
	}

	lit := l.src[start.Offset:l.off]

	v, err := strconv.ParseUint(lit, 10, 32)
	if err != nil {
		return token{}, &LexError{Pos: start, Char: rune(lit[0]), Reason: "integer literal " + lit + " does not fit in u32"}
	}

	return token{kind: tokNumber, lit: lit, pos: start, value: uint32(v)}, nil
}

func (l *lexer) identifier(start Position) token {
	for isIdentPart(l.peek()) {
		l.advance()
	}

	lit := l.src[start.Offset:l.off]
	if kind, ok := keywords[lit]; ok {
		return token{kind: kind, lit: lit, pos: start}
	}

	return token{kind: tokIdent, lit: lit, pos: start}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
