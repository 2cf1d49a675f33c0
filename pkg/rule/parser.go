package rule

import (
	"slices"

	"github.com/sahilm/fuzzy"
)

var compareOps = map[tokenKind]CompareOp{
	tokEq: OpEq,
	tokNe: OpNe,
	tokLt: OpLt,
	tokLe: OpLe,
	tokGt: OpGt,
	tokGe: OpGe,
}

type parser struct {
	toks []token
	pos  int
}

// Parse parses rule text into an AST without type-checking it.
//
// Precedence, from tightest to loosest: `not`, comparisons, `and`, `or`,
// `if (...) ... else ...`. Conditionals may only appear at the top level or
// as a branch of another conditional.
//
//nolint:ireturn // The AST is a tagged variant.
func Parse(text string) (Node, error) {
	toks, err := lex(text)
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks}

	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.unexpected(tok, "end of input")
	}

	return n, nil
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}

	return tok
}

func (p *parser) expect(kind tokenKind) (token, error) {
	tok := p.peek()
	if tok.kind != kind {
		return tok, p.unexpected(tok, quote(kind))
	}

	return p.next(), nil
}

func (p *parser) unexpected(tok token, expected string) *ParseError {
	return &ParseError{Expected: expected, Found: tok.describe(), Pos: tok.pos}
}

//nolint:ireturn // The AST is a tagged variant.
func (p *parser) parseExpr() (Node, error) {
	if p.peek().kind == tokIf {
		return p.parseConditional()
	}

	return p.parseOr()
}

// conditional := "if" "(" logic_or ")" expr "else" expr.
func (p *parser) parseConditional() (*Conditional, error) {
	start := p.next()

	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}

	cond, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}

	then, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokElse); err != nil {
		return nil, err
	}

	els, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &Conditional{Cond: cond, Then: then, Else: els, Start: start.pos}, nil
}

//nolint:ireturn // The AST is a tagged variant.
func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokOr {
		p.next()

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		left = &BinaryLogic{Op: OpOr, Left: left, Right: right, Start: left.Pos()}
	}

	return left, nil
}

//nolint:ireturn // The AST is a tagged variant.
func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.peek().kind == tokAnd {
		p.next()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &BinaryLogic{Op: OpAnd, Left: left, Right: right, Start: left.Pos()}
	}

	return left, nil
}

// Comparisons do not chain: `a < b < c` is rejected at the second operator.
//
//nolint:ireturn // The AST is a tagged variant.
func (p *parser) parseComparison() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	if !p.peek().isComparison() {
		return left, nil
	}

	op := p.next()

	right, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Comparison{Op: compareOps[op.kind], Left: left, Right: right, Start: left.Pos()}, nil
}

//nolint:ireturn // The AST is a tagged variant.
func (p *parser) parseUnary() (Node, error) {
	if p.peek().kind != tokNot {
		return p.parsePrimary()
	}

	start := p.next()

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	return &Not{Operand: operand, Start: start.pos}, nil
}

//nolint:ireturn // The AST is a tagged variant.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.peek()

	switch tok.kind {
	case tokNumber:
		p.next()
		return &NumberLiteral{Value: tok.value, Start: tok.pos}, nil

	case tokTrue, tokFalse:
		p.next()
		return &BoolLiteral{Value: tok.kind == tokTrue, Start: tok.pos}, nil

	case tokIdent:
		if _, ok := Variables[tok.lit]; !ok {
			err := p.unexpected(tok, VarIsAlive+" or "+VarNumNeighbors)
			err.Hint = suggestVariable(tok.lit)

			return nil, err
		}

		p.next()

		return &Variable{Name: tok.lit, Start: tok.pos}, nil

	case tokLParen:
		p.next()

		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}

		return inner, nil
	}

	return nil, p.unexpected(tok, "expression")
}

// suggestVariable returns the variable name closest to an unknown
// identifier, or an empty string.
func suggestVariable(ident string) string {
	names := make([]string, 0, len(Variables))
	for name := range Variables {
		names = append(names, name)
	}

	slices.Sort(names)

	matches := fuzzy.Find(ident, names)
	if len(matches) > 0 {
		return matches[0].Str
	}

	// Try the other direction for identifiers with extra characters, such as
	// "is_alive_now".
	for _, name := range names {
		if len(fuzzy.Find(name, []string{ident})) > 0 {
			return name
		}
	}

	return ""
}
