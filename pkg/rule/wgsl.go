package rule

import (
	"strconv"
	"strings"
)

// ResultVar is the template variable the generated code assigns.
const ResultVar = "result"

const defaultIndent = "    "

// Option configures WGSL rendering.
type Option func(*renderOptions)

type renderOptions struct {
	indent     string
	baseIndent string
}

// WithIndent sets the string used for one level of block indentation.
// Defaults to four spaces.
func WithIndent(indent string) Option {
	return func(o *renderOptions) {
		o.indent = indent
	}
}

// WithBaseIndent sets a prefix written before every line except the first,
// so that a multi-line block lines up with the column it is substituted at.
func WithBaseIndent(prefix string) Option {
	return func(o *renderOptions) {
		o.baseIndent = prefix
	}
}

// WGSL renders the program as WGSL statements.
//
// Booleans are native WGSL `bool` values; the final value is stored with
// `result = u32(...)`, so `result` is always 0u or 1u.
func (p *Program) WGSL(opts ...Option) string {
	o := &renderOptions{indent: defaultIndent}
	for _, opt := range opts {
		opt(o)
	}

	w := &wgslWriter{opts: o}
	w.writeStmts(p.Body, 0)

	return strings.Join(w.lines, "\n"+o.baseIndent)
}

type wgslWriter struct {
	opts  *renderOptions
	lines []string
}

func (w *wgslWriter) line(depth int, s string) {
	w.lines = append(w.lines, strings.Repeat(w.opts.indent, depth)+s)
}

func (w *wgslWriter) writeStmts(stmts []Stmt, depth int) {
	for _, s := range stmts {
		switch s := s.(type) {
		case *AssignStmt:
			w.line(depth, ResultVar+" = u32("+WGSLExpr(s.Value)+");")

		case *IfStmt:
			w.line(depth, "if ("+WGSLExpr(s.Cond)+") {")
			w.writeStmts(s.Then, depth+1)
			w.line(depth, "} else {")
			w.writeStmts(s.Else, depth+1)
			w.line(depth, "}")
		}
	}
}

// Boolean literals are written as conversions from u32 so that naga can
// lower them.
const (
	wgslTrue  = "bool(1u)"
	wgslFalse = "bool(0u)"
)

// WGSLExpr renders a non-conditional expression as WGSL. Integer literals
// carry the `u` suffix, boolean literals are written as `bool(1u)` and
// `bool(0u)`, and every operand is parenthesized.
func WGSLExpr(n Node) string {
	switch n := n.(type) {
	case *BoolLiteral:
		if n.Value {
			return wgslTrue
		}

		return wgslFalse

	case *NumberLiteral:
		return strconv.FormatUint(uint64(n.Value), 10) + "u"

	case *Variable:
		return n.Name

	case *Comparison:
		return "(" + WGSLExpr(n.Left) + ") " + n.Op.String() + " (" + WGSLExpr(n.Right) + ")"

	case *BinaryLogic:
		op := " && "
		if n.Op == OpOr {
			op = " || "
		}

		return "(" + WGSLExpr(n.Left) + ")" + op + "(" + WGSLExpr(n.Right) + ")"

	case *Not:
		return "!(" + WGSLExpr(n.Operand) + ")"
	}

	// Conditionals are lowered to statements before rendering.
	panic("rule: cannot render " + Format(n) + " as a WGSL expression")
}
