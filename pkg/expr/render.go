package expr

import (
	"fmt"
	"strconv"

	"github.com/macropower/lifegen/pkg/rule"
)

// Render folds a program into a single CEL expression of type uint.
//
// Statements are applied in order starting from `0u`, so an [rule.IfStmt]
// becomes a ternary whose branches are the folded branch bodies.
func Render(p *rule.Program) string {
	return renderStmts(p.Body, "0u")
}

func renderStmts(stmts []rule.Stmt, result string) string {
	for _, s := range stmts {
		switch s := s.(type) {
		case *rule.AssignStmt:
			result = "u32(" + RenderExpr(s.Value) + ")"

		case *rule.IfStmt:
			result = "(" + RenderExpr(s.Cond) + " ? " +
				renderStmts(s.Then, result) + " : " +
				renderStmts(s.Else, result) + ")"
		}
	}

	return result
}

// RenderExpr renders a rule expression as a CEL expression.
func RenderExpr(n rule.Node) string {
	switch n := n.(type) {
	case *rule.BoolLiteral:
		return strconv.FormatBool(n.Value)

	case *rule.NumberLiteral:
		return strconv.FormatUint(uint64(n.Value), 10) + "u"

	case *rule.Variable:
		return n.Name

	case *rule.Comparison:
		return "(" + RenderExpr(n.Left) + " " + n.Op.String() + " " + RenderExpr(n.Right) + ")"

	case *rule.BinaryLogic:
		op := " && "
		if n.Op == rule.OpOr {
			op = " || "
		}

		return "(" + RenderExpr(n.Left) + op + RenderExpr(n.Right) + ")"

	case *rule.Not:
		return "!" + RenderExpr(n.Operand)

	case *rule.Conditional:
		return "(" + RenderExpr(n.Cond) + " ? " + RenderExpr(n.Then) + " : " + RenderExpr(n.Else) + ")"
	}

	panic(fmt.Sprintf("expr: cannot render %T as a CEL expression", n))
}
