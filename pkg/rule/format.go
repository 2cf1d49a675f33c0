package rule

import (
	"strconv"
	"strings"
)

// Format renders n back into rule-language text. Compound operands are
// parenthesized, so the result parses back to an equivalent tree.
func Format(n Node) string {
	var sb strings.Builder

	writeNode(&sb, n)

	return sb.String()
}

func writeNode(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *BoolLiteral:
		sb.WriteString(strconv.FormatBool(n.Value))

	case *NumberLiteral:
		sb.WriteString(strconv.FormatUint(uint64(n.Value), 10))

	case *Variable:
		sb.WriteString(n.Name)

	case *Comparison:
		writeOperand(sb, n.Left)
		sb.WriteString(" " + n.Op.String() + " ")
		writeOperand(sb, n.Right)

	case *BinaryLogic:
		writeOperand(sb, n.Left)
		sb.WriteString(" " + n.Op.String() + " ")
		writeOperand(sb, n.Right)

	case *Not:
		sb.WriteString("not ")
		writeOperand(sb, n.Operand)

	case *Conditional:
		sb.WriteString("if (")
		writeNode(sb, n.Cond)
		sb.WriteString(") ")
		writeBranch(sb, n.Then)
		sb.WriteString(" else ")
		writeBranch(sb, n.Else)
	}
}

// Conditionals cannot be parenthesized, so nested ones are written bare.
func writeBranch(sb *strings.Builder, n Node) {
	if _, ok := n.(*Conditional); ok {
		writeNode(sb, n)
		return
	}

	writeOperand(sb, n)
}

func writeOperand(sb *strings.Builder, n Node) {
	switch n.(type) {
	case *BoolLiteral, *NumberLiteral, *Variable:
		writeNode(sb, n)
	default:
		sb.WriteString("(")
		writeNode(sb, n)
		sb.WriteString(")")
	}
}
