package rule

import "fmt"

// Check verifies that root is a well-typed rule: it must be boolean, and
// every operator must receive operands of the category it requires.
// Children are visited depth-first, left to right, so the first reported
// error is deterministic.
func Check(root Node) error {
	if root.Kind() != KindBool {
		return &TypeError{
			Context: fmt.Sprintf("rule must evaluate to a boolean, found %s %q", root.Kind(), Format(root)),
			Pos:     root.Pos(),
		}
	}

	return check(root)
}

func check(n Node) error {
	switch n := n.(type) {
	case *Comparison:
		ctx := fmt.Sprintf("operand of '%s'", n.Op)

		if err := expectKind(n.Left, KindNumber, "left "+ctx); err != nil {
			return err
		}

		return expectKind(n.Right, KindNumber, "right "+ctx)

	case *BinaryLogic:
		ctx := fmt.Sprintf("operand of '%s'", n.Op)

		if err := expectKind(n.Left, KindBool, "left "+ctx); err != nil {
			return err
		}

		return expectKind(n.Right, KindBool, "right "+ctx)

	case *Not:
		return expectKind(n.Operand, KindBool, "operand of 'not'")

	case *Conditional:
		if err := expectKind(n.Cond, KindBool, "condition of 'if'"); err != nil {
			return err
		}

		if err := expectKind(n.Then, KindBool, "'if' branch"); err != nil {
			return err
		}

		return expectKind(n.Else, KindBool, "'else' branch")
	}

	return nil
}

func expectKind(n Node, want Kind, ctx string) error {
	if got := n.Kind(); got != want {
		return &TypeError{
			Context: fmt.Sprintf("%s must be a %s, found %s %q", ctx, want, got, Format(n)),
			Pos:     n.Pos(),
		}
	}

	return check(n)
}
