package rule

import "fmt"

// Env binds the shader inputs for evaluation.
type Env struct {
	NumNeighbors uint32
	IsAlive      bool
}

// Eval is the reference interpretation of a type-checked rule. It panics if
// root has not passed [Check].
func Eval(root Node, env Env) bool {
	return evalBool(root, env)
}

func evalBool(n Node, env Env) bool {
	switch n := n.(type) {
	case *BoolLiteral:
		return n.Value

	case *Variable:
		if n.Name == VarIsAlive {
			return env.IsAlive
		}

	case *Comparison:
		return compare(n.Op, evalNumber(n.Left, env), evalNumber(n.Right, env))

	case *BinaryLogic:
		if n.Op == OpOr {
			return evalBool(n.Left, env) || evalBool(n.Right, env)
		}

		return evalBool(n.Left, env) && evalBool(n.Right, env)

	case *Not:
		return !evalBool(n.Operand, env)

	case *Conditional:
		if evalBool(n.Cond, env) {
			return evalBool(n.Then, env)
		}

		return evalBool(n.Else, env)
	}

	panic(fmt.Sprintf("rule: %s is not a boolean expression", Format(n)))
}

func evalNumber(n Node, env Env) uint32 {
	switch n := n.(type) {
	case *NumberLiteral:
		return n.Value

	case *Variable:
		if n.Name == VarNumNeighbors {
			return env.NumNeighbors
		}
	}

	panic(fmt.Sprintf("rule: %s is not a numeric expression", Format(n)))
}

func compare(op CompareOp, l, r uint32) bool {
	switch op {
	case OpEq:
		return l == r
	case OpNe:
		return l != r
	case OpLt:
		return l < r
	case OpLe:
		return l <= r
	case OpGt:
		return l > r
	case OpGe:
		return l >= r
	}

	panic(fmt.Sprintf("rule: unknown comparison operator %d", op))
}
