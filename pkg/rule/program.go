package rule

// Stmt is a statement of a lowered [Program].
type Stmt interface {
	stmt()
}

type (
	// AssignStmt stores the boolean Value into `result` as 0 or 1.
	AssignStmt struct {
		Value Node
	}

	// IfStmt runs Then when Cond holds and Else otherwise.
	IfStmt struct {
		Cond Node
		Then []Stmt
		Else []Stmt
	}
)

func (*AssignStmt) stmt() {}
func (*IfStmt) stmt()     {}

// Program is the statement form of a rule. Conditionals become [IfStmt]s
// and every other expression becomes a single [AssignStmt], since the
// target cannot express conditionals at the expression level.
//
// Backends without statements can fold the body into a single expression,
// starting from the initial `result` value of 0.
type Program struct {
	Body []Stmt
}

// Lower converts a type-checked AST into a [Program].
func Lower(root Node) *Program {
	return &Program{Body: lowerStmts(root)}
}

func lowerStmts(n Node) []Stmt {
	if c, ok := n.(*Conditional); ok {
		return []Stmt{&IfStmt{
			Cond: c.Cond,
			Then: lowerStmts(c.Then),
			Else: lowerStmts(c.Else),
		}}
	}

	return []Stmt{&AssignStmt{Value: n}}
}

// Eval executes the program and returns the final value of `result`.
func (p *Program) Eval(env Env) uint32 {
	var result uint32

	execStmts(p.Body, env, &result)

	return result
}

func execStmts(stmts []Stmt, env Env, result *uint32) {
	for _, s := range stmts {
		switch s := s.(type) {
		case *AssignStmt:
			*result = 0
			if evalBool(s.Value, env) {
				*result = 1
			}

		case *IfStmt:
			if evalBool(s.Cond, env) {
				execStmts(s.Then, env, result)
			} else {
				execStmts(s.Else, env, result)
			}
		}
	}
}
