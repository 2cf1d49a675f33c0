package expr

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/macropower/lifegen/pkg/rule"
)

// Rule is a rule program compiled to CEL.
type Rule struct {
	program cel.Program
	// Expression is the rendered CEL source.
	Expression string
}

// Row is one line of a rule's truth table.
type Row struct {
	NumNeighbors uint32
	IsAlive      bool
	Result       uint32
}

// CompileRule renders p with [Render] and compiles the result. Programs
// that render to the same expression share one [Rule].
func (e *Environment) CompileRule(p *rule.Program) (*Rule, error) {
	return e.rule(Render(p))
}

// Eval evaluates the rule for one cell and returns 0 or 1.
func (r *Rule) Eval(env rule.Env) (uint32, error) {
	out, _, err := r.program.Eval(map[string]any{
		rule.VarIsAlive:      env.IsAlive,
		rule.VarNumNeighbors: uint64(env.NumNeighbors),
	})
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", r.Expression, err)
	}

	switch v := out.Value().(type) {
	case uint64:
		return uint32(v), nil //nolint:gosec // G115: result is 0 or 1.
	case bool:
		if v {
			return 1, nil
		}

		return 0, nil
	}

	return 0, fmt.Errorf("evaluate %q: unexpected result type %T", r.Expression, out.Value())
}

// Evaluate compiles p and evaluates it for a single cell.
func (e *Environment) Evaluate(p *rule.Program, env rule.Env) (uint32, error) {
	r, err := e.CompileRule(p)
	if err != nil {
		return 0, err
	}

	return r.Eval(env)
}

// Table evaluates p for every combination of `is_alive` and
// `num_neighbors` in 0..[MaxNeighbors], dead cells first.
func (e *Environment) Table(p *rule.Program) ([]Row, error) {
	r, err := e.CompileRule(p)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, 2*(MaxNeighbors+1))

	for _, alive := range []bool{false, true} {
		for n := range uint32(MaxNeighbors + 1) {
			env := rule.Env{IsAlive: alive, NumNeighbors: n}

			result, err := r.Eval(env)
			if err != nil {
				return nil, err
			}

			rows = append(rows, Row{IsAlive: alive, NumNeighbors: n, Result: result})
		}
	}

	return rows, nil
}

// Notation summarizes rows in B/S notation, for example "B3/S23" for
// Conway's Game of Life. Rules that are not totalistic over 0..8 neighbors
// are still summarized by the neighbor counts that produce a live cell.
func Notation(rows []Row) string {
	var born, survive strings.Builder

	for _, row := range rows {
		if row.Result == 0 {
			continue
		}

		if row.IsAlive {
			fmt.Fprint(&survive, row.NumNeighbors)
		} else {
			fmt.Fprint(&born, row.NumNeighbors)
		}
	}

	return "B" + born.String() + "/S" + survive.String()
}
