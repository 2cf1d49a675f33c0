package rule

import (
	"fmt"
	"strings"
)

// Rule is a compiled ruleset.
type Rule struct {
	Root    Node     // Type-checked AST.
	Program *Program // Statement form of Root.
	Source  string   // Rule text as written.
}

// Compile lexes, parses, type-checks and lowers rule text. On failure it
// returns a [*LexError], [*ParseError] or [*TypeError] and no partial
// output.
func Compile(text string) (*Rule, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{
			Expected: "expression",
			Found:    "end of input",
			Pos:      Position{Line: 1, Column: 1},
		}
	}

	root, err := Parse(text)
	if err != nil {
		return nil, err
	}

	err = Check(root)
	if err != nil {
		return nil, err
	}

	return &Rule{
		Source:  text,
		Root:    root,
		Program: Lower(root),
	}, nil
}

// MustCompile is like [Compile] but panics on error.
func MustCompile(text string) *Rule {
	r, err := Compile(text)
	if err != nil {
		panic(fmt.Errorf("rule %q: %w", text, err))
	}

	return r
}

// CompileWGSL compiles rule text straight to WGSL statements.
func CompileWGSL(text string, opts ...Option) (string, error) {
	r, err := Compile(text)
	if err != nil {
		return "", err
	}

	return r.WGSL(opts...), nil
}

// WGSL renders the rule as WGSL statements assigning `result`.
func (r *Rule) WGSL(opts ...Option) string {
	return r.Program.WGSL(opts...)
}

// Eval evaluates the rule with the reference interpreter.
func (r *Rule) Eval(env Env) bool {
	return Eval(r.Root, env)
}

func (r *Rule) String() string {
	return Format(r.Root)
}
