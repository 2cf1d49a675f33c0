package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
)

// ErrResultType is returned for expressions that do not produce a cell
// state.
var ErrResultType = errors.New("expression must produce a uint or bool")

// Environment compiles and caches CEL programs for rule evaluation. It is
// safe for concurrent use.
type Environment struct {
	env   *cel.Env
	rules map[string]*Rule
	mu    sync.Mutex
}

// NewEnvironment creates a new [Environment]. The rule variables, the `u32`
// function and the `MAX_NEIGHBORS` constant are always declared; opts may
// add more.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := cel.NewEnv(append(opts, cel.Lib(lib{}))...)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}

	return &Environment{env: env, rules: map[string]*Rule{}}, nil
}

// MustNewEnvironment is like [NewEnvironment] but panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

// Compile type-checks expression and plans a program for it.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.compile(expression)
}

//nolint:ireturn // Following CEL's function signature.
func (e *Environment) compile(expression string) (cel.Program, error) {
	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, issues.Err())
	}

	out := ast.OutputType()
	if !out.IsExactType(cel.UintType) && !out.IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("compile %q: %w, got %s", expression, ErrResultType, out)
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", expression, err)
	}

	return program, nil
}

// rule returns the cached [Rule] for src, compiling it on first use.
func (e *Environment) rule(src string) (*Rule, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if r, ok := e.rules[src]; ok {
		return r, nil
	}

	program, err := e.compile(src)
	if err != nil {
		return nil, err
	}

	r := &Rule{program: program, Expression: src}
	e.rules[src] = r

	return r, nil
}
