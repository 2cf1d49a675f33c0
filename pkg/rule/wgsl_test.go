package rule_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/pkg/rule"
)

func TestProgram_WGSL(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
		opts  []rule.Option
	}{
		"single assignment": {
			input: `not is_alive and num_neighbors == 2`,
			want:  "result = u32((!(is_alive)) && ((num_neighbors) == (2u)));",
		},
		"literal": {
			input: `false`,
			want:  "result = u32(bool(0u));",
		},
		"all comparison operators": {
			input: `1 != num_neighbors or 2 < num_neighbors or 3 <= num_neighbors or 4 > num_neighbors`,
			want: "result = u32(((((1u) != (num_neighbors)) || ((2u) < (num_neighbors))) || " +
				"((3u) <= (num_neighbors))) || ((4u) > (num_neighbors)));",
		},
		"nested conditional": {
			input: `if (num_neighbors < 2) false else if (num_neighbors > 3) false else true`,
			want: "if ((num_neighbors) < (2u)) {\n" +
				"    result = u32(bool(0u));\n" +
				"} else {\n" +
				"    if ((num_neighbors) > (3u)) {\n" +
				"        result = u32(bool(0u));\n" +
				"    } else {\n" +
				"        result = u32(bool(1u));\n" +
				"    }\n" +
				"}",
		},
		"custom indentation": {
			input: `if (is_alive) true else false`,
			opts:  []rule.Option{rule.WithIndent("\t"), rule.WithBaseIndent("  ")},
			want: "if (is_alive) {\n" +
				"  \tresult = u32(bool(1u));\n" +
				"  } else {\n" +
				"  \tresult = u32(bool(0u));\n" +
				"  }",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := rule.CompileWGSL(tc.input, tc.opts...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLower(t *testing.T) {
	t.Parallel()

	r := rule.MustCompile(conway)
	require.Len(t, r.Program.Body, 1)

	ifStmt, ok := r.Program.Body[0].(*rule.IfStmt)
	require.True(t, ok)
	assert.Equal(t, "is_alive", rule.Format(ifStmt.Cond))
	require.Len(t, ifStmt.Then, 1)
	require.Len(t, ifStmt.Else, 1)
	assert.IsType(t, &rule.AssignStmt{}, ifStmt.Then[0])
	assert.IsType(t, &rule.AssignStmt{}, ifStmt.Else[0])
}

func TestProgram_EvalSequential(t *testing.T) {
	t.Parallel()

	// Later statements overwrite earlier ones.
	p := &rule.Program{Body: []rule.Stmt{
		&rule.AssignStmt{Value: &rule.BoolLiteral{Value: true}},
		&rule.IfStmt{
			Cond: &rule.Variable{Name: rule.VarIsAlive},
			Then: []rule.Stmt{&rule.AssignStmt{Value: &rule.BoolLiteral{Value: false}}},
		},
	}}

	assert.Equal(t, uint32(1), p.Eval(rule.Env{IsAlive: false}))
	assert.Equal(t, uint32(0), p.Eval(rule.Env{IsAlive: true}))
}
