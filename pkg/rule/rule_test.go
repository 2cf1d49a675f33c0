package rule_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/pkg/rule"
)

const conway = `if (is_alive) ((num_neighbors == 2) or (num_neighbors == 3)) else (num_neighbors == 3)`

var rulesets = map[string]string{
	"conway":             conway,
	"highlife":           `if (is_alive) (num_neighbors == 2 or num_neighbors == 3) else (num_neighbors == 3 or num_neighbors == 6)`,
	"seeds":              `not is_alive and num_neighbors == 2`,
	"life without death": `is_alive or num_neighbors == 3`,
	"day and night":      `if (is_alive) (num_neighbors == 3 or num_neighbors == 4 or num_neighbors >= 6) else (num_neighbors == 3 or num_neighbors >= 6)`,
	"else if chain":      `if (num_neighbors < 2) false else if (num_neighbors > 3) false else (is_alive or num_neighbors == 3)`,
	"constant":           `true`,
	"ranges":             `num_neighbors >= 2 and num_neighbors <= 5 and num_neighbors != 4`,
}

func TestCompile_Conway(t *testing.T) {
	t.Parallel()

	r, err := rule.Compile(conway)
	require.NoError(t, err)

	want := "if (is_alive) {\n" +
		"    result = u32(((num_neighbors) == (2u)) || ((num_neighbors) == (3u)));\n" +
		"} else {\n" +
		"    result = u32((num_neighbors) == (3u));\n" +
		"}"
	assert.Equal(t, want, r.WGSL())

	tcs := map[string]struct {
		env  rule.Env
		want uint32
	}{
		"alive with three neighbors survives": {env: rule.Env{IsAlive: true, NumNeighbors: 3}, want: 1},
		"dead with two neighbors stays dead":  {env: rule.Env{IsAlive: false, NumNeighbors: 2}, want: 0},
		"dead with three neighbors is born":   {env: rule.Env{IsAlive: false, NumNeighbors: 3}, want: 1},
		"alive with four neighbors dies":      {env: rule.Env{IsAlive: true, NumNeighbors: 4}, want: 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, r.Program.Eval(tc.env))
		})
	}
}

func TestCompile_Deterministic(t *testing.T) {
	t.Parallel()

	for name, text := range rulesets {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			a, err := rule.CompileWGSL(text)
			require.NoError(t, err)

			b, err := rule.CompileWGSL(text)
			require.NoError(t, err)

			assert.Equal(t, a, b)
		})
	}
}

func TestCompile_SemanticEquivalence(t *testing.T) {
	t.Parallel()

	for name, text := range rulesets {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r := rule.MustCompile(text)

			for _, alive := range []bool{false, true} {
				for n := range uint32(9) {
					env := rule.Env{IsAlive: alive, NumNeighbors: n}

					var want uint32
					if r.Eval(env) {
						want = 1
					}

					assert.Equal(t, want, r.Program.Eval(env), "is_alive=%t num_neighbors=%d", alive, n)
				}
			}
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		sentinel error
		input    string
		contains string
		pos      rule.Position
	}{
		"missing right operand": {
			input:    `if (is_alive) (num_neighbors == ) else false`,
			sentinel: rule.ErrParse,
			contains: "expected expression, found ')'",
			pos:      rule.Position{Offset: 32, Line: 1, Column: 33},
		},
		"boolean compared to number": {
			input:    `is_alive == 3`,
			sentinel: rule.ErrType,
			contains: `left operand of '==' must be a number, found boolean "is_alive"`,
			pos:      rule.Position{Offset: 0, Line: 1, Column: 1},
		},
		"numeric rule": {
			input:    `num_neighbors`,
			sentinel: rule.ErrType,
			contains: "rule must evaluate to a boolean",
			pos:      rule.Position{Offset: 0, Line: 1, Column: 1},
		},
		"not binds tighter than comparison": {
			input:    `not num_neighbors == 3`,
			sentinel: rule.ErrType,
			contains: `left operand of '==' must be a number, found boolean "not num_neighbors"`,
			pos:      rule.Position{Offset: 0, Line: 1, Column: 1},
		},
		"numeric condition": {
			input:    `if (num_neighbors) true else false`,
			sentinel: rule.ErrType,
			contains: "condition of 'if' must be a boolean",
			pos:      rule.Position{Offset: 4, Line: 1, Column: 5},
		},
		"numeric logic operand": {
			input:    `is_alive and 3`,
			sentinel: rule.ErrType,
			contains: "right operand of 'and' must be a boolean",
			pos:      rule.Position{Offset: 13, Line: 1, Column: 14},
		},
		"unknown character": {
			input:    `num_neighbors @ 3`,
			sentinel: rule.ErrLex,
			contains: "unexpected character '@'",
			pos:      rule.Position{Offset: 14, Line: 1, Column: 15},
		},
		"single equals": {
			input:    `num_neighbors = 3`,
			sentinel: rule.ErrLex,
			contains: "expected '==' after '='",
			pos:      rule.Position{Offset: 14, Line: 1, Column: 15},
		},
		"literal out of range": {
			input:    `num_neighbors < 99999999999`,
			sentinel: rule.ErrLex,
			contains: "does not fit in u32",
			pos:      rule.Position{Offset: 16, Line: 1, Column: 17},
		},
		"empty input": {
			input:    "  ",
			sentinel: rule.ErrParse,
			contains: "found end of input",
			pos:      rule.Position{Line: 1, Column: 1},
		},
		"unmatched parenthesis": {
			input:    `(num_neighbors == 3`,
			sentinel: rule.ErrParse,
			contains: "expected ')', found end of input",
			pos:      rule.Position{Offset: 19, Line: 1, Column: 20},
		},
		"chained comparison": {
			input:    `1 < 2 < 3`,
			sentinel: rule.ErrParse,
			contains: "expected end of input, found '<'",
			pos:      rule.Position{Offset: 6, Line: 1, Column: 7},
		},
		"missing else": {
			input:    `if (is_alive) true`,
			sentinel: rule.ErrParse,
			contains: "expected 'else', found end of input",
			pos:      rule.Position{Offset: 18, Line: 1, Column: 19},
		},
		"parenthesized conditional": {
			input:    `(if (is_alive) true else false)`,
			sentinel: rule.ErrParse,
			contains: "found 'if'",
			pos:      rule.Position{Offset: 1, Line: 1, Column: 2},
		},
		"error on second line": {
			input:    "is_alive or\n  num_neighbors == 3 or )",
			sentinel: rule.ErrParse,
			contains: "at 2:25",
			pos:      rule.Position{Offset: 36, Line: 2, Column: 25},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := rule.Compile(tc.input)
			require.Error(t, err)
			assert.Nil(t, r)
			require.ErrorIs(t, err, tc.sentinel)
			assert.Contains(t, err.Error(), tc.contains)

			pos, ok := rule.ErrorPosition(err)
			require.True(t, ok)
			assert.Equal(t, tc.pos, pos)
		})
	}
}

func TestCompile_UnknownIdentifierHint(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		hint  string
	}{
		"abbreviation":    {input: `neighbors == 3`, hint: "num_neighbors"},
		"extra character": {input: `num_neighbours == 3`, hint: "num_neighbors"},
		"missing prefix":  {input: `alive`, hint: "is_alive"},
		"unrelated":       {input: `xyz`, hint: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := rule.Compile(tc.input)

			var parseErr *rule.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.hint, parseErr.Hint)
			assert.Equal(t, "is_alive or num_neighbors", parseErr.Expected)
		})
	}
}

func TestMustCompile(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		rule.MustCompile(conway)
	})

	assert.Panics(t, func() {
		rule.MustCompile(`is_alive ==`)
	})
}

func TestFormatWithContext(t *testing.T) {
	t.Parallel()

	src := `is_alive and 3`
	_, err := rule.Compile(src)
	require.Error(t, err)

	got := rule.FormatWithContext(src, err)
	assert.Contains(t, got, "  | is_alive and 3\n")
	assert.True(t, strings.HasSuffix(got, "\n  | "+strings.Repeat(" ", 13)+"^"), got)
}
