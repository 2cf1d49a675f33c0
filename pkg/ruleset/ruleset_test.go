package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/pkg/rule"
	"github.com/macropower/lifegen/pkg/ruleset"
)

// births and survivals in B/S notation for each built-in.
var notation = map[string]struct {
	birth    []uint32
	survival []uint32
}{
	"conway":             {birth: []uint32{3}, survival: []uint32{2, 3}},
	"highlife":           {birth: []uint32{3, 6}, survival: []uint32{2, 3}},
	"seeds":              {birth: []uint32{2}},
	"daynight":           {birth: []uint32{3, 6, 7, 8}, survival: []uint32{3, 4, 6, 7, 8}},
	"life-without-death": {birth: []uint32{3}, survival: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8}},
}

func TestBuiltins(t *testing.T) {
	t.Parallel()

	builtins := ruleset.Builtins()
	require.Len(t, builtins, len(notation))

	for name, rs := range builtins {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			want, ok := notation[name]
			require.True(t, ok)

			r, err := rs.Compile()
			require.NoError(t, err)

			for n := range uint32(9) {
				assert.Equal(t, contains(want.birth, n), r.Eval(rule.Env{NumNeighbors: n}), "birth n=%d", n)
				assert.Equal(t, contains(want.survival, n),
					r.Eval(rule.Env{NumNeighbors: n, IsAlive: true}), "survival n=%d", n)
			}
		})
	}
}

func contains(s []uint32, v uint32) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}

	return false
}

func TestConfig_EnsureDefaults(t *testing.T) {
	t.Parallel()

	c := &ruleset.Config{
		Rulesets: map[string]*ruleset.Ruleset{
			"conway": {Rule: "num_neighbors == 3"},
			"custom": {Rule: "is_alive"},
		},
	}
	c.EnsureDefaults()

	assert.Equal(t, ruleset.DefaultName, c.Default)
	assert.Equal(t, "num_neighbors == 3", c.Rulesets["conway"].Rule)
	assert.Equal(t, []string{"conway", "custom", "daynight", "highlife", "life-without-death", "seeds"}, c.Names())
}

func TestConfig_Get(t *testing.T) {
	t.Parallel()

	c := ruleset.NewConfig()

	tcs := map[string]struct {
		name    string
		wantErr string
		want    string
	}{
		"default":    {name: "", want: ruleset.Builtins()["conway"].Rule},
		"named":      {name: "seeds", want: "not is_alive and num_neighbors == 2"},
		"suggestion": {name: "conwy", wantErr: `unknown ruleset "conwy", did you mean "conway"?`},
		"folded":     {name: "CÖNWAY", wantErr: `unknown ruleset "CÖNWAY", did you mean "conway"?`},
		"no match": {
			name:    "zzz",
			wantErr: `unknown ruleset "zzz", configured rulesets are conway, daynight, highlife, life-without-death, and seeds`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := c.Get(tc.name)
			if tc.wantErr != "" {
				require.ErrorIs(t, err, ruleset.ErrUnknownRuleset)
				assert.EqualError(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Rule)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		cfg     *ruleset.Config
		wantErr error
	}{
		"builtins": {
			cfg: ruleset.NewConfig(),
		},
		"type error": {
			cfg: &ruleset.Config{
				Default:  "bad",
				Rulesets: map[string]*ruleset.Ruleset{"bad": {Rule: "is_alive == 3"}},
			},
			wantErr: rule.ErrType,
		},
		"parse error": {
			cfg: &ruleset.Config{
				Default:  "bad",
				Rulesets: map[string]*ruleset.Ruleset{"bad": {Rule: "is_alive and"}},
			},
			wantErr: rule.ErrParse,
		},
		"missing default": {
			cfg: &ruleset.Config{
				Default:  "missing",
				Rulesets: map[string]*ruleset.Ruleset{"ok": {Rule: "true"}},
			},
			wantErr: ruleset.ErrUnknownRuleset,
		},
		"nil ruleset": {
			cfg: &ruleset.Config{
				Rulesets: map[string]*ruleset.Ruleset{"empty": nil},
			},
			wantErr: ruleset.ErrInvalidRuleset,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.Validate()
			if tc.wantErr == nil {
				require.NoError(t, err)

				return
			}

			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}
