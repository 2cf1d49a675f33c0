package cli_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/internal/cli"
	"github.com/macropower/lifegen/pkg/build"
	"github.com/macropower/lifegen/pkg/expr"
	"github.com/macropower/lifegen/pkg/rule"
	"github.com/macropower/lifegen/pkg/ruleset"
)

const configHeader = "apiVersion: lifegen.macropower.dev/v1beta1\nkind: Configuration\n"

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "lifegen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(configHeader+body), 0o600))

	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestCompileCmd(t *testing.T) {
	t.Parallel()

	const text = "if (is_alive) num_neighbors == 2 or num_neighbors == 3 else num_neighbors == 3"

	r := rule.MustCompile(text)

	tcs := map[string]struct {
		want string
		args []string
	}{
		"wgsl": {
			args: []string{"compile", text},
			want: r.WGSL(rule.WithIndent("    ")) + "\n",
		},
		"wgsl with indent": {
			args: []string{"compile", "--indent", "\t", text},
			want: r.WGSL(rule.WithIndent("\t")) + "\n",
		},
		"cel": {
			args: []string{"compile", "--target", "cel", text},
			want: expr.Render(r.Program) + "\n",
		},
		"unquoted words": {
			args: []string{"compile", "--target", "cel", "is_alive", "or", "num_neighbors", "==", "3"},
			want: expr.Render(rule.MustCompile("is_alive or num_neighbors == 3").Program) + "\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompileCmd_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want    error
		args    []string
		wantMsg string
	}{
		"type error": {
			args:    []string{"compile", "is_alive == 3"},
			want:    rule.ErrType,
			wantMsg: "  | is_alive == 3\n  | ^",
		},
		"parse error": {
			args:    []string{"compile", "if (is_alive) true"},
			want:    rule.ErrParse,
			wantMsg: "  | if (is_alive) true\n",
		},
		"unknown target": {
			args: []string{"compile", "--target", "glsl", "true"},
			want: cli.ErrUnknownTarget,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tc.args...)
			require.ErrorIs(t, err, tc.want)

			if tc.wantMsg != "" {
				assert.Contains(t, err.Error(), tc.wantMsg)
			}
		})
	}
}

func TestTableCmd(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, "default: seeds\n")

	tcs := map[string]struct {
		want string
		args []string
	}{
		"rule argument": {
			args: []string{"table", "is_alive or num_neighbors == 3"},
			want: "rule: B3/S012345678\n",
		},
		"configured default": {
			args: []string{"table", "--config", configPath},
			want: "seeds: B2/S\n",
		},
		"named ruleset": {
			args: []string{"table", "--config", configPath, "--ruleset", "highlife"},
			want: "highlife: B36/S23\n",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := execute(t, tc.args...)
			require.NoError(t, err)
			assert.Contains(t, got, "num_neighbors")
			assert.True(t, strings.HasSuffix(got, tc.want), got)
		})
	}
}

func TestRulesetsCmd(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, `default: single
rulesets:
  single:
    description: Only one neighbor
    rule: num_neighbors == 1
`)

	got, err := execute(t, "rulesets", "--config", configPath)
	require.NoError(t, err)

	for _, want := range []string{"single", "B1/S1", "Only one neighbor", "conway", "B3/S23", "*"} {
		assert.Contains(t, got, want)
	}
}

func TestBuildCmd(t *testing.T) {
	t.Parallel()

	want, err := build.NewBuilder(
		build.WithValidate(false),
		build.WithRuleset("highlife", ruleset.Builtins()["highlife"].Rule),
	).Build(t.Context())
	require.NoError(t, err)

	t.Run("stdout", func(t *testing.T) {
		t.Parallel()

		got, err := execute(t, "build", "--no-validate", "--config", writeConfig(t, "default: highlife\n"))
		require.NoError(t, err)
		assert.Equal(t, want.WGSL(), got)
	})

	t.Run("root command", func(t *testing.T) {
		t.Parallel()

		got, err := execute(t, "--no-validate", "--ruleset", "highlife", "--config", writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t, want.WGSL(), got)
	})

	t.Run("output file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "life.wgsl")

		got, err := execute(t, "build", "--no-validate", "--ruleset", "highlife", "-o", path,
			"--config", writeConfig(t, ""))
		require.NoError(t, err)
		assert.Empty(t, got)

		b, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, want.WGSL(), string(b))
	})

	t.Run("shader root", func(t *testing.T) {
		t.Parallel()

		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "tiny.wgsl"),
			[]byte("fn f(is_alive: bool, num_neighbors: u32) -> u32 {\n    var result: u32 = 0u;\n    {PLACEHOLDER}\n    return result;\n}\n"),
			0o600))

		got, err := execute(t, "build", "--no-validate", "--ruleset", "seeds",
			"--shader-root", root, "--entry", "tiny.wgsl", "--config", writeConfig(t, ""))
		require.NoError(t, err)
		assert.Equal(t,
			"fn f(is_alive: bool, num_neighbors: u32) -> u32 {\n    var result: u32 = 0u;\n    "+
				rule.MustCompile(ruleset.Builtins()["seeds"].Rule).WGSL(rule.WithBaseIndent("    "))+
				"\n    return result;\n}\n",
			got)
	})
}

func TestBuildCmd_ShowConfig(t *testing.T) {
	t.Parallel()

	got, err := execute(t, "--show-config", "--config", writeConfig(t, "default: seeds\n"))
	require.NoError(t, err)
	assert.Contains(t, got, "apiVersion: lifegen.macropower.dev/v1beta1")
	assert.Contains(t, got, "default: seeds")
	assert.Contains(t, got, "life-without-death:")
}

func TestBuildCmd_WriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config", "lifegen.yaml")

	_, err := execute(t, "--write-config", "--config", path)
	require.NoError(t, err)

	got, err := execute(t, "--show-config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, got, "maze:")
}

func TestBuildCmd_Errors(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, `rulesets:
  broken:
    rule: is_alive == 3
`)

	tcs := map[string]struct {
		want error
		args []string
	}{
		"unknown ruleset": {
			args: []string{"--ruleset", "conwy", "--config", writeConfig(t, "")},
			want: ruleset.ErrUnknownRuleset,
		},
		"unknown emit": {
			args: []string{"--emit", "glsl", "--config", writeConfig(t, "")},
			want: build.ErrUnknownEmit,
		},
		"watch embedded template": {
			args: []string{"--watch", "--config", writeConfig(t, "")},
			want: cli.ErrWatchEmbedded,
		},
		"invalid ruleset in config": {
			args: []string{"--config", configPath},
			want: rule.ErrType,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, tc.args...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCheckCmd(t *testing.T) {
	t.Parallel()

	want, err := build.NewBuilder(build.WithValidate(false)).Build(t.Context())
	require.NoError(t, err)

	dir := t.TempDir()
	configPath := writeConfig(t, "")

	fresh := filepath.Join(dir, "fresh.wgsl")
	require.NoError(t, os.WriteFile(fresh, []byte(want.WGSL()), 0o600))

	stale := filepath.Join(dir, "stale.wgsl")
	require.NoError(t, os.WriteFile(stale, []byte("// old\n"+want.WGSL()), 0o600))

	got, err := execute(t, "check", "--no-validate", "--config", configPath, fresh)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = execute(t, "check", "--no-validate", "--config", configPath, stale)
	require.ErrorIs(t, err, cli.ErrStale)
	assert.Contains(t, got, "--- a/"+stale)
	assert.Contains(t, got, "-// old")

	_, err = execute(t, "check", "--no-validate", "--config", configPath, filepath.Join(dir, "missing.wgsl"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	got, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, got, "version: ")
	assert.Contains(t, got, "platform: ")

	got, err = execute(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, got, `"goVersion": "go`)
}
