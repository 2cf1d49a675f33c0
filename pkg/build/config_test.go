package build_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/assets"
	"github.com/macropower/lifegen/pkg/build"
)

func TestConfig_EnsureDefaults(t *testing.T) {
	t.Parallel()

	c := build.NewConfig()

	assert.Equal(t, assets.Entry, c.Shader.Entry)
	assert.Equal(t, "    ", c.Shader.Indent)
	require.NotNil(t, c.Shader.Validate)
	assert.True(t, *c.Shader.Validate)
	assert.Equal(t, build.EmitWGSL, c.Output.Emit)

	validate := false
	c = &build.Config{Shader: &build.ShaderConfig{Validate: &validate, Entry: "x.wgsl"}}
	c.EnsureDefaults()
	assert.False(t, *c.Shader.Validate)
	assert.Equal(t, "x.wgsl", c.Shader.Entry)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	tcs := map[string]struct {
		cfg     *build.Config
		wantErr bool
	}{
		"defaults": {
			cfg: build.NewConfig(),
		},
		"root dir": {
			cfg: &build.Config{Shader: &build.ShaderConfig{Root: dir}},
		},
		"missing root": {
			cfg:     &build.Config{Shader: &build.ShaderConfig{Root: filepath.Join(dir, "missing")}},
			wantErr: true,
		},
		"bad emit": {
			cfg:     &build.Config{Output: &build.OutputConfig{Emit: "glsl"}},
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.cfg.Validate()
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestConfig_DebugPath(t *testing.T) {
	c := build.NewConfig()
	c.Shader.Root = "shaders"

	t.Setenv(build.EnvDebugShader, "")
	assert.Empty(t, c.DebugPath())

	t.Setenv(build.EnvDebugShader, "1")
	assert.Equal(t, filepath.Join("shaders", "game_of_life.wgsl.debug.wgsl"), c.DebugPath())

	c.Output.DebugPath = "out.wgsl"
	assert.Equal(t, "out.wgsl", c.DebugPath())
}

func TestConfig_Options(t *testing.T) {
	t.Parallel()

	c := build.NewConfig()
	c.Output.DebugPath = ""
	*c.Shader.Validate = false

	out, err := build.NewBuilder(c.Options()...).Build(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"game_of_life.wgsl", "common/grid.wgsl", "common/neighbors.wgsl"}, out.Files())
}
