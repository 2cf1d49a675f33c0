package assets_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/assets"
	"github.com/macropower/lifegen/pkg/shader"
	"github.com/macropower/lifegen/pkg/template"
)

func TestShaders_Resolve(t *testing.T) {
	t.Parallel()

	unit, err := shader.ResolveUnit(shader.NewFSLoader(assets.Shaders()), assets.Entry)
	require.NoError(t, err)

	assert.Equal(t, []string{"game_of_life.wgsl", "common/grid.wgsl", "common/neighbors.wgsl"}, unit.Files)
	assert.Equal(t, 1, strings.Count(unit.Source, "struct Params"))
	assert.NotContains(t, unit.Source, "#import")
	assert.NotContains(t, unit.Source, "#define_import_path")

	require.NoError(t, template.Check(unit.Source))
	assert.Equal(t, "    ", template.MarkerIndent(unit.Source))
}
