package configs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/api/v1beta1"
	"github.com/macropower/lifegen/api/v1beta1/configs"
	"github.com/macropower/lifegen/pkg/config"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := configs.New()

	assert.Equal(t, v1beta1.APIVersion, cfg.GetAPIVersion())
	assert.Equal(t, configs.Kind, cfg.GetKind())
	require.NotNil(t, cfg.Rulesets)
	require.NotNil(t, cfg.Build)
	assert.Equal(t, "auto", cfg.UI.Theme)
	require.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	cfg := configs.New()
	cfg.Kind = "Policy"
	require.ErrorIs(t, cfg.Validate(), v1beta1.ErrUnsupportedKind)

	cfg = configs.New()
	cfg.Rulesets.Default = "missing"
	require.Error(t, cfg.Validate())
}

func TestConfig_MarshalYAML(t *testing.T) {
	t.Parallel()

	b, err := configs.New().MarshalYAML()
	require.NoError(t, err)

	// The marshaled default must load back through the schema.
	cl := config.NewLoaderFromBytes(b, configs.New, configs.DefaultValidator)
	require.NoError(t, cl.Validate())

	cfg, err := cl.Load()
	require.NoError(t, err)
	assert.Equal(t, configs.New().Rulesets.Names(), cfg.Rulesets.Names())
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "lifegen", "config.yaml")
	require.NoError(t, configs.WriteDefault(path, false))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultYAML(), got)
}
