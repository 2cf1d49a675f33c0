package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/lifegen/api"
)

func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		xdg  string
		home string
		want string
	}{
		"XDG_CONFIG_HOME set": {
			xdg:  "/custom/config",
			home: "/test/home",
			want: "/custom/config/lifegen/config.yaml",
		},
		"HOME fallback": {
			home: "/test/home",
			want: "/test/home/.config/lifegen/config.yaml",
		},
		"temp fallback": {
			want: filepath.Join(os.TempDir(), "lifegen", "config.yaml"), //nolint:usetesting // Needs to equal host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tc.xdg)
			t.Setenv("HOME", tc.home)

			assert.Equal(t, tc.want, api.GetConfigPath("config.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default: conway\n"), 0o600))

	got, err := api.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "default: conway\n", string(got))

	_, err = api.ReadFile(dir)
	require.ErrorContains(t, err, "path is a directory")

	_, err = api.ReadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing   string
		want       string
		force      bool
		wantBackup bool
	}{
		"new file": {
			want: "new",
		},
		"existing without force": {
			existing: "old",
			want:     "old",
		},
		"existing with force": {
			existing:   "old",
			force:      true,
			want:       "new",
			wantBackup: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := filepath.Join(t.TempDir(), "nested")
			path := filepath.Join(dir, "config.yaml")

			if tc.existing != "" {
				require.NoError(t, os.MkdirAll(dir, 0o700))
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o600))
			}

			require.NoError(t, api.WriteDefaultFile(path, []byte("new"), tc.force, "configuration"))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(got))

			backups, err := filepath.Glob(path + ".*.old")
			require.NoError(t, err)
			assert.Equal(t, tc.wantBackup, len(backups) == 1)
		})
	}

	err := api.WriteDefaultFile(t.TempDir(), []byte("new"), false, "configuration")
	require.ErrorContains(t, err, "path is a directory")
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o700))

	got, err := api.FindConfigFile(nested, api.ProjectConfigNames)
	require.NoError(t, err)
	assert.NotEqual(t, filepath.Join(root, ".lifegen.yaml"), got)

	configPath := filepath.Join(root, "lifegen.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("default: seeds\n"), 0o600))

	got, err = api.FindConfigFile(nested, api.ProjectConfigNames)
	require.NoError(t, err)
	assert.Equal(t, configPath, got)

	got, err = api.FindConfigFile(configPath, api.ProjectConfigNames)
	require.NoError(t, err)
	assert.Equal(t, configPath, got)
}
