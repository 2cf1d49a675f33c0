package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macropower/lifegen/pkg/version"
)

func TestInfo_String(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		info version.Info
		want string
	}{
		"release": {
			info: version.Info{
				Version:   "v1.2.0",
				Revision:  "abc1234",
				BuildDate: "2025-01-01",
				GoVersion: "go1.25.5",
				Platform:  "linux/amd64",
			},
			want: "version: v1.2.0\nrevision: abc1234\nbuild date: 2025-01-01\ngo version: go1.25.5\nplatform: linux/amd64\n",
		},
		"empty": {
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.info.String())
		})
	}
}

func TestGetInfo(t *testing.T) {
	t.Parallel()

	info := version.GetInfo()
	assert.Equal(t, version.GetVersion(), info.Version)
	assert.Equal(t, version.GoOS+"/"+version.GoArch, info.Platform)
	assert.NotEmpty(t, info.Revision)
}
