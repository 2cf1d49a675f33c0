// Package assets embeds the default compute shader sources.
package assets

import (
	"embed"
	"io/fs"
)

// Entry is the compute shader template containing the rule placeholder.
const Entry = "game_of_life.wgsl"

//go:embed shaders
var files embed.FS

// Shaders returns the embedded shader tree rooted at the shaders directory.
func Shaders() fs.FS {
	sub, err := fs.Sub(files, "shaders")
	if err != nil {
		panic(err)
	}

	return sub
}
