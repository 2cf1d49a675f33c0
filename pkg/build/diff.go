package build

import (
	"github.com/aymanbagabas/go-udiff"
)

// Diff returns a unified diff turning current into want, or "" when they are
// equal.
func Diff(path, current, want string) string {
	if current == want {
		return ""
	}

	return udiff.Unified("a/"+path, "b/"+path, current, want)
}
