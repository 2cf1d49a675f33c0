// Package shader flattens WGSL sources composed with `#import` directives
// into a single compilation unit.
//
// WGSL has no module system. A line of the form
//
//	#import common/neighbors.wgsl
//
// is replaced by the resolved contents of the referenced file, recursively
// and depth-first. Each distinct path is inlined at most once per unit, so
// two files importing the same helper do not produce duplicate declarations.
// Import cycles are reported as [ImportError] values wrapping [ErrCycle].
//
// Files are read through a [Loader], so the resolver itself never touches the
// filesystem. [FSLoader] adapts any [io/fs.FS] (including embed.FS and
// os.DirFS), and [MapLoader] serves sources from memory.
package shader
