// Package build assembles the final compute shader: it resolves shader
// imports, compiles the selected ruleset, substitutes the generated code into
// the template and optionally validates or compiles the result.
//
// A [Watcher] repeats the build whenever a contributing file changes.
package build
