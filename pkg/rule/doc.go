// Package rule compiles cellular-automaton rulesets written in a small
// declarative language into WGSL statements.
//
// A ruleset is a boolean expression over two variables:
//   - `is_alive` (bool): whether the cell is currently alive.
//   - `num_neighbors` (u32): the number of live neighbors of the cell.
//
// For example, Conway's Game of Life:
//
//	if (is_alive) ((num_neighbors == 2) or (num_neighbors == 3)) else (num_neighbors == 3)
//
// Compilation happens in four stages: lexing, parsing into an AST,
// type-checking the AST, and lowering it into a [Program] of statements that
// can be rendered as WGSL with [Program.WGSL]. The generated code only
// assigns to a `result` variable of type u32, which the surrounding shader
// template must declare.
package rule
