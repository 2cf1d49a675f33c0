// Package expr provides a CEL (Common Expression Language) backend for
// compiled rules.
//
// A [rule.Program] is folded into a single CEL expression, which is
// statement-free, so every conditional becomes a `c ? a : b` ternary. The
// expression is evaluated with cel-go and serves as an independent check on
// the reference evaluator in package rule.
//
// CEL expressions have access to variables:
//   - `is_alive` (bool): Whether the current cell is alive
//   - `num_neighbors` (uint): The number of live neighbors, 0 to 8
//
// and to the function `u32(bool) -> uint`, which maps false to 0u and true
// to 1u, like its WGSL namesake.
package expr
