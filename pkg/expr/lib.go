package expr

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"

	"github.com/macropower/lifegen/pkg/rule"
)

// MaxNeighbors is the largest possible neighbor count in a Moore
// neighborhood.
const MaxNeighbors = 8

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		cel.Variable(rule.VarIsAlive, cel.BoolType),
		cel.Variable(rule.VarNumNeighbors, cel.UintType),

		cel.Constant("MAX_NEIGHBORS", cel.UintType, types.Uint(MaxNeighbors)),

		// `u32` converts a boolean to 0u or 1u.
		// Example: u32(num_neighbors == 3u).
		cel.Function("u32",
			cel.Overload("u32_bool", []*cel.Type{cel.BoolType}, cel.UintType,
				cel.UnaryBinding(func(v ref.Val) ref.Val {
					b, ok := v.(types.Bool)
					if !ok {
						return types.NewErr("u32: invalid bool value")
					}
					if b {
						return types.Uint(1)
					}

					return types.Uint(0)
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}
