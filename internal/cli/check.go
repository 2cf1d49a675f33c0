package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/api"
	"github.com/macropower/lifegen/pkg/build"
)

const checkExamples = `  # Fail if a generated shader is out of date:
  lifegen check --shader-root ./shaders --ruleset highlife life.out.wgsl`

// ErrStale indicates that a generated file does not match a fresh build.
var ErrStale = errors.New("generated shader is out of date")

func NewCheckCmd() *cobra.Command {
	sa := &SourceArgs{}

	cmd := &cobra.Command{
		Use:     "check FILE",
		Short:   "Check that a generated WGSL file matches a fresh build",
		Example: checkExamples,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			current, err := api.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			env, err := sa.prepare(func(cfg *build.Config) {
				cfg.Output.Path = ""
				cfg.Output.DebugPath = ""
				cfg.Output.Emit = build.EmitWGSL
			})
			if err != nil {
				return err
			}

			out, err := env.builder().Build(cmd.Context())
			if err != nil {
				return withSource(env.rule, err)
			}

			diff := build.Diff(path, string(current), out.WGSL())
			if diff == "" {
				slog.Info("shader is up to date", slog.String("path", path), slog.String("ruleset", env.ruleset))

				return nil
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), diff)
			if err != nil {
				return fmt.Errorf("write diff: %w", err)
			}

			return fmt.Errorf("%s: %w", path, ErrStale)
		},
	}
	sa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
