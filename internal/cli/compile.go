package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/pkg/expr"
	"github.com/macropower/lifegen/pkg/highlight"
	"github.com/macropower/lifegen/pkg/rule"
	"github.com/macropower/lifegen/pkg/theme"
)

const (
	TargetWGSL = "wgsl"
	TargetCEL  = "cel"

	compileExamples = `  # Print the WGSL statements for a rule:
  lifegen compile 'if (is_alive) num_neighbors == 2 or num_neighbors == 3 else num_neighbors == 3'

  # Print the equivalent CEL expression:
  lifegen compile --target cel 'is_alive or num_neighbors == 3'`
)

var ErrUnknownTarget = errors.New("unknown target")

type CompileArgs struct {
	Target string
	Indent string
	Theme  string
}

func (ca *CompileArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&ca.Target, "target", "t", TargetWGSL,
		fmt.Sprintf("Output language, one of: [%s %s]", TargetWGSL, TargetCEL))
	cmd.Flags().StringVar(&ca.Indent, "indent", "    ", "Indentation unit for WGSL output")
	cmd.Flags().StringVar(&ca.Theme, "theme", "auto", "Chroma style used on terminals")

	err := cmd.RegisterFlagCompletionFunc("target",
		cobra.FixedCompletions([]cobra.Completion{TargetWGSL, TargetCEL}, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(fmt.Errorf("register target completion: %w", err))
	}
}

func NewCompileCmd() *cobra.Command {
	ca := &CompileArgs{}

	cmd := &cobra.Command{
		Use:     "compile RULE...",
		Short:   "Compile a rule expression and print the generated code",
		Example: compileExamples,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")

			r, err := rule.Compile(text)
			if err != nil {
				return withSource(text, err)
			}

			var code, lang string

			switch ca.Target {
			case TargetWGSL:
				code, lang = r.WGSL(rule.WithIndent(ca.Indent)), highlight.LangWGSL
			case TargetCEL:
				code, lang = expr.Render(r.Program), "cel"
			default:
				return fmt.Errorf("%w %q", ErrUnknownTarget, ca.Target)
			}

			return writeCode(cmd.OutOrStdout(), code, lang, theme.New(ca.Theme))
		},
	}
	ca.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}
