package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/pkg/log"
)

const (
	cmdName = "lifegen"
	cmdDesc = `Compiles cellular automaton rulesets into WGSL compute shaders.`
)

type RootArgs struct {
	LogLevel  string
	LogFormat string
}

func NewRootArgs() *RootArgs {
	return &RootArgs{}
}

func (ra *RootArgs) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVar(&ra.LogLevel, "log-level", "info", fmt.Sprintf("Log level, one of: %s", log.AllLevels))
	cmd.PersistentFlags().
		StringVar(&ra.LogFormat, "log-format", "text", fmt.Sprintf("Log format, one of: %s", log.AllFormats))

	var err error

	err = cmd.RegisterFlagCompletionFunc("log-format",
		cobra.FixedCompletions(log.AllFormats, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("log-level",
		cobra.FixedCompletions(log.AllLevels, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

// NewRootCmd creates the lifegen command tree. Without a subcommand it
// behaves like "lifegen build".
func NewRootCmd() *cobra.Command {
	args := NewRootArgs()
	buildArgs := NewBuildArgs(args)

	buildCmd := NewBuildCmd(buildArgs)
	cmd := &cobra.Command{
		Use:               cmdName,
		Short:             cmdDesc,
		Example:           buildExamples,
		PersistentPreRunE: setupLogging(args),
		Args:              buildCmd.Args,
		RunE:              buildCmd.RunE,
	}

	args.AddFlags(cmd)
	buildArgs.AddFlags(cmd)
	cmd.AddCommand(
		buildCmd,
		NewCompileCmd(),
		NewTableCmd(),
		NewCheckCmd(),
		NewRulesetsCmd(),
		NewVersionCmd(),
	)

	bindEnvVars(cmd)

	return cmd
}

func setupLogging(rc *RootArgs) func(cmd *cobra.Command, _ []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		err := log.Setup(cmd.ErrOrStderr(), rc.LogLevel, rc.LogFormat)
		if err != nil {
			return fmt.Errorf("create log handler: %w", err)
		}

		return nil
	}
}
