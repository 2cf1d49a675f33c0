package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/api/v1beta1/configs"
	"github.com/macropower/lifegen/pkg/build"
	"github.com/macropower/lifegen/pkg/highlight"
	"github.com/macropower/lifegen/pkg/log"
	"github.com/macropower/lifegen/pkg/theme"
)

const (
	buildExamples = `  # Print the Game of Life shader with the default ruleset:
  lifegen

  # Use another ruleset (defined in config or built in):
  lifegen --ruleset highlife

  # Build a template from disk and write the result to a file:
  lifegen --shader-root ./shaders --entry life.wgsl -o life.out.wgsl

  # Emit SPIR-V instead of WGSL:
  lifegen --emit spirv -o life.spv

  # Rebuild whenever the template, its imports or the config change:
  lifegen --shader-root ./shaders -o life.out.wgsl --watch`
)

var (
	ErrWatchEmbedded  = errors.New("watch mode requires --shader-root")
	ErrBinaryTerminal = errors.New("refusing to write SPIR-V to a terminal, use --output")
)

// SourceArgs selects the configuration, ruleset and shader sources.
type SourceArgs struct {
	RulesetArgs

	ShaderRoot string
	Entry      string
	NoValidate bool
}

func (sa *SourceArgs) AddFlags(cmd *cobra.Command) {
	sa.RulesetArgs.AddFlags(cmd)

	cmd.Flags().StringVar(&sa.ShaderRoot, "shader-root", "",
		"Directory containing the shader template and its imports (default: embedded template)")
	cmd.Flags().StringVar(&sa.Entry, "entry", "", "Template path, relative to the shader root")
	cmd.Flags().BoolVar(&sa.NoValidate, "no-validate", false, "Skip WGSL validation of the assembled shader")

	err := cmd.MarkFlagDirname("shader-root")
	if err != nil {
		panic(fmt.Errorf("mark shader-root flag: %w", err))
	}
}

// apply overrides cfg with the flags that were set.
func (sa *SourceArgs) apply(cfg *build.Config) {
	if sa.ShaderRoot != "" {
		cfg.Shader.Root = sa.ShaderRoot
	}

	if sa.Entry != "" {
		cfg.Shader.Entry = sa.Entry
	}

	if sa.NoValidate {
		validate := false
		cfg.Shader.Validate = &validate
	}
}

// buildEnv is a loaded configuration with a selected ruleset.
type buildEnv struct {
	cfg        *configs.Config
	configPath string
	ruleset    string
	rule       string
}

// prepare loads the configuration and applies overrides to its build
// section.
func (sa *SourceArgs) prepare(overrides ...func(*build.Config)) (*buildEnv, error) {
	cfg, path, err := sa.Load()
	if err != nil {
		return nil, err
	}

	sa.apply(cfg.Build)

	for _, fn := range overrides {
		fn(cfg.Build)
	}

	err = cfg.Build.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid build options: %w", err)
	}

	name, rs, err := sa.Select(cfg)
	if err != nil {
		return nil, err
	}

	return &buildEnv{
		cfg:        cfg,
		configPath: path,
		ruleset:    name,
		rule:       rs.Rule,
	}, nil
}

func (e *buildEnv) builder() *build.Builder {
	opts := append(e.cfg.Build.Options(), build.WithRuleset(e.ruleset, e.rule))

	return build.NewBuilder(opts...)
}

func (e *buildEnv) theme() *theme.Theme {
	return theme.New(e.cfg.UI.Theme)
}

type BuildArgs struct {
	*RootArgs
	SourceArgs

	Output      string
	Emit        string
	Watch       bool
	WriteConfig bool
	ShowConfig  bool
}

func NewBuildArgs(rootArgs *RootArgs) *BuildArgs {
	return &BuildArgs{
		RootArgs: rootArgs,
	}
}

func (ba *BuildArgs) AddFlags(cmd *cobra.Command) {
	ba.SourceArgs.AddFlags(cmd)

	cmd.Flags().StringVarP(&ba.Output, "output", "o", "", "Write the shader to a file instead of stdout")
	cmd.Flags().StringVar(&ba.Emit, "emit", "", "Artifact to emit, one of: [wgsl spirv]")
	cmd.Flags().BoolVarP(&ba.Watch, "watch", "w", false, "Watch for changes and rebuild")
	cmd.Flags().BoolVar(&ba.WriteConfig, "write-config", false, "Write the default configuration file and exit")
	cmd.Flags().BoolVar(&ba.ShowConfig, "show-config", false, "Print the active configuration and exit")

	commandLineOnly(cmd, "write-config", "show-config")

	err := cmd.RegisterFlagCompletionFunc("emit", cobra.FixedCompletions(
		[]cobra.Completion{string(build.EmitWGSL), string(build.EmitSPIRV)},
		cobra.ShellCompDirectiveNoFileComp,
	))
	if err != nil {
		panic(fmt.Errorf("register emit completion: %w", err))
	}
}

// overrides applies the output flags to cfg.
func (ba *BuildArgs) overrides(cfg *build.Config) {
	if ba.Output != "" {
		cfg.Output.Path = ba.Output
	}

	if ba.Emit != "" {
		cfg.Output.Emit = build.Emit(ba.Emit)
	}
}

func NewBuildCmd(ba *BuildArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "build",
		Short:   "Default command, compiles a ruleset into the shader template",
		Example: buildExamples,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, ba)
		},
	}
	ba.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runBuild(cmd *cobra.Command, ba *BuildArgs) error {
	if ba.WriteConfig {
		path := ba.ConfigPath
		if path == "" {
			path = configs.GetPath()
		}

		err := configs.WriteDefault(path, false)
		if err != nil {
			return err //nolint:wrapcheck // Already wrapped.
		}

		slog.Info("configuration written", slog.String("path", path))

		return nil
	}

	env, err := ba.prepare(ba.overrides)
	if err != nil {
		return err
	}

	if ba.ShowConfig {
		slog.Info("active configuration", slog.String("path", env.configPath))

		b, err := env.cfg.MarshalYAML()
		if err != nil {
			return fmt.Errorf("marshal config yaml: %w", err)
		}

		return writeCode(cmd.OutOrStdout(), string(b), highlight.LangYAML, env.theme())
	}

	if ba.Watch {
		return ba.watch(cmd, env)
	}

	out, err := env.builder().Build(cmd.Context())
	if err != nil {
		return withSource(env.rule, err)
	}

	return writeOutput(cmd.OutOrStdout(), env, out)
}

func writeOutput(w io.Writer, env *buildEnv, out *build.Output) error {
	if path := env.cfg.Build.Output.Path; path != "" {
		slog.Info("shader written",
			slog.String("path", path),
			slog.String("ruleset", out.Ruleset),
			slog.String("size", humanize.Bytes(uint64(len(out.Bytes())))),
		)

		return nil
	}

	if out.Emit == build.EmitSPIRV {
		if isTerminal(w) {
			return ErrBinaryTerminal
		}

		_, err := w.Write(out.Bytes())
		if err != nil {
			return fmt.Errorf("write output: %w", err)
		}

		return nil
	}

	return writeCode(w, out.WGSL(), highlight.LangWGSL, env.theme())
}

func (ba *BuildArgs) watch(cmd *cobra.Command, env *buildEnv) error {
	root := env.cfg.Build.Shader.Root
	if root == "" {
		return ErrWatchEmbedded
	}

	ctx := cmd.Context()

	var current atomic.Pointer[buildEnv]
	current.Store(env)

	var opts []build.WatcherOpt
	if env.configPath != "" {
		opts = append(opts, build.WithReload(func(ctx context.Context) (*build.Builder, error) {
			next, err := ba.prepare(ba.overrides)
			if err != nil {
				return nil, err
			}

			log.WithContext(ctx).InfoContext(ctx, "configuration reloaded",
				slog.String("path", next.configPath),
				slog.String("ruleset", next.ruleset),
			)

			current.Store(next)

			return next.builder(), nil
		}, env.configPath))
	}

	w, err := build.NewWatcher(env.builder(), root, opts...)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	defer func() {
		err := w.Close()
		if err != nil {
			slog.Error("close watcher", slog.Any("err", err))
		}
	}()

	events := make(chan build.Event)
	w.Subscribe(events)

	errCh := make(chan error, 1)

	go func() {
		errCh <- w.Run(ctx)

		close(events)
	}()

	for evt := range events {
		logger := log.WithContext(evt.Context())

		switch e := evt.(type) {
		case build.EventStart:
			logger.InfoContext(ctx, "building", slog.String("trigger", e.Trigger))

		case build.EventEnd:
			if e.Err != nil {
				logger.ErrorContext(ctx, "build failed", slog.String("err", withSource(current.Load().rule, e.Err).Error()))

				continue
			}

			err := writeOutput(cmd.OutOrStdout(), current.Load(), e.Output)
			if err != nil {
				logger.ErrorContext(ctx, "write output", slog.Any("err", err))
			}
		}
	}

	return <-errCh
}
