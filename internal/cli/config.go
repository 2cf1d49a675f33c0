package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/api"
	"github.com/macropower/lifegen/api/v1beta1/configs"
	"github.com/macropower/lifegen/pkg/config"
	"github.com/macropower/lifegen/pkg/rule"
	"github.com/macropower/lifegen/pkg/ruleset"
)

// RulesetArgs selects a configuration file and a ruleset from it.
type RulesetArgs struct {
	ConfigPath string
	Ruleset    string
}

func (ra *RulesetArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ra.ConfigPath, "config", "", "Path to the lifegen configuration file")
	cmd.Flags().StringVarP(&ra.Ruleset, "ruleset", "r", "", "Name of the ruleset to compile")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}

	err = cmd.RegisterFlagCompletionFunc("ruleset", rulesetCompletion(ra))
	if err != nil {
		panic(fmt.Errorf("register ruleset completion: %w", err))
	}
}

// Load returns the active configuration and the path it was read from.
// The path is empty when the embedded default is used.
func (ra *RulesetArgs) Load() (*configs.Config, string, error) {
	path := findConfigPath(ra.ConfigPath)
	if path == "" {
		slog.Debug("no configuration file found, using defaults")

		cfg, err := config.LoadDefault()
		if err != nil {
			return nil, "", fmt.Errorf("load default config: %w", err)
		}

		return cfg, "", nil
	}

	slog.Debug("load configuration", slog.String("path", path))

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, path, nil
}

// Select returns the requested ruleset, or the configured default.
func (ra *RulesetArgs) Select(cfg *configs.Config) (string, *ruleset.Ruleset, error) {
	name := ra.Ruleset
	if name == "" {
		name = cfg.Rulesets.Default
	}

	rs, err := cfg.Rulesets.Get(name)
	if err != nil {
		return "", nil, err //nolint:wrapcheck // Includes a suggestion.
	}

	return name, rs, nil
}

// findConfigPath returns explicit when set. Otherwise it searches the working
// directory and its parents for a project configuration, then falls back to
// the user configuration. It returns "" when no file exists.
func findConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	wd, err := os.Getwd()
	if err == nil {
		path, err := api.FindConfigFile(wd, api.ProjectConfigNames)
		if err != nil {
			slog.Debug("search project config", slog.Any("err", err))
		}

		if path != "" {
			return path
		}
	}

	path := configs.GetPath()

	_, err = os.Stat(path)
	if err != nil {
		return ""
	}

	return path
}

func rulesetCompletion(ra *RulesetArgs) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		cfg, _, err := ra.Load()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		completions := make([]cobra.Completion, 0, len(cfg.Rulesets.Rulesets))
		for _, name := range cfg.Rulesets.Names() {
			completions = append(completions, cobra.CompletionWithDesc(name, cfg.Rulesets.Rulesets[name].Description))
		}

		return completions, cobra.ShellCompDirectiveNoFileComp
	}
}

// compileError renders a rule compile error with the offending source line.
type compileError struct {
	err    error
	source string
}

func (e *compileError) Error() string {
	return rule.FormatWithContext(e.source, e.err)
}

func (e *compileError) Unwrap() error {
	return e.err
}

// withSource attaches source to err when err carries a rule position.
func withSource(source string, err error) error {
	if _, ok := rule.ErrorPosition(err); !ok {
		return err
	}

	return &compileError{err: err, source: source}
}
