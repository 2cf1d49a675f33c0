package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// annotationNoEnv marks flags that must only be set on the command line.
const annotationNoEnv = "lifegen_no_env"

// bindEnvVars binds environment variables to the flags of cmd. Names are
// generated as LIFEGEN_<FLAG_NAME>, upper-cased with dashes replaced by
// underscores:
//   - Flag "log-level" becomes environment variable "LIFEGEN_LOG_LEVEL"
//   - Flag "ruleset" becomes environment variable "LIFEGEN_RULESET"
//
// Arguments take precedence over environment variables, which take
// precedence over default values. Flag usage is updated to show the
// variable name in help output.
func bindEnvVars(cmd *cobra.Command) {
	cmd.Flags().VisitAll(bindFlagToEnv)
	cmd.PersistentFlags().VisitAll(bindFlagToEnv)
}

// commandLineOnly excludes the named flags of cmd from [bindEnvVars].
// It must be called before binding.
func commandLineOnly(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		err := cmd.Flags().SetAnnotation(name, annotationNoEnv, []string{"true"})
		if err != nil {
			panic(fmt.Errorf("annotate flag %q: %w", name, err))
		}
	}
}

func bindFlagToEnv(flag *pflag.Flag) {
	if _, ok := flag.Annotations[annotationNoEnv]; ok {
		return
	}

	envName := flagToEnvName(flag.Name)

	if !strings.Contains(flag.Usage, envName) {
		flag.Usage = fmt.Sprintf("%s ($%s)", flag.Usage, envName)
	}

	// Already set via command line arguments.
	if flag.Changed {
		return
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok {
		return
	}

	err := flag.Value.Set(envValue)
	if err != nil {
		// Keep the default value.
		slog.Error("failed to set flag from environment variable",
			slog.String("flag", flag.Name),
			slog.String("env", envName),
			slog.String("value", envValue),
			slog.Any("error", err),
		)
	}
}

// flagToEnvName converts a flag name to its corresponding environment variable name.
// Example: "shader-root" -> "LIFEGEN_SHADER_ROOT".
func flagToEnvName(flagName string) string {
	envName := strings.ReplaceAll(flagName, "-", "_")
	return strings.ToUpper(cmdName + "_" + envName)
}
