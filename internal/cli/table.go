package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/pkg/expr"
	"github.com/macropower/lifegen/pkg/rule"
	"github.com/macropower/lifegen/pkg/theme"
)

const tableExamples = `  # Print the truth table of the default ruleset:
  lifegen table

  # Print the truth table of a configured ruleset:
  lifegen table --ruleset seeds

  # Print the truth table of an ad hoc rule:
  lifegen table 'not is_alive and num_neighbors == 2'`

// ErrBackendMismatch indicates that the CEL rendering of a rule disagrees
// with the reference evaluator.
var ErrBackendMismatch = errors.New("backend mismatch")

func NewTableCmd() *cobra.Command {
	ra := &RulesetArgs{}

	cmd := &cobra.Command{
		Use:     "table [RULE...]",
		Short:   "Print the next state of a cell for every input",
		Example: tableExamples,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text := "rule", strings.Join(args, " ")
			uiTheme := "auto"

			if len(args) == 0 {
				cfg, _, err := ra.Load()
				if err != nil {
					return err
				}

				rsName, rs, err := ra.Select(cfg)
				if err != nil {
					return err
				}

				name, text, uiTheme = rsName, rs.Rule, cfg.UI.Theme
			}

			r, err := rule.Compile(text)
			if err != nil {
				return withSource(text, err)
			}

			rows, err := truthTable(r)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s: %s\n",
				renderTable(rows, theme.New(uiTheme)), name, expr.Notation(rows))
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return nil
		},
	}
	ra.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

// truthTable evaluates r with the CEL backend and checks every row against
// the lowered program.
func truthTable(r *rule.Rule) ([]expr.Row, error) {
	env, err := expr.NewEnvironment()
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}

	rows, err := env.Table(r.Program)
	if err != nil {
		return nil, fmt.Errorf("evaluate rule: %w", err)
	}

	for _, row := range rows {
		want := r.Program.Eval(rule.Env{IsAlive: row.IsAlive, NumNeighbors: row.NumNeighbors})
		if want != row.Result {
			return nil, fmt.Errorf("%w: is_alive=%t num_neighbors=%d: cel=%d wgsl=%d",
				ErrBackendMismatch, row.IsAlive, row.NumNeighbors, row.Result, want)
		}
	}

	return rows, nil
}

func renderTable(rows []expr.Row, t *theme.Theme) string {
	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		data = append(data, []string{
			strconv.FormatBool(row.IsAlive),
			strconv.FormatUint(uint64(row.NumNeighbors), 10),
			strconv.FormatUint(uint64(row.Result), 10),
		})
	}

	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.SubtleStyle).
		Headers("is_alive", "num_neighbors", "result").
		Rows(data...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return t.ResultTitleStyle.Inherit(cell)
			}

			return cell
		}).
		String()
}
