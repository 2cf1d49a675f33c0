package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/pkg/expr"
	"github.com/macropower/lifegen/pkg/theme"
)

const maxDescriptionWidth = 48

func NewRulesetsCmd() *cobra.Command {
	ra := &RulesetArgs{}

	cmd := &cobra.Command{
		Use:     "rulesets",
		Aliases: []string{"ls"},
		Short:   "List the configured rulesets",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := ra.Load()
			if err != nil {
				return err
			}

			env, err := expr.NewEnvironment()
			if err != nil {
				return fmt.Errorf("create cel environment: %w", err)
			}

			t := theme.New(cfg.UI.Theme)
			cell := lipgloss.NewStyle().Padding(0, 1)

			tbl := table.New().
				Border(lipgloss.NormalBorder()).
				BorderStyle(t.SubtleStyle).
				Headers("", "name", "notation", "description")

			for _, name := range cfg.Rulesets.Names() {
				rs := cfg.Rulesets.Rulesets[name]

				r, err := rs.Compile()
				if err != nil {
					return fmt.Errorf("ruleset %q: %w", name, withSource(rs.Rule, err))
				}

				rows, err := env.Table(r.Program)
				if err != nil {
					return fmt.Errorf("ruleset %q: %w", name, err)
				}

				marker := ""
				if name == cfg.Rulesets.Default {
					marker = "*"
				}

				tbl.Row(marker, name, expr.Notation(rows), truncate.StringWithTail(rs.Description, maxDescriptionWidth, "…"))
			}

			tbl.StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return t.ResultTitleStyle.Inherit(cell)
				case col == 0:
					return t.SelectedStyle.Inherit(cell)
				}

				return cell
			})

			_, err = fmt.Fprintln(cmd.OutOrStdout(), tbl.String())
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
