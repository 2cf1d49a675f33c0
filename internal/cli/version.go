package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/macropower/lifegen/pkg/version"
)

func NewVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetInfo()

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")

				err := enc.Encode(info)
				if err != nil {
					return fmt.Errorf("encode version: %w", err)
				}

				return nil
			}

			_, err := fmt.Fprint(cmd.OutOrStdout(), info.String())
			if err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print build information as JSON")

	return cmd
}
