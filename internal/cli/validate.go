package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/epinetics/netsim-core/pkg/config"
)

// NewValidateCommand creates the validate subcommand
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: valid %s scenario (%d groups, %d steps, %d runs)\n",
				args[0], cfg.Model.Type, cfg.Model.Groups, cfg.Control.Steps, cfg.Control.Runs)
			return nil
		},
	}
}
