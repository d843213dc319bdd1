// Package cli implements the netsim command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel string
	JSONLogs bool
}

// NewRootCommand creates the root command for the netsim CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "netsim",
		Short: "Network-based stochastic epidemic simulation engine",
		Long: "netsim runs time-stepped stochastic epidemic models (SI, SIR, SIS; one or\n" +
			"two mixing groups) over a dynamically evolving contact network.",
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error); overrides the scenario")
	cmd.PersistentFlags().BoolVar(&opts.JSONLogs, "json-logs", false, "emit JSON logs instead of text")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}
