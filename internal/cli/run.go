package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/epinetics/netsim-core/internal/engine"
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/internal/stats"
	"github.com/epinetics/netsim-core/pkg/config"
	"github.com/epinetics/netsim-core/pkg/logger"
)

// NewRunCommand creates the run subcommand
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var (
		runs int
		seed int64
	)

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a simulation scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(args[0])
			if err != nil {
				return err
			}
			if runs > 0 {
				cfg.Control.Runs = runs
			}
			if seed != 0 {
				cfg.Control.Seed = seed
			}
			setupLogger(cfg, opts)

			driver, err := engine.NewDriver(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := driver.Run(ctx)
			if err != nil {
				return err
			}
			reportResult(cfg, result)

			if failed := result.FailedRuns(); len(failed) > 0 {
				return fmt.Errorf("%d of %d runs failed", len(failed), len(result.Runs))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 0, "override the scenario's replicate run count")
	cmd.Flags().Int64Var(&seed, "seed", 0, "override the scenario's base random seed")
	return cmd
}

func setupLogger(cfg *config.Config, opts *RootOptions) {
	level := cfg.LogLevel
	if opts.LogLevel != "" {
		level = opts.LogLevel
	}
	if opts.JSONLogs {
		logger.SetDefault(logger.New(level, os.Stderr))
	} else {
		logger.SetDefault(logger.NewText(level, os.Stderr))
	}
}

func reportResult(cfg *config.Config, result *engine.BatchResult) {
	model := population.ModelType(cfg.Model.Type)
	for _, r := range result.Runs {
		if r.Failed() {
			logger.Warn("run incomplete",
				"run", r.Index,
				"run_id", r.RunID,
				"completed_steps", len(r.Steps)-1,
				"error", r.Error)
			continue
		}
		final := r.FinalCounts()
		flows := r.TotalFlows()
		logger.Info("run result",
			"run", r.Index,
			"run_id", r.RunID,
			"seed", r.Seed,
			"duration", r.Duration.String(),
			"final_active", final.Active,
			"final_susceptible", final.ByState[population.Susceptible],
			"final_infected", final.ByState[population.Infected],
			"final_recovered", final.ByState[population.Recovered],
			"total_infections", flows.Infections,
			"final_edges", r.FinalNetwork.EdgeCount())
	}

	summary := stats.Summarize(result, model)
	if summary.CompletedRuns == 0 {
		return
	}
	logger.Info("batch summary",
		"sim_id", result.SimID,
		"runs", summary.Runs,
		"completed_runs", summary.CompletedRuns,
		"mean_peak_prevalence", summary.MeanPeakPrevalence,
		"mean_peak_step", summary.MeanPeakStep,
		"mean_cumulative_incidence", summary.MeanCumulativeIncidence,
		"mean_attack_rate", summary.MeanAttackRate)
}
