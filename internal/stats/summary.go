// Package stats aggregates the per-step records of replicate runs into
// across-run summary statistics. It produces data for downstream analysis
// layers; it does no rendering of its own.
package stats

import (
	"github.com/epinetics/netsim-core/internal/engine"
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// Trajectory is the across-run mean and standard deviation of one
// compartment's count, indexed by step
type Trajectory struct {
	Mean   []float64
	StdDev []float64
}

// Summary aggregates a batch of replicate runs
type Summary struct {
	Runs          int
	CompletedRuns int

	// Compartments holds one trajectory per disease state over the steps
	// shared by all completed runs
	Compartments map[population.State]*Trajectory

	// ActiveSize is the trajectory of the total active population
	ActiveSize *Trajectory

	// MeanPeakPrevalence is the across-run mean of each run's maximum
	// infected fraction, and MeanPeakStep the mean step it occurred at
	MeanPeakPrevalence float64
	MeanPeakStep       float64

	// MeanCumulativeIncidence is the across-run mean of total infection
	// flows, and MeanAttackRate that count relative to the initial
	// population
	MeanCumulativeIncidence float64
	MeanAttackRate          float64
}

// Summarize computes across-run statistics from a batch result. Failed
// runs count toward Runs but contribute nothing else.
func Summarize(result *engine.BatchResult, model population.ModelType) *Summary {
	summary := &Summary{
		Runs:         len(result.Runs),
		Compartments: make(map[population.State]*Trajectory),
	}

	var completed []*engine.RunRecord
	for _, r := range result.Runs {
		if !r.Failed() {
			completed = append(completed, r)
		}
	}
	summary.CompletedRuns = len(completed)
	if len(completed) == 0 {
		return summary
	}

	steps := len(completed[0].Steps)
	states := model.States()
	for _, s := range states {
		summary.Compartments[s] = &Trajectory{
			Mean:   make([]float64, steps),
			StdDev: make([]float64, steps),
		}
	}
	summary.ActiveSize = &Trajectory{
		Mean:   make([]float64, steps),
		StdDev: make([]float64, steps),
	}

	values := make([]float64, len(completed))
	for step := 0; step < steps; step++ {
		for _, s := range states {
			for i, r := range completed {
				values[i] = float64(r.Steps[step].Counts.ByState[s])
			}
			summary.Compartments[s].Mean[step] = utils.Mean(values)
			summary.Compartments[s].StdDev[step] = utils.StdDev(values)
		}
		for i, r := range completed {
			values[i] = float64(r.Steps[step].Counts.Active)
		}
		summary.ActiveSize.Mean[step] = utils.Mean(values)
		summary.ActiveSize.StdDev[step] = utils.StdDev(values)
	}

	peaks := make([]float64, len(completed))
	peakSteps := make([]float64, len(completed))
	incidence := make([]float64, len(completed))
	attack := make([]float64, len(completed))
	for i, r := range completed {
		peak, peakStep := 0.0, 0
		for _, s := range r.Steps {
			if prev := s.Prevalence(); prev > peak {
				peak, peakStep = prev, s.Step
			}
		}
		peaks[i] = peak
		peakSteps[i] = float64(peakStep)
		incidence[i] = float64(r.TotalFlows().Infections)
		if initial := r.Steps[0].Counts.Active; initial > 0 {
			attack[i] = incidence[i] / float64(initial)
		}
	}
	summary.MeanPeakPrevalence = utils.Mean(peaks)
	summary.MeanPeakStep = utils.Mean(peakSteps)
	summary.MeanCumulativeIncidence = utils.Mean(incidence)
	summary.MeanAttackRate = utils.Mean(attack)
	return summary
}
