package engine

import (
	"time"

	"github.com/epinetics/netsim-core/internal/network"
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/internal/transition"
)

// RunStatus represents the status of a simulation run
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// StepStats is the per-step line of the simulation record: the compartment
// counts after commit plus the flows that produced them. Entries are
// appended once per step and never mutated afterwards.
type StepStats struct {
	Step      int
	Counts    population.Counts
	Flows     transition.Flows
	EdgeCount int
}

// Prevalence returns the infected fraction of the active population
func (s StepStats) Prevalence() float64 {
	if s.Counts.Active == 0 {
		return 0
	}
	return float64(s.Counts.ByState[population.Infected]) / float64(s.Counts.Active)
}

// RunRecord is the full record of one replicate run
type RunRecord struct {
	RunID  string
	Index  int
	Seed   int64
	Status RunStatus

	// Steps holds one StepStats per completed step, in order. For a failed
	// run it covers the steps that committed before the failure.
	Steps []StepStats

	// FinalNetwork is the contact network after the last committed step
	FinalNetwork *network.Network

	Error     string
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Failed reports whether this run aborted before completing
func (r *RunRecord) Failed() bool {
	return r.Status == RunStatusFailed
}

// FinalCounts returns the compartment counts after the last committed step
func (r *RunRecord) FinalCounts() population.Counts {
	if len(r.Steps) == 0 {
		return population.Counts{}
	}
	return r.Steps[len(r.Steps)-1].Counts
}

// TotalFlows accumulates flows over all committed steps
func (r *RunRecord) TotalFlows() transition.Flows {
	var total transition.Flows
	for _, s := range r.Steps {
		total.Add(s.Flows)
	}
	return total
}

// BatchResult collects the records of all replicate runs of one simulation
type BatchResult struct {
	SimID string
	Runs  []*RunRecord
}

// FailedRuns returns the records of runs that aborted
func (b *BatchResult) FailedRuns() []*RunRecord {
	var failed []*RunRecord
	for _, r := range b.Runs {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}
