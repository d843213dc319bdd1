package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/epinetics/netsim-core/internal/network"
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/internal/transition"
	"github.com/epinetics/netsim-core/pkg/config"
	"github.com/epinetics/netsim-core/pkg/logger"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// Driver orchestrates the configured number of replicate runs, each a full
// step sequence over fresh stores with an independently seeded random
// stream. Replicates share no mutable state and run in parallel bounded by
// the control spec; a failed run is tagged incomplete and the rest
// continue.
type Driver struct {
	cfg      *config.Config
	params   *transition.Params
	baseSeed int64
	logger   *slog.Logger
}

// NewDriver builds a driver from a validated scenario. Parameter problems
// surface here, before any run starts.
func NewDriver(cfg *config.Config) (*Driver, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	params, err := buildParams(cfg)
	if err != nil {
		return nil, err
	}
	baseSeed := cfg.Control.Seed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	return &Driver{
		cfg:      cfg,
		params:   params,
		baseSeed: baseSeed,
		logger:   logger.Default,
	}, nil
}

// SetLogger sets the driver's logger
func (d *Driver) SetLogger(l *slog.Logger) {
	d.logger = l
}

// BaseSeed returns the resolved base seed; run i uses BaseSeed()+i
func (d *Driver) BaseSeed() int64 {
	return d.baseSeed
}

// Run executes all replicate runs and returns their records indexed by
// run. The only error it returns is a context error raised before any
// run started; per-run failures are reported on the records.
func (d *Driver) Run(ctx context.Context) (*BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BatchResult{
		SimID: utils.GenerateSimID(),
		Runs:  make([]*RunRecord, d.cfg.Control.Runs),
	}
	d.logger.Info("starting simulation",
		"sim_id", result.SimID,
		"model", d.cfg.Model.Type,
		"groups", d.cfg.Model.Groups,
		"steps", d.cfg.Control.Steps,
		"runs", d.cfg.Control.Runs,
		"base_seed", d.baseSeed)

	semaphore := make(chan struct{}, d.cfg.Control.MaxParallel)
	var wg sync.WaitGroup
	for i := 0; i < d.cfg.Control.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			result.Runs[idx] = d.runOne(ctx, idx)
		}(i)
	}
	wg.Wait()

	failed := len(result.FailedRuns())
	d.logger.Info("simulation finished",
		"sim_id", result.SimID,
		"runs", len(result.Runs),
		"failed_runs", failed)
	return result, nil
}

// runOne executes a single replicate run to completion or failure
func (d *Driver) runOne(ctx context.Context, index int) *RunRecord {
	seed := d.baseSeed + int64(index)
	rec := &RunRecord{
		RunID:     utils.GenerateRunID(),
		Index:     index,
		Seed:      seed,
		Status:    RunStatusRunning,
		StartTime: time.Now(),
	}
	log := d.logger.With("run_id", rec.RunID, "run", index, "seed", seed)
	log.Info("run started")

	rng := utils.NewRandSource(seed)
	ctrl := d.buildRun(rng)
	ctrl.SetLogger(log)

	// step 0 records the initial conditions with zero flows
	rec.Steps = append(rec.Steps, StepStats{
		Step:      0,
		Counts:    ctrl.Store().SnapshotCounts(),
		EdgeCount: ctrl.Network().EdgeCount(),
	})

	for step := 1; step <= d.cfg.Control.Steps; step++ {
		// step boundaries are the only consistent cancellation points
		select {
		case <-ctx.Done():
			rec.Status = RunStatusFailed
			rec.Error = ctx.Err().Error()
			log.Warn("run cancelled", "step", step)
			return d.finishRun(rec, ctrl)
		default:
		}

		stats, err := ctrl.RunStep(step)
		if err != nil {
			rec.Status = RunStatusFailed
			rec.Error = err.Error()
			log.Error("run failed", "step", step, "error", err)
			return d.finishRun(rec, ctrl)
		}
		rec.Steps = append(rec.Steps, stats)
	}

	rec.Status = RunStatusCompleted
	final := rec.FinalCounts()
	log.Info("run completed",
		"active", final.Active,
		"infected", final.ByState[population.Infected],
		"edges", ctrl.Network().EdgeCount())
	return d.finishRun(rec, ctrl)
}

func (d *Driver) finishRun(rec *RunRecord, ctrl *Controller) *RunRecord {
	rec.FinalNetwork = ctrl.Network()
	rec.EndTime = time.Now()
	rec.Duration = rec.EndTime.Sub(rec.StartTime)
	return rec
}

// buildRun constructs fresh stores, modules and a controller for one run
func (d *Driver) buildRun(rng *utils.RandSource) *Controller {
	model := population.ModelType(d.cfg.Model.Type)
	store := population.NewStore(model)

	seedGroup := func(group int, counts config.InitCountsSpec) {
		for i := 0; i < counts.Susceptible; i++ {
			store.Add(population.Susceptible, group, 0)
		}
		for i := 0; i < counts.Infected; i++ {
			store.Add(population.Infected, group, 0)
		}
		for i := 0; i < counts.Recovered; i++ {
			store.Add(population.Recovered, group, 0)
		}
	}
	seedGroup(1, d.cfg.Init.Group1)
	if d.cfg.Model.Groups == 2 {
		seedGroup(2, *d.cfg.Init.Group2)
	}

	groupOf := func(id int) int {
		ind, ok := store.Get(id)
		if !ok {
			return 0
		}
		return ind.Group
	}

	net := network.New()
	network.SeedRandom(net, store.ActiveIDs(), d.cfg.Network.MeanDegree,
		d.cfg.Model.Groups == 2, groupOf, rng)

	resim := network.NewResimulator(network.Dynamics{
		FormationProb:   d.cfg.Network.FormationProb,
		DissolutionProb: d.cfg.Network.DissolutionProb,
		Bipartite:       d.cfg.Model.Groups == 2,
	})

	return NewController(store, net, resim, d.buildModules(model), d.params, rng)
}

// buildModules selects the transition modules once, at configuration time.
// The set is closed: model type and demography decide it, nothing inside
// the step loop branches on model type beyond this.
func (d *Driver) buildModules(model population.ModelType) []transition.Module {
	modules := []transition.Module{transition.NewInfectionModule()}
	if model.HasRecovery() {
		modules = append(modules, transition.NewRecoveryModule())
	}
	if d.params.Demography {
		modules = append(modules,
			transition.NewDepartureModule(),
			transition.NewArrivalModule(d.params.Allocation))
	}
	return modules
}

// buildParams resolves the scenario into the immutable parameter set the
// modules consume
func buildParams(cfg *config.Config) (*transition.Params, error) {
	params := &transition.Params{
		Model:        population.ModelType(cfg.Model.Type),
		Groups:       cfg.Model.Groups,
		StepsPerUnit: cfg.Control.StepsPerUnit,
		Demography:   cfg.Demography(),
	}

	if cfg.Model.Groups == 2 {
		if cfg.Params.Balance == "group2" {
			params.BalanceGroup = 2
		} else {
			params.BalanceGroup = 1
		}
	}

	switch cfg.Params.Allocation {
	case "mirror":
		params.Allocation = transition.MirrorAllocation
	default:
		params.Allocation = transition.ProportionalAllocation
	}

	params.Group[1] = resolveGroup(&cfg.Params.Group1)
	if cfg.Params.Group2 != nil {
		params.Group[2] = resolveGroup(cfg.Params.Group2)
	}
	return params, nil
}

func resolveGroup(g *config.GroupRatesSpec) transition.GroupParams {
	gp := transition.GroupParams{
		ExitRates: make(map[population.State]float64),
	}
	if g.InfProb != nil {
		gp.InfProb = *g.InfProb
	}
	if g.ActRate != nil {
		gp.ActRate = *g.ActRate
		gp.HasActRate = true
	}
	if g.RecRate != nil {
		gp.RecRate = *g.RecRate
	}
	if g.ArrivalRate != nil {
		gp.ArrivalRate = *g.ArrivalRate
		gp.HasArrivalRate = true
	}
	if g.ExitRateS != nil {
		gp.ExitRates[population.Susceptible] = *g.ExitRateS
	}
	if g.ExitRateI != nil {
		gp.ExitRates[population.Infected] = *g.ExitRateI
	}
	if g.ExitRateR != nil {
		gp.ExitRates[population.Recovered] = *g.ExitRateR
	}
	return gp
}
