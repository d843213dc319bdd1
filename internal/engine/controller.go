package engine

import (
	"fmt"
	"log/slog"

	"github.com/epinetics/netsim-core/internal/network"
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/internal/transition"
	"github.com/epinetics/netsim-core/pkg/logger"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// Controller runs one time step: propose (all modules, from the immutable
// step-start snapshot) -> validate -> commit in module order -> advance the
// network -> check invariants -> record. The module order infection ->
// recovery -> departure -> arrival is fixed for reproducibility: recovery
// only ever evaluates the pre-infection infected set, and arrival group
// sizes come from the pre-departure snapshot.
type Controller struct {
	store   *population.Store
	net     *network.Network
	resim   *network.Resimulator
	modules []transition.Module
	params  *transition.Params
	rng     *utils.RandSource
	logger  *slog.Logger
}

// NewController creates a controller over the given stores
func NewController(store *population.Store, net *network.Network, resim *network.Resimulator,
	modules []transition.Module, params *transition.Params, rng *utils.RandSource) *Controller {
	return &Controller{
		store:   store,
		net:     net,
		resim:   resim,
		modules: modules,
		params:  params,
		rng:     rng,
		logger:  logger.Default,
	}
}

// SetLogger sets the controller's logger
func (c *Controller) SetLogger(l *slog.Logger) {
	c.logger = l
}

// Network returns the controller's contact network
func (c *Controller) Network() *network.Network {
	return c.net
}

// Store returns the controller's population store
func (c *Controller) Store() *population.Store {
	return c.store
}

// RunStep executes one full time step and returns its statistics. Any
// error is fatal to the run: it indicates a module or resimulator defect,
// not a recoverable data condition.
func (c *Controller) RunStep(step int) (StepStats, error) {
	proposals := make([]*transition.Proposals, 0, len(c.modules))
	for _, m := range c.modules {
		p, err := m.Propose(c.store, c.net, c.params, step, c.rng)
		if err != nil {
			return StepStats{}, fmt.Errorf("module %s propose at step %d: %w", m.Name(), step, err)
		}
		proposals = append(proposals, p)
	}

	if err := c.validate(proposals, step); err != nil {
		return StepStats{}, err
	}

	var flows transition.Flows
	for i, p := range proposals {
		if err := c.commit(p, step); err != nil {
			return StepStats{}, fmt.Errorf("module %s commit at step %d: %w", c.modules[i].Name(), step, err)
		}
		flows.Add(p.Flows)
	}

	c.resim.AdvanceOneStep(c.net, c.groupOf, c.rng)

	if err := c.net.Validate(c.store.IsActive, step); err != nil {
		return StepStats{}, err
	}
	counts := c.store.SnapshotCounts()
	if err := c.checkConservation(counts, step); err != nil {
		return StepStats{}, err
	}

	stats := StepStats{
		Step:      step,
		Counts:    counts,
		Flows:     flows,
		EdgeCount: c.net.EdgeCount(),
	}
	c.logger.Debug("step committed",
		"step", step,
		"active", counts.Active,
		"infected", counts.ByState[population.Infected],
		"edges", stats.EdgeCount,
		"infections", flows.Infections,
		"recoveries", flows.Recoveries,
		"departures", flows.Departures,
		"arrivals", flows.Arrivals)
	return stats, nil
}

// validate rejects proposal sets that reference inactive individuals or
// propose conflicting double-transitions for the same individual
func (c *Controller) validate(proposals []*transition.Proposals, step int) error {
	changed := make(map[int]bool)
	departed := make(map[int]bool)
	for _, p := range proposals {
		for _, t := range p.Transitions {
			if !c.store.IsActive(t.ID) {
				return fmt.Errorf("validation at step %d: transition %s -> %s references inactive individual %d",
					step, t.From, t.To, t.ID)
			}
			if changed[t.ID] {
				return fmt.Errorf("validation at step %d: conflicting double-transition for individual %d", step, t.ID)
			}
			changed[t.ID] = true
		}
		for _, id := range p.Departures {
			if !c.store.IsActive(id) {
				return fmt.Errorf("validation at step %d: departure references inactive individual %d", step, id)
			}
			if departed[id] {
				return fmt.Errorf("validation at step %d: duplicate departure for individual %d", step, id)
			}
			departed[id] = true
		}
		for _, a := range p.Arrivals {
			if a.Count < 0 || (a.Group < 1 || a.Group > c.params.Groups) {
				return fmt.Errorf("validation at step %d: invalid arrival proposal (group %d, count %d)",
					step, a.Group, a.Count)
			}
		}
	}
	return nil
}

// commit applies one module's proposals to the stores
func (c *Controller) commit(p *transition.Proposals, step int) error {
	for _, t := range p.Transitions {
		if err := c.store.ApplyTransition(t.ID, t.From, t.To, step); err != nil {
			return err
		}
	}
	for _, id := range p.Departures {
		if err := c.store.Deactivate(id, step); err != nil {
			return err
		}
		// incident-edge dissolution is atomic with the vertex removal
		if err := c.net.RemoveVertex(id); err != nil {
			return err
		}
	}
	for _, a := range p.Arrivals {
		for i := 0; i < a.Count; i++ {
			id := c.store.Add(population.Susceptible, a.Group, step)
			if err := c.net.AddVertex(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkConservation verifies sum(per-state counts) == active population
// size and that the vertex set matches the active set
func (c *Controller) checkConservation(counts population.Counts, step int) error {
	sum := 0
	for _, n := range counts.ByState {
		sum += n
	}
	if sum != counts.Active {
		return fmt.Errorf("conservation violation at step %d: state counts sum to %d, active population is %d",
			step, sum, counts.Active)
	}
	if c.net.VertexCount() != counts.Active {
		return fmt.Errorf("at step %d: network has %d vertices but active population is %d: %w",
			step, c.net.VertexCount(), counts.Active, network.ErrInconsistent)
	}
	return nil
}

func (c *Controller) groupOf(id int) int {
	ind, ok := c.store.Get(id)
	if !ok {
		return 0
	}
	return ind.Group
}
