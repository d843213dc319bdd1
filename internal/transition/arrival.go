package transition

import (
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// Allocation computes the expected number of arrivals for a group that has
// no arrival rate of its own, given the controlling group's expected count
// and the current snapshot. The exact split rule is configuration policy,
// so it stays pluggable.
type Allocation func(controllingExpected float64, counts population.Counts, group, controlling int) float64

// ProportionalAllocation scales the controlling group's expected arrivals
// by the relative size of the receiving group.
func ProportionalAllocation(expected float64, counts population.Counts, group, controlling int) float64 {
	ctrlSize := counts.GroupSize(controlling)
	if ctrlSize == 0 {
		return 0
	}
	return expected * float64(counts.GroupSize(group)) / float64(ctrlSize)
}

// MirrorAllocation gives the receiving group the same expected arrival
// count as the controlling group.
func MirrorAllocation(expected float64, counts population.Counts, group, controlling int) float64 {
	return expected
}

// ArrivalModule proposes new susceptible entrants. Each group's expected
// count is its arrival rate times its own current size; a group without a
// rate receives an allocation derived from the controlling group,
// recomputed from the live snapshot each step. Counts are Poisson draws
// around the expectation.
type ArrivalModule struct {
	alloc Allocation
}

// NewArrivalModule creates the arrival module with the given allocation
// policy; nil defaults to proportional allocation.
func NewArrivalModule(alloc Allocation) *ArrivalModule {
	if alloc == nil {
		alloc = ProportionalAllocation
	}
	return &ArrivalModule{alloc: alloc}
}

func (m *ArrivalModule) Name() string {
	return "arrival"
}

func (m *ArrivalModule) Propose(snap Snapshot, net Contacts, params *Params, step int, rng *utils.RandSource) (*Proposals, error) {
	props := &Proposals{}
	counts := snap.SnapshotCounts()

	controlling := m.controllingGroup(params)

	for g := 1; g <= params.Groups; g++ {
		gp := params.ForGroup(g)

		var expected float64
		if gp.HasArrivalRate {
			expected = params.PerStep(gp.ArrivalRate) * float64(counts.GroupSize(g))
		} else if controlling != 0 && controlling != g {
			ctrl := params.ForGroup(controlling)
			ctrlExpected := params.PerStep(ctrl.ArrivalRate) * float64(counts.GroupSize(controlling))
			expected = m.alloc(ctrlExpected, counts, g, controlling)
		}
		if expected <= 0 {
			continue
		}

		count := rng.PoissonInt(expected)
		if count > 0 {
			props.Arrivals = append(props.Arrivals, Arrival{Group: g, Count: count})
			props.Flows.Arrivals += count
		}
	}
	return props, nil
}

// controllingGroup is the lowest group label with a configured arrival rate
func (m *ArrivalModule) controllingGroup(params *Params) int {
	for g := 1; g <= params.Groups; g++ {
		if params.ForGroup(g).HasArrivalRate {
			return g
		}
	}
	return 0
}
