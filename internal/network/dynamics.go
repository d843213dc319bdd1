package network

import (
	"github.com/epinetics/netsim-core/pkg/utils"
)

// Dynamics configures the relational dynamics applied each step. Both
// probabilities are per-step Bernoulli parameters applied independently to
// every eligible dyad (formation) or existing edge (dissolution), never a
// single population-wide rate.
type Dynamics struct {
	// FormationProb is the probability that a currently unpartnered
	// eligible dyad forms an edge this step
	FormationProb float64

	// DissolutionProb is the probability that an existing edge dissolves
	// this step
	DissolutionProb float64

	// Bipartite restricts eligible dyads to pairs in different groups
	Bipartite bool
}

// Resimulator advances the contact network one step. It is the only
// component that writes to the network during a step.
type Resimulator struct {
	dyn Dynamics
}

// NewResimulator creates a resimulator with the given dynamics
func NewResimulator(dyn Dynamics) *Resimulator {
	return &Resimulator{dyn: dyn}
}

// Dynamics returns the configured dynamics
func (r *Resimulator) Dynamics() Dynamics {
	return r.dyn
}

// AdvanceOneStep produces the network for step t+1 from step t: one
// dissolution draw per existing edge, then one formation draw per eligible
// unpartnered dyad. Iteration is in sorted vertex order so the draw
// sequence is reproducible for a seeded run.
func (r *Resimulator) AdvanceOneStep(net *Network, groupOf func(int) int, rng *utils.RandSource) {
	if r.dyn.DissolutionProb > 0 {
		for _, e := range net.Edges() {
			if rng.BernoulliBool(r.dyn.DissolutionProb) {
				net.RemoveEdge(e.A, e.B)
			}
		}
	}

	if r.dyn.FormationProb <= 0 {
		return
	}
	vertices := net.Vertices()
	for i, a := range vertices {
		for _, b := range vertices[i+1:] {
			if !r.eligible(a, b, groupOf) {
				continue
			}
			if net.HasEdge(a, b) {
				continue
			}
			if rng.BernoulliBool(r.dyn.FormationProb) {
				// both endpoints are vertices, AddEdge cannot fail
				_ = net.AddEdge(a, b)
			}
		}
	}
}

func (r *Resimulator) eligible(a, b int, groupOf func(int) int) bool {
	if !r.dyn.Bipartite {
		return true
	}
	return groupOf(a) != groupOf(b)
}

// SeedRandom populates an initial network over the given vertices as a
// Bernoulli random graph targeting the given mean degree. In bipartite mode
// only cross-group dyads are eligible, and the per-dyad probability is
// scaled so the overall mean degree still matches the target.
func SeedRandom(net *Network, ids []int, meanDegree float64, bipartite bool, groupOf func(int) int, rng *utils.RandSource) {
	for _, id := range ids {
		if !net.HasVertex(id) {
			_ = net.AddVertex(id)
		}
	}
	n := len(ids)
	if n < 2 || meanDegree <= 0 {
		return
	}

	// target edge count is meanDegree*n/2; divide by the eligible dyad
	// count to get the per-dyad probability
	eligible := 0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !bipartite || groupOf(ids[i]) != groupOf(ids[j]) {
				eligible++
			}
		}
	}
	if eligible == 0 {
		return
	}
	p := utils.ClampFloat64(meanDegree*float64(n)/2.0/float64(eligible), 0, 1)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, b := ids[i], ids[j]
			if bipartite && groupOf(a) == groupOf(b) {
				continue
			}
			if rng.BernoulliBool(p) {
				_ = net.AddEdge(a, b)
			}
		}
	}
}
