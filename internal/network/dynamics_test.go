package network

import (
	"testing"

	"github.com/epinetics/netsim-core/pkg/utils"
)

func sameGroup(id int) int { return 1 }

// groups: odd ids group 1, even ids group 2
func parity(id int) int { return 1 + id%2 }

func TestAdvanceOneStepDissolution(t *testing.T) {
	n := buildNetwork(t, []int{1, 2, 3}, [][2]int{{1, 2}, {2, 3}, {1, 3}})
	r := NewResimulator(Dynamics{DissolutionProb: 1.0})

	r.AdvanceOneStep(n, sameGroup, utils.NewRandSource(1))
	if n.EdgeCount() != 0 {
		t.Errorf("Dissolution prob 1 should clear all edges, %d remain", n.EdgeCount())
	}
	if n.VertexCount() != 3 {
		t.Errorf("Dissolution must not remove vertices, have %d", n.VertexCount())
	}
}

func TestAdvanceOneStepFormation(t *testing.T) {
	n := buildNetwork(t, []int{1, 2, 3, 4}, nil)
	r := NewResimulator(Dynamics{FormationProb: 1.0})

	r.AdvanceOneStep(n, sameGroup, utils.NewRandSource(1))
	// complete graph on 4 vertices
	if n.EdgeCount() != 6 {
		t.Errorf("Formation prob 1 should form all 6 dyads, got %d", n.EdgeCount())
	}
}

func TestAdvanceOneStepBipartite(t *testing.T) {
	n := buildNetwork(t, []int{1, 2, 3, 4}, nil)
	r := NewResimulator(Dynamics{FormationProb: 1.0, Bipartite: true})

	r.AdvanceOneStep(n, parity, utils.NewRandSource(1))
	// only cross-group dyads: 2 odd x 2 even = 4 edges
	if n.EdgeCount() != 4 {
		t.Errorf("Bipartite formation should form 4 cross-group edges, got %d", n.EdgeCount())
	}
	if n.HasEdge(1, 3) || n.HasEdge(2, 4) {
		t.Error("Bipartite dynamics must not form within-group edges")
	}
}

func TestAdvanceOneStepDeterministic(t *testing.T) {
	build := func() *Network {
		n := New()
		for i := 1; i <= 20; i++ {
			_ = n.AddVertex(i)
		}
		return n
	}
	r := NewResimulator(Dynamics{FormationProb: 0.2, DissolutionProb: 0.3})

	n1, n2 := build(), build()
	for step := 0; step < 5; step++ {
		r.AdvanceOneStep(n1, sameGroup, utils.NewRandSource(7))
		r.AdvanceOneStep(n2, sameGroup, utils.NewRandSource(7))
	}

	e1, e2 := n1.Edges(), n2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("Same seed produced different edge counts: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i] != e2[i] {
			t.Fatalf("Same seed produced different edges at %d: %v vs %v", i, e1[i], e2[i])
		}
	}
}

func TestSeedRandomMeanDegree(t *testing.T) {
	n := New()
	ids := make([]int, 200)
	for i := range ids {
		ids[i] = i + 1
	}
	SeedRandom(n, ids, 2.0, false, sameGroup, utils.NewRandSource(11))

	if n.VertexCount() != 200 {
		t.Fatalf("VertexCount = %d, expected 200", n.VertexCount())
	}
	meanDegree := 2.0 * float64(n.EdgeCount()) / 200.0
	if meanDegree < 1.4 || meanDegree > 2.6 {
		t.Errorf("Seeded mean degree %f too far from target 2.0", meanDegree)
	}
}

func TestSeedRandomBipartite(t *testing.T) {
	n := New()
	ids := make([]int, 100)
	for i := range ids {
		ids[i] = i + 1
	}
	SeedRandom(n, ids, 1.5, true, parity, utils.NewRandSource(11))

	for _, e := range n.Edges() {
		if parity(e.A) == parity(e.B) {
			t.Fatalf("Bipartite seeding formed within-group edge (%d, %d)", e.A, e.B)
		}
	}
	if n.EdgeCount() == 0 {
		t.Error("Expected some cross-group edges")
	}
}
