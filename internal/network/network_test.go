package network

import (
	"errors"
	"testing"
)

func buildNetwork(t *testing.T, vertices []int, edges [][2]int) *Network {
	t.Helper()
	n := New()
	for _, v := range vertices {
		if err := n.AddVertex(v); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		if err := n.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	return n
}

func TestAddVertexDuplicate(t *testing.T) {
	n := New()
	if err := n.AddVertex(1); err != nil {
		t.Fatal(err)
	}
	if err := n.AddVertex(1); !errors.Is(err, ErrDuplicateVertex) {
		t.Errorf("Expected ErrDuplicateVertex, got %v", err)
	}
}

func TestAddEdge(t *testing.T) {
	n := buildNetwork(t, []int{1, 2, 3}, nil)

	if err := n.AddEdge(1, 2); err != nil {
		t.Fatal(err)
	}
	if !n.HasEdge(1, 2) || !n.HasEdge(2, 1) {
		t.Error("Edge should be undirected")
	}
	if n.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, expected 1", n.EdgeCount())
	}

	// duplicate add is a no-op
	if err := n.AddEdge(2, 1); err != nil {
		t.Fatal(err)
	}
	if n.EdgeCount() != 1 {
		t.Errorf("EdgeCount after duplicate add = %d, expected 1", n.EdgeCount())
	}

	if err := n.AddEdge(1, 1); err == nil {
		t.Error("Self-loop should be rejected")
	}
	if err := n.AddEdge(1, 99); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("Edge to unknown vertex should fail, got %v", err)
	}
}

func TestRemoveVertexDissolvesIncidentEdges(t *testing.T) {
	n := buildNetwork(t, []int{1, 2, 3, 4}, [][2]int{{1, 2}, {1, 3}, {2, 3}})

	if err := n.RemoveVertex(1); err != nil {
		t.Fatal(err)
	}
	if n.HasVertex(1) {
		t.Error("Removed vertex should be gone")
	}
	if n.EdgeCount() != 1 {
		t.Errorf("EdgeCount after removal = %d, expected 1", n.EdgeCount())
	}
	for _, p := range n.PartnersOf(2) {
		if p == 1 {
			t.Error("Partner lists must not reference a removed vertex")
		}
	}

	if err := n.RemoveVertex(99); !errors.Is(err, ErrUnknownVertex) {
		t.Errorf("Removing unknown vertex should fail, got %v", err)
	}
}

func TestPartnersOfSorted(t *testing.T) {
	n := buildNetwork(t, []int{5, 1, 9, 3}, [][2]int{{5, 9}, {5, 1}, {5, 3}})

	partners := n.PartnersOf(5)
	expected := []int{1, 3, 9}
	if len(partners) != len(expected) {
		t.Fatalf("PartnersOf(5) = %v, expected %v", partners, expected)
	}
	for i := range expected {
		if partners[i] != expected[i] {
			t.Fatalf("PartnersOf(5) = %v, expected %v", partners, expected)
		}
	}

	if got := n.PartnersOf(42); got != nil {
		t.Errorf("PartnersOf on unknown vertex should be nil, got %v", got)
	}
}

func TestEdgesOrdering(t *testing.T) {
	n := buildNetwork(t, []int{4, 2, 7, 1}, [][2]int{{7, 2}, {4, 1}, {2, 1}})

	edges := n.Edges()
	expected := []Edge{{1, 2}, {1, 4}, {2, 7}}
	if len(edges) != len(expected) {
		t.Fatalf("Edges() = %v, expected %v", edges, expected)
	}
	for i := range expected {
		if edges[i] != expected[i] {
			t.Fatalf("Edges() = %v, expected %v", edges, expected)
		}
	}
}

func TestCloneIndependence(t *testing.T) {
	n := buildNetwork(t, []int{1, 2}, [][2]int{{1, 2}})
	cp := n.Clone()

	n.RemoveEdge(1, 2)
	if !cp.HasEdge(1, 2) {
		t.Error("Clone should be independent of the original")
	}
	if cp.EdgeCount() != 1 {
		t.Errorf("Clone EdgeCount = %d, expected 1", cp.EdgeCount())
	}
}

func TestValidate(t *testing.T) {
	n := buildNetwork(t, []int{1, 2}, [][2]int{{1, 2}})

	allActive := func(id int) bool { return true }
	if err := n.Validate(allActive, 3); err != nil {
		t.Fatalf("Consistent network failed validation: %v", err)
	}

	oneInactive := func(id int) bool { return id != 2 }
	err := n.Validate(oneInactive, 3)
	if !errors.Is(err, ErrInconsistent) {
		t.Fatalf("Expected ErrInconsistent, got %v", err)
	}
	var ce *ConsistencyError
	if !errors.As(err, &ce) {
		t.Fatal("Error should be a *ConsistencyError")
	}
	if ce.Step != 3 {
		t.Errorf("ConsistencyError step = %d, expected 3", ce.Step)
	}
}
