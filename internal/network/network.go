// Package network owns the contact network: an undirected graph over active
// individual identifiers. The resimulator is the only writer during a step;
// transition modules hold read-only views.
package network

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrInconsistent marks an edge whose endpoint is inactive or unknown
	ErrInconsistent = errors.New("network references inactive vertex")

	// ErrUnknownVertex marks an operation on a vertex not in the network
	ErrUnknownVertex = errors.New("unknown vertex")

	// ErrDuplicateVertex marks an AddVertex for an identifier already present
	ErrDuplicateVertex = errors.New("duplicate vertex")
)

// ConsistencyError reports an edge with an inactive endpoint, detected by
// Validate after a step commits. Always fatal to the run.
type ConsistencyError struct {
	A, B int
	Step int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("network inconsistency at step %d: edge (%d, %d) references an inactive vertex", e.Step, e.A, e.B)
}

func (e *ConsistencyError) Unwrap() error {
	return ErrInconsistent
}

// Edge is an undirected dyad, stored with A < B
type Edge struct {
	A, B int
}

// Network is an adjacency-set graph over individual identifiers
type Network struct {
	adj       map[int]map[int]struct{}
	edgeCount int
}

// New creates an empty contact network
func New() *Network {
	return &Network{adj: make(map[int]map[int]struct{})}
}

// AddVertex registers a new individual with no edges
func (n *Network) AddVertex(id int) error {
	if _, ok := n.adj[id]; ok {
		return fmt.Errorf("add vertex %d: %w", id, ErrDuplicateVertex)
	}
	n.adj[id] = make(map[int]struct{})
	return nil
}

// RemoveVertex removes an individual and dissolves all incident edges in
// one operation; no intermediate state with a dangling endpoint is ever
// observable.
func (n *Network) RemoveVertex(id int) error {
	partners, ok := n.adj[id]
	if !ok {
		return fmt.Errorf("remove vertex %d: %w", id, ErrUnknownVertex)
	}
	for p := range partners {
		delete(n.adj[p], id)
		n.edgeCount--
	}
	delete(n.adj, id)
	return nil
}

// HasVertex reports whether the identifier is a vertex of the network
func (n *Network) HasVertex(id int) bool {
	_, ok := n.adj[id]
	return ok
}

// AddEdge forms an edge between two existing vertices. Self-loops and
// duplicate edges are rejected.
func (n *Network) AddEdge(a, b int) error {
	if a == b {
		return fmt.Errorf("add edge: self-loop on vertex %d", a)
	}
	if _, ok := n.adj[a]; !ok {
		return fmt.Errorf("add edge (%d, %d): %w", a, b, ErrUnknownVertex)
	}
	if _, ok := n.adj[b]; !ok {
		return fmt.Errorf("add edge (%d, %d): %w", a, b, ErrUnknownVertex)
	}
	if _, ok := n.adj[a][b]; ok {
		return nil
	}
	n.adj[a][b] = struct{}{}
	n.adj[b][a] = struct{}{}
	n.edgeCount++
	return nil
}

// RemoveEdge dissolves an edge; removing an absent edge is a no-op
func (n *Network) RemoveEdge(a, b int) {
	if _, ok := n.adj[a][b]; !ok {
		return
	}
	delete(n.adj[a], b)
	delete(n.adj[b], a)
	n.edgeCount--
}

// HasEdge reports whether an edge exists between a and b
func (n *Network) HasEdge(a, b int) bool {
	_, ok := n.adj[a][b]
	return ok
}

// Degree returns the number of partners of a vertex
func (n *Network) Degree(id int) int {
	return len(n.adj[id])
}

// PartnersOf returns the partner identifiers of an individual in ascending
// order. The returned slice is owned by the caller.
func (n *Network) PartnersOf(id int) []int {
	set, ok := n.adj[id]
	if !ok {
		return nil
	}
	partners := make([]int, 0, len(set))
	for p := range set {
		partners = append(partners, p)
	}
	sort.Ints(partners)
	return partners
}

// VertexCount returns the number of vertices
func (n *Network) VertexCount() int {
	return len(n.adj)
}

// EdgeCount returns the number of edges
func (n *Network) EdgeCount() int {
	return n.edgeCount
}

// Vertices returns all vertex identifiers in ascending order
func (n *Network) Vertices() []int {
	ids := make([]int, 0, len(n.adj))
	for id := range n.adj {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Edges returns all edges with A < B, sorted by (A, B). Ordering matters:
// the resimulator's dissolution draws iterate this slice, so it must be
// stable for a given graph.
func (n *Network) Edges() []Edge {
	edges := make([]Edge, 0, n.edgeCount)
	for _, a := range n.Vertices() {
		for b := range n.adj[a] {
			if a < b {
				edges = append(edges, Edge{A: a, B: b})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// Clone returns a deep copy of the network
func (n *Network) Clone() *Network {
	cp := New()
	for id, partners := range n.adj {
		cp.adj[id] = make(map[int]struct{}, len(partners))
		for p := range partners {
			cp.adj[id][p] = struct{}{}
		}
	}
	cp.edgeCount = n.edgeCount
	return cp
}

// Validate checks the referential invariant: every vertex is active and
// every edge joins two active vertices.
func (n *Network) Validate(isActive func(int) bool, atStep int) error {
	for id, partners := range n.adj {
		if !isActive(id) {
			return &ConsistencyError{A: id, B: id, Step: atStep}
		}
		for p := range partners {
			if !isActive(p) {
				a, b := id, p
				if b < a {
					a, b = b, a
				}
				return &ConsistencyError{A: a, B: b, Step: atStep}
			}
		}
	}
	return nil
}
