// Package transition implements the per-step proposal modules: infection,
// recovery, departure and arrival. Modules are side-effect free; they read
// an immutable snapshot of the population and the contact network and
// return proposed changes, which the step controller validates and commits
// in a fixed order.
package transition

import (
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// Snapshot is the read-only population view a module proposes from. The
// population store satisfies it; modules must not type-assert their way to
// mutation.
type Snapshot interface {
	Model() population.ModelType
	ActiveIDs() []int
	ActiveIDsInState(state population.State) []int
	StateOf(id int) (population.State, bool)
	Get(id int) (population.Individual, bool)
	SnapshotCounts() population.Counts
}

// Contacts is the read-only contact network view for partner enumeration
type Contacts interface {
	PartnersOf(id int) []int
}

// StateChange is one proposed disease-state transition
type StateChange struct {
	ID   int
	From population.State
	To   population.State
}

// Arrival is a proposed batch of new entrants into one group
type Arrival struct {
	Group int
	Count int
}

// Flows counts the transitions of one kind proposed in one step. Records
// are append-only; the controller writes one Flows value per step and
// never mutates it afterwards.
type Flows struct {
	Infections int `json:"infections"`
	Recoveries int `json:"recoveries"`
	Departures int `json:"departures"`
	Arrivals   int `json:"arrivals"`
}

// Add accumulates another step's flows into f
func (f *Flows) Add(other Flows) {
	f.Infections += other.Infections
	f.Recoveries += other.Recoveries
	f.Departures += other.Departures
	f.Arrivals += other.Arrivals
}

// Proposals is the output of one module for one step
type Proposals struct {
	Transitions []StateChange
	Departures  []int
	Arrivals    []Arrival
	Flows       Flows
}

// Module is a transition module. Propose must not mutate the snapshot or
// the network; commit is the controller's job so that ordering within a
// step stays deterministic and auditable.
type Module interface {
	Name() string
	Propose(snap Snapshot, net Contacts, params *Params, step int, rng *utils.RandSource) (*Proposals, error)
}
