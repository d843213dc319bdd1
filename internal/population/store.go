package population

import "fmt"

// Individual is one member of the population. Identifiers are unique for
// the whole run and never reused; departed individuals stay in the store
// (inactive) so that history referencing their IDs remains resolvable.
type Individual struct {
	ID        int
	State     State
	Group     int
	EntryStep int
	ExitStep  int // -1 while active
	Active    bool
}

// Counts is an aggregate view over the active population
type Counts struct {
	Active  int
	ByState map[State]int
	// ByGroup maps group label -> state -> count
	ByGroup map[int]map[State]int
}

// GroupSize returns the active size of one group
func (c Counts) GroupSize(group int) int {
	total := 0
	for _, n := range c.ByGroup[group] {
		total += n
	}
	return total
}

// Store owns all per-individual state. All mutation goes through
// ApplyTransition, Deactivate and Add; everything else is read-only.
// Iteration over ActiveIDs is in ascending identifier order so that the
// draw sequence of a seeded run is reproducible.
type Store struct {
	model       ModelType
	individuals map[int]*Individual
	order       []int // identifiers in creation order (ascending)
	nextID      int
	activeCount int
}

// NewStore creates an empty store for the given model type
func NewStore(model ModelType) *Store {
	return &Store{
		model:       model,
		individuals: make(map[int]*Individual),
		nextID:      1,
	}
}

// Model returns the configured model type
func (s *Store) Model() ModelType {
	return s.model
}

// Add creates a new active individual and returns its identifier
func (s *Store) Add(state State, group, entryStep int) int {
	id := s.nextID
	s.nextID++
	s.individuals[id] = &Individual{
		ID:        id,
		State:     state,
		Group:     group,
		EntryStep: entryStep,
		ExitStep:  -1,
		Active:    true,
	}
	s.order = append(s.order, id)
	s.activeCount++
	return id
}

// Get returns a copy of the individual with the given identifier
func (s *Store) Get(id int) (Individual, bool) {
	ind, ok := s.individuals[id]
	if !ok {
		return Individual{}, false
	}
	return *ind, true
}

// StateOf returns the current disease state of an individual
func (s *Store) StateOf(id int) (State, bool) {
	ind, ok := s.individuals[id]
	if !ok {
		return "", false
	}
	return ind.State, true
}

// IsActive reports whether the identifier refers to an active individual
func (s *Store) IsActive(id int) bool {
	ind, ok := s.individuals[id]
	return ok && ind.Active
}

// ActiveCount returns the number of active individuals
func (s *Store) ActiveCount() int {
	return s.activeCount
}

// ActiveIDs returns the identifiers of all active individuals in ascending order
func (s *Store) ActiveIDs() []int {
	ids := make([]int, 0, s.activeCount)
	for _, id := range s.order {
		if s.individuals[id].Active {
			ids = append(ids, id)
		}
	}
	return ids
}

// ActiveIDsInGroup returns the active identifiers of one group in ascending order
func (s *Store) ActiveIDsInGroup(group int) []int {
	var ids []int
	for _, id := range s.order {
		ind := s.individuals[id]
		if ind.Active && ind.Group == group {
			ids = append(ids, id)
		}
	}
	return ids
}

// ActiveIDsInState returns the active identifiers currently in the given
// state, in ascending order.
func (s *Store) ActiveIDsInState(state State) []int {
	var ids []int
	for _, id := range s.order {
		ind := s.individuals[id]
		if ind.Active && ind.State == state {
			ids = append(ids, id)
		}
	}
	return ids
}

// ApplyTransition moves an individual from one state to another. It fails
// if the individual is unknown or inactive, if from does not match the
// currently recorded state (stale or duplicate proposal), or if from -> to
// is not an edge of the configured model type.
func (s *Store) ApplyTransition(id int, from, to State, atStep int) error {
	ind, ok := s.individuals[id]
	if !ok {
		return fmt.Errorf("apply transition at step %d: id %d: %w", atStep, id, ErrUnknownIndividual)
	}
	if !ind.Active {
		return &InvalidTransitionError{ID: id, From: from, To: to, Current: ind.State, Model: s.model, Step: atStep}
	}
	if ind.State != from {
		return &InvalidTransitionError{ID: id, From: from, To: to, Current: ind.State, Model: s.model, Step: atStep}
	}
	if !s.model.Permits(from, to) {
		return &InvalidTransitionError{ID: id, From: from, To: to, Current: ind.State, Model: s.model, Step: atStep}
	}
	ind.State = to
	return nil
}

// Deactivate marks an individual as departed at the given step. A second
// deactivation of the same individual fails.
func (s *Store) Deactivate(id, atStep int) error {
	ind, ok := s.individuals[id]
	if !ok {
		return fmt.Errorf("deactivate at step %d: id %d: %w", atStep, id, ErrUnknownIndividual)
	}
	if !ind.Active {
		return &AlreadyInactiveError{ID: id, ExitStep: ind.ExitStep, Step: atStep}
	}
	ind.Active = false
	ind.ExitStep = atStep
	s.activeCount--
	return nil
}

// SnapshotCounts returns aggregate per-state and per-group counts over the
// active population. This is the sole source the flow recorder consumes.
func (s *Store) SnapshotCounts() Counts {
	counts := Counts{
		ByState: make(map[State]int),
		ByGroup: make(map[int]map[State]int),
	}
	for _, id := range s.order {
		ind := s.individuals[id]
		if !ind.Active {
			continue
		}
		counts.Active++
		counts.ByState[ind.State]++
		if counts.ByGroup[ind.Group] == nil {
			counts.ByGroup[ind.Group] = make(map[State]int)
		}
		counts.ByGroup[ind.Group][ind.State]++
	}
	return counts
}
