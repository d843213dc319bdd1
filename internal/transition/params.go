package transition

import "github.com/epinetics/netsim-core/internal/population"

// GroupParams are the resolved per-unit-time rates for one group
type GroupParams struct {
	// InfProb is the per-act transmission probability for susceptibles in
	// this group
	InfProb float64

	// ActRate is the number of contact acts per partnership per unit time.
	// In a balanced two-group model only the authoritative group carries a
	// configured rate; the other group's is derived each step.
	ActRate    float64
	HasActRate bool

	// RecRate is the per-unit-time recovery hazard
	RecRate float64

	// ArrivalRate is the per-capita per-unit-time entry rate. When
	// HasArrivalRate is false the group's arrivals are allocated from the
	// controlling group instead.
	ArrivalRate    float64
	HasArrivalRate bool

	// ExitRates are per-unit-time exit hazards keyed by disease state
	// (disease-induced hazard for infected, background otherwise)
	ExitRates map[population.State]float64
}

// Params is the validated parameter set the modules draw from. It is built
// once before the first step; nothing mutates it mid-run.
type Params struct {
	Model  population.ModelType
	Groups int

	// Group is indexed by group label (1 or 2); index 0 is unused
	Group [3]GroupParams

	// BalanceGroup is the authoritative group for act-rate balancing in
	// two-group models; 0 for single-group models
	BalanceGroup int

	// StepsPerUnit is the sub-step time granularity: all per-unit-time
	// rates are divided by it to obtain per-step hazards
	StepsPerUnit float64

	// Demography enables the departure and arrival modules
	Demography bool

	// Allocation decides how arrivals are split between groups when a
	// group has no arrival rate of its own
	Allocation Allocation
}

// PerStep converts a per-unit-time rate into a per-step hazard
func (p *Params) PerStep(rate float64) float64 {
	if p.StepsPerUnit <= 0 {
		return rate
	}
	return rate / p.StepsPerUnit
}

// ForGroup returns the parameters of one group
func (p *Params) ForGroup(group int) GroupParams {
	if group < 1 || group > 2 {
		return GroupParams{}
	}
	return p.Group[group]
}

// OppositeGroup returns the other group label of a two-group model
func OppositeGroup(group int) int {
	if group == 1 {
		return 2
	}
	return 1
}
