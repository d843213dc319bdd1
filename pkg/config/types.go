// Package config defines the simulation scenario: model selection,
// epidemic parameters, initial conditions, network dynamics and run
// control. Every scenario is fully validated before the first step runs;
// a bad parameter is a construction-time ParameterError, never a mid-run
// failure.
package config

// Config is a complete simulation scenario
type Config struct {
	LogLevel string      `yaml:"log_level"`
	Model    ModelSpec   `yaml:"model"`
	Params   ParamsSpec  `yaml:"params"`
	Init     InitSpec    `yaml:"init"`
	Network  NetworkSpec `yaml:"network"`
	Control  ControlSpec `yaml:"control"`
}

// ModelSpec selects the disease model
type ModelSpec struct {
	// Type is one of SI, SIR, SIS
	Type string `yaml:"type"`

	// Groups is the number of mixing groups, 1 or 2. Two-group models mix
	// bipartitely: contacts only form across groups.
	Groups int `yaml:"groups"`
}

// GroupRatesSpec carries the per-unit-time rates of one group. Pointer
// fields distinguish "unset" from zero, which matters for required-field
// validation and for arrival-rate allocation.
type GroupRatesSpec struct {
	// InfProb is the per-act transmission probability for susceptibles in
	// this group
	InfProb *float64 `yaml:"inf_prob"`

	// ActRate is the number of contact acts per partnership per unit time.
	// In a balanced two-group model only the authoritative group sets it.
	ActRate *float64 `yaml:"act_rate,omitempty"`

	// RecRate is the recovery hazard; required for SIR and SIS, invalid
	// for SI
	RecRate *float64 `yaml:"rec_rate,omitempty"`

	// ArrivalRate is the per-capita entry rate. Leaving it unset on one
	// group of a two-group model routes that group's arrivals through the
	// allocation policy.
	ArrivalRate *float64 `yaml:"arrival_rate,omitempty"`

	// Exit hazards by disease state: background for susceptible and
	// recovered, disease-induced for infected
	ExitRateS *float64 `yaml:"exit_rate_s,omitempty"`
	ExitRateI *float64 `yaml:"exit_rate_i,omitempty"`
	ExitRateR *float64 `yaml:"exit_rate_r,omitempty"`
}

// ParamsSpec is the full epidemic parameter set
type ParamsSpec struct {
	Group1 GroupRatesSpec  `yaml:"group1"`
	Group2 *GroupRatesSpec `yaml:"group2,omitempty"`

	// Balance names the authoritative group for act-rate balancing in
	// two-group models: "group1" (default) or "group2"
	Balance string `yaml:"balance,omitempty"`

	// Allocation selects the between-group arrival split for groups
	// without their own arrival rate: "proportional" (default) or "mirror"
	Allocation string `yaml:"allocation,omitempty"`
}

// InitCountsSpec is the initial compartment census of one group
type InitCountsSpec struct {
	Susceptible int `yaml:"susceptible"`
	Infected    int `yaml:"infected"`
	Recovered   int `yaml:"recovered,omitempty"`
}

// Total returns the initial size of the group
func (c InitCountsSpec) Total() int {
	return c.Susceptible + c.Infected + c.Recovered
}

// InitSpec is the initial population census
type InitSpec struct {
	Group1 InitCountsSpec  `yaml:"group1"`
	Group2 *InitCountsSpec `yaml:"group2,omitempty"`
}

// NetworkSpec configures the initial network and its relational dynamics
type NetworkSpec struct {
	// MeanDegree is the target mean degree of the initial Bernoulli random
	// graph
	MeanDegree float64 `yaml:"mean_degree"`

	// FormationProb is the per-step edge formation probability, applied
	// independently to every eligible unpartnered dyad
	FormationProb float64 `yaml:"formation_prob"`

	// DissolutionProb is the per-step dissolution probability, applied
	// independently to every existing edge
	DissolutionProb float64 `yaml:"dissolution_prob"`
}

// ControlSpec configures the run horizon and replication
type ControlSpec struct {
	// Steps is the number of time steps per run
	Steps int `yaml:"steps"`

	// StepsPerUnit is the sub-step granularity: per-unit-time rates are
	// divided by it to obtain per-step hazards. Defaults to 1.
	StepsPerUnit float64 `yaml:"steps_per_unit,omitempty"`

	// Runs is the number of independent replicate runs. Defaults to 1.
	Runs int `yaml:"runs,omitempty"`

	// Seed is the base random seed; run i uses Seed+i. Zero draws a seed
	// from the clock.
	Seed int64 `yaml:"seed,omitempty"`

	// MaxParallel bounds concurrent replicate runs. Defaults to 1.
	MaxParallel int `yaml:"max_parallel,omitempty"`
}

// ApplyDefaults fills optional control fields
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Model.Groups == 0 {
		c.Model.Groups = 1
	}
	if c.Control.StepsPerUnit == 0 {
		c.Control.StepsPerUnit = 1
	}
	if c.Control.Runs == 0 {
		c.Control.Runs = 1
	}
	if c.Control.MaxParallel == 0 {
		c.Control.MaxParallel = 1
	}
	if c.Model.Groups == 2 && c.Params.Balance == "" {
		c.Params.Balance = "group1"
	}
	if c.Params.Allocation == "" {
		c.Params.Allocation = "proportional"
	}
}
