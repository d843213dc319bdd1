package population

// State is a disease compartment label
type State string

const (
	// Susceptible individuals can acquire infection from infected partners
	Susceptible State = "s"

	// Infected individuals transmit to susceptible partners
	Infected State = "i"

	// Recovered individuals are immune; only SIR models use this state
	Recovered State = "r"
)

// ModelType selects the permitted disease-state transitions. It is fixed at
// configuration time; the step loop never branches on anything else.
type ModelType string

const (
	// ModelSI permits susceptible -> infected only
	ModelSI ModelType = "SI"

	// ModelSIR permits susceptible -> infected -> recovered, recovery is terminal
	ModelSIR ModelType = "SIR"

	// ModelSIS permits susceptible -> infected -> susceptible, cyclic
	ModelSIS ModelType = "SIS"
)

// Valid reports whether m is one of the supported model types
func (m ModelType) Valid() bool {
	switch m {
	case ModelSI, ModelSIR, ModelSIS:
		return true
	}
	return false
}

// States returns the compartments this model type uses, in reporting order
func (m ModelType) States() []State {
	if m == ModelSIR {
		return []State{Susceptible, Infected, Recovered}
	}
	return []State{Susceptible, Infected}
}

// Permits reports whether the transition from -> to is an edge of this
// model type's state machine.
func (m ModelType) Permits(from, to State) bool {
	switch m {
	case ModelSI:
		return from == Susceptible && to == Infected
	case ModelSIR:
		return (from == Susceptible && to == Infected) ||
			(from == Infected && to == Recovered)
	case ModelSIS:
		return (from == Susceptible && to == Infected) ||
			(from == Infected && to == Susceptible)
	}
	return false
}

// HasRecovery reports whether infected individuals leave the infected state
func (m ModelType) HasRecovery() bool {
	return m == ModelSIR || m == ModelSIS
}

// RecoveryDestination returns the state an infected individual recovers
// into. The destination depends only on the model type, never on
// per-individual history. ok is false for SI, which has no recovery.
func (m ModelType) RecoveryDestination() (State, bool) {
	switch m {
	case ModelSIR:
		return Recovered, true
	case ModelSIS:
		return Susceptible, true
	}
	return "", false
}
