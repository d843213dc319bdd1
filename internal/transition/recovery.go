package transition

import (
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// RecoveryModule proposes recovery transitions for infected individuals.
// The destination state is a pure function of the model type: recovered
// for SIR (terminal), susceptible for SIS. SI models never construct this
// module.
type RecoveryModule struct{}

// NewRecoveryModule creates the recovery module
func NewRecoveryModule() *RecoveryModule {
	return &RecoveryModule{}
}

func (m *RecoveryModule) Name() string {
	return "recovery"
}

func (m *RecoveryModule) Propose(snap Snapshot, net Contacts, params *Params, step int, rng *utils.RandSource) (*Proposals, error) {
	props := &Proposals{}
	dest, ok := snap.Model().RecoveryDestination()
	if !ok {
		return props, nil
	}

	for _, id := range snap.ActiveIDsInState(population.Infected) {
		ind, ok := snap.Get(id)
		if !ok {
			continue
		}
		hazard := params.PerStep(params.ForGroup(ind.Group).RecRate)
		if rng.BernoulliBool(hazard) {
			props.Transitions = append(props.Transitions, StateChange{
				ID:   id,
				From: population.Infected,
				To:   dest,
			})
			props.Flows.Recoveries++
		}
	}
	return props, nil
}
