package transition

import (
	"github.com/epinetics/netsim-core/pkg/utils"
)

// DepartureModule proposes deactivations. Every active individual draws
// one Bernoulli trial keyed to the exit hazard of its current state:
// disease-induced mortality for infected, background mortality otherwise.
// Incident-edge dissolution is a required commit-side effect handled by
// the controller.
type DepartureModule struct{}

// NewDepartureModule creates the departure module
func NewDepartureModule() *DepartureModule {
	return &DepartureModule{}
}

func (m *DepartureModule) Name() string {
	return "departure"
}

func (m *DepartureModule) Propose(snap Snapshot, net Contacts, params *Params, step int, rng *utils.RandSource) (*Proposals, error) {
	props := &Proposals{}
	for _, id := range snap.ActiveIDs() {
		ind, ok := snap.Get(id)
		if !ok {
			continue
		}
		rate := params.ForGroup(ind.Group).ExitRates[ind.State]
		if rate <= 0 {
			continue
		}
		if rng.BernoulliBool(params.PerStep(rate)) {
			props.Departures = append(props.Departures, id)
			props.Flows.Departures++
		}
	}
	return props, nil
}
