package transition

import (
	"math"

	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// InfectionModule proposes susceptible -> infected transitions. For every
// active susceptible it draws one Bernoulli trial per step with hazard
//
//	1 - (1 - infProb)^(actsPerStep * infectedPartnerFraction)
//
// where the partner fraction counts opposite-group partners in two-group
// models and the act rate is the step's balanced rate for the
// susceptible's own group.
type InfectionModule struct{}

// NewInfectionModule creates the infection module
func NewInfectionModule() *InfectionModule {
	return &InfectionModule{}
}

func (m *InfectionModule) Name() string {
	return "infection"
}

func (m *InfectionModule) Propose(snap Snapshot, net Contacts, params *Params, step int, rng *utils.RandSource) (*Proposals, error) {
	props := &Proposals{}
	actRates := BalancedActRates(params, snap.SnapshotCounts())

	for _, id := range snap.ActiveIDsInState(population.Susceptible) {
		ind, ok := snap.Get(id)
		if !ok {
			continue
		}

		partners := net.PartnersOf(id)
		relevant, infected := 0, 0
		for _, p := range partners {
			if params.Groups == 2 {
				partner, ok := snap.Get(p)
				if !ok || partner.Group == ind.Group {
					continue
				}
			}
			relevant++
			if state, ok := snap.StateOf(p); ok && state == population.Infected {
				infected++
			}
		}
		if relevant == 0 || infected == 0 {
			continue
		}

		fraction := float64(infected) / float64(relevant)
		acts := params.PerStep(actRates[ind.Group])
		infProb := params.ForGroup(ind.Group).InfProb
		hazard := 1 - math.Pow(1-infProb, acts*fraction)

		if rng.BernoulliBool(hazard) {
			props.Transitions = append(props.Transitions, StateChange{
				ID:   id,
				From: population.Susceptible,
				To:   population.Infected,
			})
			props.Flows.Infections++
		}
	}
	return props, nil
}
