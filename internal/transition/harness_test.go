package transition

import (
	"testing"

	"github.com/epinetics/netsim-core/internal/network"
	"github.com/epinetics/netsim-core/internal/population"
	"github.com/epinetics/netsim-core/pkg/utils"
)

// singleGroupParams builds a one-group parameter set with the given rates
func singleGroupParams(model population.ModelType, infProb, actRate, recRate float64) *Params {
	return &Params{
		Model:        model,
		Groups:       1,
		StepsPerUnit: 1,
		Group: [3]GroupParams{
			{},
			{
				InfProb:    infProb,
				ActRate:    actRate,
				HasActRate: true,
				RecRate:    recRate,
				ExitRates:  map[population.State]float64{},
			},
			{},
		},
	}
}

// pair adds two connected individuals and returns their ids
func pair(t *testing.T, store *population.Store, net *network.Network,
	aState, bState population.State) (int, int) {
	t.Helper()
	a := store.Add(aState, 1, 0)
	b := store.Add(bState, 1, 0)
	if err := net.AddVertex(a); err != nil {
		t.Fatal(err)
	}
	if err := net.AddVertex(b); err != nil {
		t.Fatal(err)
	}
	if err := net.AddEdge(a, b); err != nil {
		t.Fatal(err)
	}
	return a, b
}

func testRNG() *utils.RandSource {
	return utils.NewRandSource(12345)
}
