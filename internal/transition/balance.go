package transition

import "github.com/epinetics/netsim-core/internal/population"

// BalancedActRates returns the effective per-unit-time act rate for every
// group at the current step. In a two-group model one group's rate is
// authoritative and the other's is derived so that total contact-acts are
// equal across groups:
//
//	otherRate = authoritativeRate * authoritativeSize / otherSize
//
// Group sizes come from the live snapshot, never from cached values, since
// demography changes them between steps.
func BalancedActRates(p *Params, counts population.Counts) map[int]float64 {
	rates := make(map[int]float64, p.Groups)
	if p.Groups == 1 || p.BalanceGroup == 0 {
		rates[1] = p.Group[1].ActRate
		return rates
	}

	auth := p.BalanceGroup
	other := OppositeGroup(auth)
	authRate := p.Group[auth].ActRate
	rates[auth] = authRate

	otherSize := counts.GroupSize(other)
	if otherSize == 0 {
		rates[other] = 0
		return rates
	}
	rates[other] = authRate * float64(counts.GroupSize(auth)) / float64(otherSize)
	return rates
}
