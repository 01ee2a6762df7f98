package game

import (
	"math"
	"math/rand"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
)

// Price computes a commodity's market price. Supply at or below zero is a
// data error upstream; it is clamped to 1 rather than dividing by zero.
func Price(base int64, supply, demand int, multiplier float64) int64 {
	if supply <= 0 {
		supply = 1
	}
	if demand < 0 {
		demand = 0
	}
	return int64(math.Round(float64(base) * multiplier * math.Sqrt(float64(demand)/float64(supply))))
}

// GenerateMarket rolls a fresh market snapshot for a system. Prices are
// regenerated from the system's archetype, not carried over from the
// previous system.
func GenerateMarket(cat *catalog.Catalog, sys catalog.System, rng *rand.Rand) []MarketItem {
	out := make([]MarketItem, 0, len(cat.Commodities))
	for _, c := range cat.Commodities {
		mult := cat.EconomyMultiplier(sys.Economy, c.Category)
		producer := mult < 1.0

		chance := 0.55
		if producer {
			chance = 0.9
		}
		if c.Illegal {
			switch sys.Security {
			case catalog.SecurityAnarchy:
				chance *= 0.9
			case catalog.SecurityLow:
				chance *= 0.45
			default:
				continue
			}
		}
		switch {
		case sys.Zone == catalog.ZoneMining && c.Category == "minerals":
			chance = math.Min(1, chance+0.25)
		case sys.Zone == catalog.ZoneRuins && c.Grade == catalog.GradeUltraRare:
			chance *= 0.05
		case sys.Zone == catalog.ZoneTrade:
			chance = math.Min(1, chance+0.1)
		}
		if rng.Float64() >= chance {
			continue
		}

		var supply, demand int
		if producer {
			supply = 80 + rng.Intn(121)
			demand = 10 + rng.Intn(81)
		} else {
			supply = 10 + rng.Intn(81)
			demand = 80 + rng.Intn(121)
		}

		out = append(out, MarketItem{
			Name:   c.Name,
			Price:  Price(c.BasePrice, supply, demand, mult),
			Supply: supply,
			Demand: demand,
		})
	}
	return out
}

func marketItem(st *GameState, name string) *MarketItem {
	for i := range st.Market {
		if st.Market[i].Name == name {
			return &st.Market[i]
		}
	}
	return nil
}
