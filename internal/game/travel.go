package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/google/uuid"
)

type TravelPlan struct {
	Destination string  `json:"destination"`
	Distance    float64 `json:"distance"`
	FuelCost    int     `json:"fuel_cost"`
}

// PlanTravel prices a jump without charging for it. An engineer trims fuel
// burn; a battered hull raises it.
func PlanTravel(cat *catalog.Catalog, st GameState, dest string) (TravelPlan, error) {
	if st.GameOver {
		return TravelPlan{}, ErrGameOver
	}
	target, ok := cat.System(dest)
	if !ok {
		return TravelPlan{}, fmt.Errorf("%w: %s", ErrUnknownSystem, dest)
	}
	if dest == st.Player.CurrentSystem {
		return TravelPlan{}, fmt.Errorf("already docked at %s", dest)
	}
	origin := systemOf(cat, st.Player.CurrentSystem)

	dist := math.Hypot(target.X-origin.X, target.Y-origin.Y)
	cost := float64(dist) / 5
	if st.Player.HasCrewRole(RoleEngineer) {
		cost *= 0.95
	}
	if ship := st.Player.ActiveShip(); ship != nil && ship.MaxHealth > 0 && ship.Health*2 < ship.MaxHealth {
		cost *= 1.25
	}
	fuelCost := int(math.Round(cost))

	plan := TravelPlan{Destination: dest, Distance: dist, FuelCost: fuelCost}
	if fuelCost > st.Player.Fuel {
		return plan, fmt.Errorf("%w: you need %d more fuel", ErrInsufficientFuel, fuelCost-st.Player.Fuel)
	}
	return plan, nil
}

func encounterBaseChance(sec catalog.Security) float64 {
	switch sec {
	case catalog.SecurityAnarchy:
		return 0.4
	case catalog.SecurityLow:
		return 0.2
	case catalog.SecurityMedium:
		return 0.05
	default:
		return 0.0
	}
}

// applyTravel commits a planned jump: burns fuel, rolls the encounter,
// regenerates the destination market, and appends the new prices to each
// commodity's bounded history.
func applyTravel(cat *catalog.Catalog, st GameState, dest string, rng *rand.Rand) (GameState, error) {
	if st.Player.Encounter != nil {
		return st, ErrEncounterPending
	}
	plan, err := PlanTravel(cat, st, dest)
	if err != nil {
		return st, err
	}
	target, _ := cat.System(dest)

	st.Player.Fuel = clampInt(st.Player.Fuel-plan.FuelCost, 0, st.Player.MaxFuel)

	chance := encounterBaseChance(target.Security) + st.Player.PirateRisk
	ambushed := rng.Float64() < chance
	if ambushed {
		pirate := spawnPirate(cat, rng, st.Player.HasCrewRole(RoleNavigator), "")
		st.Player.Encounter = &pirate
		st.Player.PirateRisk = 0
	} else {
		st.Player.PirateRisk = clampFloat(st.Player.PirateRisk-0.05, 0, MaxPirateRisk)
	}

	st.Market = GenerateMarket(cat, target, rng)
	for _, item := range st.Market {
		st.PriceHistory[item.Name] = appendBounded(st.PriceHistory[item.Name], item.Price, PriceHistoryDepth)
	}
	st.Player.CurrentSystem = dest
	st.MarketEvent = ""
	return st, nil
}

// spawnPirate draws a hostile from the catalog pools. A navigator skews the
// threat distribution toward the shallow end; otherwise it is uniform.
func spawnPirate(cat *catalog.Catalog, rng *rand.Rand, navigator bool, missionID string) Pirate {
	tiers := catalog.Threats
	var tier catalog.Threat
	if navigator {
		roll := rng.Float64()
		switch {
		case roll < 0.4:
			tier = tiers[0]
		case roll < 0.7:
			tier = tiers[1]
		case roll < 0.9:
			tier = tiers[2]
		default:
			tier = tiers[3]
		}
	} else {
		tier = tiers[rng.Intn(len(tiers))]
	}

	pirate := Pirate{
		ID:        uuid.NewString(),
		Name:      "Unknown Raider",
		ShipType:  "unidentified vessel",
		Threat:    tier,
		MissionID: missionID,
	}
	if pool, ok := cat.PiratePool(tier); ok {
		if len(pool.Names) > 0 {
			pirate.Name = pool.Names[rng.Intn(len(pool.Names))]
		}
		if len(pool.ShipTypes) > 0 {
			pirate.ShipType = pool.ShipTypes[rng.Intn(len(pool.ShipTypes))]
		}
	}
	return pirate
}
