package game

import (
	"fmt"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/narrative"
)

type EncounterAction string

const (
	ActionFight EncounterAction = "fight"
	ActionEvade EncounterAction = "evade"
	ActionBribe EncounterAction = "bribe"
	ActionScan  EncounterAction = "scan"
)

// applyEncounterOutcome settles a terminal encounter action. The outcome
// has already been produced by the resolver; this reducer re-validates the
// encounter is still the one acted on, then applies losses and clears it.
func applyEncounterOutcome(cat *catalog.Catalog, st GameState, encounterID string, action EncounterAction, out narrative.EncounterOutcome) (GameState, error) {
	pirate := st.Player.Encounter
	if pirate == nil || pirate.ID != encounterID {
		return st, ErrNoEncounter
	}

	creditsLost := out.CreditsLost
	if st.Player.Insured {
		creditsLost /= 2
	}
	st.Player.NetWorth -= creditsLost

	if ship := st.Player.ActiveShip(); ship != nil {
		ship.Health = clampInt(ship.Health-out.DamageTaken, 0, ship.MaxHealth)
	}

	if out.CargoLost > 0 {
		st.Player.Inventory = jettisonCargo(cat, st.Player.Inventory, out.CargoLost)
	}

	sec := systemOf(cat, st.Player.CurrentSystem).Security
	st.Player.Reputation = clampRep(st.Player.Reputation + reputationShift(action, out.Result, sec))

	// A lost fight abandons any mission the pirate interrupted; the ship
	// comes home empty-handed.
	if pirate.MissionID != "" && out.Result == narrative.ResultDefeat {
		st = abandonMission(st, pirate.MissionID)
	}

	st.Player.Encounter = nil
	if action == ActionFight {
		st = progressObjectives(st, ActionCombat, 1)
	}
	return st, nil
}

// reputationShift: winning a fight is worth more where the law is watching;
// bribing always costs standing.
func reputationShift(action EncounterAction, result string, sec catalog.Security) int {
	switch action {
	case ActionFight:
		if result != narrative.ResultVictory {
			return -1
		}
		switch sec {
		case catalog.SecurityHigh:
			return 5
		case catalog.SecurityMedium:
			return 3
		case catalog.SecurityLow:
			return 2
		default:
			return 1
		}
	case ActionEvade:
		if result == narrative.ResultEscaped {
			return 1
		}
		return 0
	case ActionBribe:
		return -2
	}
	return 0
}

// jettisonCargo removes up to `units` of hold space, cheapest lines first,
// then recomputes from the survivors.
func jettisonCargo(cat *catalog.Catalog, inventory []InventoryItem, units int) []InventoryItem {
	for units > 0 && len(inventory) > 0 {
		line := &inventory[0]
		item, ok := cat.Commodity(line.Name)
		footprint := 1
		if ok && item.CargoFootprint > 0 {
			footprint = item.CargoFootprint
		}
		take := units / footprint
		if take < 1 {
			take = 1
		}
		if take >= line.Owned {
			units -= line.Owned * footprint
			inventory = inventory[1:]
			continue
		}
		line.Owned -= take
		units -= take * footprint
	}
	return inventory
}

func applyScanReport(st GameState, encounterID, report string) (GameState, error) {
	pirate := st.Player.Encounter
	if pirate == nil || pirate.ID != encounterID {
		return st, ErrNoEncounter
	}
	pirate.ScanReport = report
	return st, nil
}

func encounterRequest(cat *catalog.Catalog, st GameState, action EncounterAction) (narrative.EncounterRequest, string, error) {
	pirate := st.Player.Encounter
	if pirate == nil {
		return narrative.EncounterRequest{}, "", ErrNoEncounter
	}
	ship := st.Player.ActiveShip()
	if ship == nil {
		return narrative.EncounterRequest{}, "", fmt.Errorf("fleet is empty")
	}
	return narrative.EncounterRequest{
		PirateName:  pirate.Name,
		ShipType:    pirate.ShipType,
		Threat:      string(pirate.Threat),
		Action:      string(action),
		Security:    string(systemOf(cat, st.Player.CurrentSystem).Security),
		WeaponLevel: ship.WeaponLevel,
		ShieldLevel: ship.ShieldLevel,
		SensorLevel: ship.SensorLevel,
		NetWorth:    st.Player.NetWorth,
		CargoUsed:   UsedCargo(cat, st.Player.Inventory),
	}, pirate.ID, nil
}
