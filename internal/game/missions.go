package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/google/uuid"
)

const missionGenCooldown = 60 * time.Second

// applyGenerateMissions restocks a kind's board with a fresh batch. The
// board is rate-limited per kind and refuses to restock while the fleet has
// no free operational ship to fly anything.
func applyGenerateMissions(cat *catalog.Catalog, st GameState, kind MissionKind, rng *rand.Rand, now time.Time) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	templates := cat.Missions[string(kind)]
	if len(templates) == 0 {
		return st, fmt.Errorf("%w: no templates for kind %s", ErrMissionNotFound, kind)
	}
	if last, ok := st.Player.LastMissionGen[kind]; ok && now.Sub(last) < missionGenCooldown {
		wait := missionGenCooldown - now.Sub(last)
		return st, fmt.Errorf("%w: try again in %ds", ErrMissionCooldown, int(wait.Seconds())+1)
	}
	if freeShip(st.Player.Fleet) == nil {
		return st, fmt.Errorf("%w: every operational ship is assigned", ErrAssetUnavailable)
	}

	// A new batch replaces whatever unclaimed offers were left on the board.
	kept := st.Player.Missions[:0]
	for _, m := range st.Player.Missions {
		if m.Kind == kind && m.Status == StatusAvailable {
			continue
		}
		kept = append(kept, m)
	}
	st.Player.Missions = kept

	count := 4 + rng.Intn(2)
	for i := 0; i < count; i++ {
		tpl := templates[rng.Intn(len(templates))]
		target := cat.Systems[rng.Intn(len(cat.Systems))].Name

		spread := tpl.MaxDurationSec - tpl.MinDurationSec
		durationSec := tpl.MinDurationSec
		if spread > 0 {
			durationSec += rng.Intn(spread + 1)
		}

		payout := int64(float64(tpl.BasePayout) * (1 + float64(st.Player.Reputation)/150))

		st.Player.Missions = append(st.Player.Missions, Mission{
			ID:           uuid.NewString(),
			Kind:         kind,
			Description:  tpl.Description,
			TargetSystem: target,
			Requires: ShipRequirements{
				MinCargo:  tpl.Requires.MinCargo,
				MinFuel:   tpl.Requires.MinFuel,
				MinWeapon: tpl.Requires.MinWeapon,
				MinHull:   tpl.Requires.MinHull,
				MinDrone:  tpl.Requires.MinDrone,
				Modules:   append([]string(nil), tpl.Requires.Modules...),
			},
			Risk:     tpl.Risk,
			Payout:   payout,
			Status:   StatusAvailable,
			Duration: time.Duration(durationSec) * time.Second,
		})
	}
	st.Player.LastMissionGen[kind] = now
	return st, nil
}

// applyAcceptMission binds the best qualifying free ship to an available
// mission. When nothing qualifies the rejection names what the closest
// candidate is missing.
func applyAcceptMission(st GameState, missionID string, now time.Time) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	mission := missionByID(&st, missionID)
	if mission == nil {
		return st, fmt.Errorf("%w: %s", ErrMissionNotFound, missionID)
	}
	if mission.Status != StatusAvailable {
		return st, fmt.Errorf("%w: mission is %s", ErrMissionNotFound, mission.Status)
	}

	var best *Ship
	var bestUnmet []string
	for i := range st.Player.Fleet {
		ship := &st.Player.Fleet[i]
		if !ship.Operational() || ship.MissionID != "" {
			continue
		}
		unmet := unmetRequirements(*ship, mission.Requires)
		if len(unmet) == 0 {
			best = ship
			break
		}
		if best == nil || len(unmet) < len(bestUnmet) {
			best = ship
			bestUnmet = unmet
		}
	}
	if best == nil {
		return st, fmt.Errorf("%w: every operational ship is assigned", ErrAssetUnavailable)
	}
	if len(bestUnmet) > 0 {
		return st, fmt.Errorf("%w: %s lacks %s", ErrAssetUnavailable, best.Name, strings.Join(bestUnmet, ", "))
	}

	mission.Status = StatusActive
	mission.ShipID = best.ID
	mission.StartedAt = now
	best.MissionID = mission.ID
	return st, nil
}

// applyMissionTick advances every active mission. Completion is credited
// exactly once; before then each tick rolls an interruption keyed by risk
// tier, but only while no encounter is already pending.
func applyMissionTick(cat *catalog.Catalog, st GameState, rng *rand.Rand, now time.Time) (GameState, error) {
	if st.GameOver {
		return st, nil
	}
	for i := range st.Player.Missions {
		m := &st.Player.Missions[i]
		if m.Status != StatusActive {
			continue
		}
		elapsed := now.Sub(m.StartedAt)
		progress := float64(elapsed) / float64(m.Duration) * 100
		if progress > 100 {
			progress = 100
		}
		m.Progress = progress

		if progress >= 100 {
			m.Status = StatusCompleted
			st.Player.NetWorth += m.Payout
			st.Player.Reputation = clampRep(st.Player.Reputation + 1)
			if ship := st.Player.ShipByID(m.ShipID); ship != nil {
				ship.MissionID = ""
			}
			st = progressObjectives(st, missionAction(m.Kind), 1)
			continue
		}

		if st.Player.Encounter == nil && rng.Float64() < interruptionChance(m.Risk) {
			pirate := spawnPirate(cat, rng, st.Player.HasCrewRole(RoleNavigator), m.ID)
			st.Player.Encounter = &pirate
		}
	}
	return st, nil
}

func interruptionChance(risk catalog.Threat) float64 {
	switch risk {
	case catalog.ThreatLow:
		return 0.003
	case catalog.ThreatMedium:
		return 0.008
	case catalog.ThreatHigh:
		return 0.015
	case catalog.ThreatCritical:
		return 0.03
	}
	return 0
}

// abandonMission drops an interrupted mission without payout and frees its
// ship.
func abandonMission(st GameState, missionID string) GameState {
	kept := st.Player.Missions[:0]
	for _, m := range st.Player.Missions {
		if m.ID == missionID {
			if ship := st.Player.ShipByID(m.ShipID); ship != nil {
				ship.MissionID = ""
			}
			continue
		}
		kept = append(kept, m)
	}
	st.Player.Missions = kept
	return st
}

func missionByID(st *GameState, id string) *Mission {
	for i := range st.Player.Missions {
		if st.Player.Missions[i].ID == id {
			return &st.Player.Missions[i]
		}
	}
	return nil
}

func freeShip(fleet []Ship) *Ship {
	for i := range fleet {
		if fleet[i].Operational() && fleet[i].MissionID == "" {
			return &fleet[i]
		}
	}
	return nil
}

func unmetRequirements(ship Ship, req ShipRequirements) []string {
	var unmet []string
	if ship.CargoCapacity < req.MinCargo {
		unmet = append(unmet, fmt.Sprintf("cargo %d (needs %d)", ship.CargoCapacity, req.MinCargo))
	}
	if ship.FuelLevel < req.MinFuel {
		unmet = append(unmet, fmt.Sprintf("fuel level %d (needs %d)", ship.FuelLevel, req.MinFuel))
	}
	if ship.WeaponLevel < req.MinWeapon {
		unmet = append(unmet, fmt.Sprintf("weapon level %d (needs %d)", ship.WeaponLevel, req.MinWeapon))
	}
	if ship.HullLevel < req.MinHull {
		unmet = append(unmet, fmt.Sprintf("hull level %d (needs %d)", ship.HullLevel, req.MinHull))
	}
	if ship.DroneLevel < req.MinDrone {
		unmet = append(unmet, fmt.Sprintf("drone level %d (needs %d)", ship.DroneLevel, req.MinDrone))
	}
	for _, mod := range req.Modules {
		if !ship.HasModule(mod) {
			unmet = append(unmet, "module "+mod)
		}
	}
	return unmet
}
