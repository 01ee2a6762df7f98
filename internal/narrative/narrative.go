// Package narrative is the engine's only external collaborator: an async
// content service that writes market-event flavor, pirate scan reports, and
// encounter outcomes. Flavor calls always have a local fallback; encounter
// outcomes do not, so a failed resolver call surfaces as an error and the
// engine leaves player state untouched.
package narrative

import "context"

type MarketEventRequest struct {
	System  string   `json:"system"`
	Economy string   `json:"economy"`
	Items   []string `json:"items"`
}

type MarketEvent struct {
	Headline string `json:"headline"`
}

type ScanRequest struct {
	PirateName string `json:"pirate_name"`
	ShipType   string `json:"ship_type"`
	Threat     string `json:"threat"`
}

type EncounterRequest struct {
	PirateName  string `json:"pirate_name"`
	ShipType    string `json:"ship_type"`
	Threat      string `json:"threat"`
	Action      string `json:"action"`
	Security    string `json:"security"`
	WeaponLevel int    `json:"weapon_level"`
	ShieldLevel int    `json:"shield_level"`
	SensorLevel int    `json:"sensor_level"`
	NetWorth    int64  `json:"net_worth"`
	CargoUsed   int    `json:"cargo_used"`
}

const (
	ResultVictory = "victory"
	ResultDefeat  = "defeat"
	ResultEscaped = "escaped"
	ResultBribed  = "bribed"
)

type EncounterOutcome struct {
	Result      string `json:"result"`
	CreditsLost int64  `json:"credits_lost"`
	CargoLost   int    `json:"cargo_lost"`
	DamageTaken int    `json:"damage_taken"`
	Story       string `json:"story,omitempty"`
}

type Service interface {
	MarketEvent(ctx context.Context, req MarketEventRequest) (MarketEvent, error)
	ScanReport(ctx context.Context, req ScanRequest) (string, error)
	ResolveEncounter(ctx context.Context, req EncounterRequest) (EncounterOutcome, error)
}

// Fallback wraps a primary service with a backup for the non-critical
// flavor calls. Encounter resolution deliberately does not fall back.
type Fallback struct {
	Primary Service
	Backup  Service
}

func (f Fallback) MarketEvent(ctx context.Context, req MarketEventRequest) (MarketEvent, error) {
	ev, err := f.Primary.MarketEvent(ctx, req)
	if err != nil {
		return f.Backup.MarketEvent(ctx, req)
	}
	return ev, nil
}

func (f Fallback) ScanReport(ctx context.Context, req ScanRequest) (string, error) {
	report, err := f.Primary.ScanReport(ctx, req)
	if err != nil {
		return f.Backup.ScanReport(ctx, req)
	}
	return report, nil
}

func (f Fallback) ResolveEncounter(ctx context.Context, req EncounterRequest) (EncounterOutcome, error) {
	return f.Primary.ResolveEncounter(ctx, req)
}
