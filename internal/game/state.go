package game

import (
	"math/rand"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
)

type Venture string

const (
	VentureBar          Venture = "bar"
	VentureResidence    Venture = "residence"
	VentureCommerce     Venture = "commerce"
	VentureIndustry     Venture = "industry"
	VentureConstruction Venture = "construction"
	VentureRecreation   Venture = "recreation"
	VentureBank         Venture = "bank"
)

var AllVentures = []Venture{
	VentureBar, VentureResidence, VentureCommerce, VentureIndustry,
	VentureConstruction, VentureRecreation, VentureBank,
}

type MissionKind string

const (
	MissionTrade      MissionKind = "trade"
	MissionTaxi       MissionKind = "taxi"
	MissionMilitary   MissionKind = "military"
	MissionDiplomatic MissionKind = "diplomatic"
)

var AllMissionKinds = []MissionKind{MissionTrade, MissionTaxi, MissionMilitary, MissionDiplomatic}

type MissionStatus string

const (
	StatusAvailable MissionStatus = "available"
	StatusActive    MissionStatus = "active"
	StatusCompleted MissionStatus = "completed"
)

const (
	MaxEstablishmentLevel = 5
	MaxReputation         = 100
	MaxPirateRisk         = 0.5
	PriceHistoryDepth     = 20
)

type InventoryItem struct {
	Name  string `json:"name"`
	Owned int    `json:"owned"`
}

type MarketItem struct {
	Name   string `json:"name"`
	Price  int64  `json:"price"`
	Supply int    `json:"supply"`
	Demand int    `json:"demand"`
}

type Ship struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	CargoCapacity int      `json:"cargo_capacity"`
	Health        int      `json:"health"`
	MaxHealth     int      `json:"max_health"`
	FuelLevel     int      `json:"fuel_level"`
	WeaponLevel   int      `json:"weapon_level"`
	ShieldLevel   int      `json:"shield_level"`
	HullLevel     int      `json:"hull_level"`
	SensorLevel   int      `json:"sensor_level"`
	DroneLevel    int      `json:"drone_level"`
	Modules       []string `json:"modules,omitempty"`
	MissionID     string   `json:"mission_id,omitempty"`
}

func (s Ship) Operational() bool { return s.Health > 0 }

func (s Ship) HasModule(name string) bool {
	for _, m := range s.Modules {
		if m == name {
			return true
		}
	}
	return false
}

type CrewMember struct {
	Name   string `json:"name"`
	Role   string `json:"role"`
	Salary int64  `json:"salary"`
}

const (
	RoleEngineer  = "engineer"
	RoleNavigator = "navigator"
	RoleGunner    = "gunner"
	RoleMedic     = "medic"
)

type Partner struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Investment int64   `json:"investment"`
}

type EstablishmentContract struct {
	MarketValue  int64     `json:"market_value"`
	ValueHistory []int64   `json:"value_history"`
	Partners     []Partner `json:"partners,omitempty"`
}

func (c *EstablishmentContract) PartnerShare() float64 {
	if c == nil {
		return 0
	}
	var total float64
	for _, p := range c.Partners {
		total += p.Percentage
	}
	return total
}

type VentureState struct {
	Level    int                    `json:"level"`
	Bots     int                    `json:"bots"`
	Contract *EstablishmentContract `json:"contract,omitempty"`
}

type Loan struct {
	ID        string    `json:"id"`
	Principal int64     `json:"principal"`
	APR       float64   `json:"apr"`
	TakenAt   time.Time `json:"taken_at"`
}

type ShipRequirements struct {
	MinCargo  int      `json:"min_cargo,omitempty"`
	MinFuel   int      `json:"min_fuel,omitempty"`
	MinWeapon int      `json:"min_weapon,omitempty"`
	MinHull   int      `json:"min_hull,omitempty"`
	MinDrone  int      `json:"min_drone,omitempty"`
	Modules   []string `json:"modules,omitempty"`
}

type Mission struct {
	ID           string           `json:"id"`
	Kind         MissionKind      `json:"kind"`
	Description  string           `json:"description"`
	TargetSystem string           `json:"target_system"`
	Requires     ShipRequirements `json:"requires"`
	Risk         catalog.Threat   `json:"risk"`
	Payout       int64            `json:"payout"`
	Status       MissionStatus    `json:"status"`
	ShipID       string           `json:"ship_id,omitempty"`
	StartedAt    time.Time        `json:"started_at,omitempty"`
	Duration     time.Duration    `json:"duration"`
	Progress     float64          `json:"progress"`
}

type Pirate struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	ShipType   string         `json:"ship_type"`
	Threat     catalog.Threat `json:"threat"`
	ScanReport string         `json:"scan_report,omitempty"`
	MissionID  string         `json:"mission_id,omitempty"`
}

type ObjectiveTask struct {
	Action string `json:"action"`
	Target int    `json:"target"`
	Count  int    `json:"count"`
}

type Objective struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Tasks     []ObjectiveTask `json:"tasks"`
	Reward    int64           `json:"reward"`
	StartedAt time.Time       `json:"started_at"`
	TimeLimit time.Duration   `json:"time_limit"`
}

func (o Objective) Complete() bool {
	for _, t := range o.Tasks {
		if t.Count < t.Target {
			return false
		}
	}
	return len(o.Tasks) > 0
}

func (o Objective) Expired(now time.Time) bool {
	return o.TimeLimit > 0 && now.Sub(o.StartedAt) > o.TimeLimit
}

type PlayerStats struct {
	NetWorth      int64                    `json:"net_worth"`
	Fuel          int                      `json:"fuel"`
	MaxFuel       int                      `json:"max_fuel"`
	Reputation    int                      `json:"reputation"`
	Influence     int                      `json:"influence"`
	PirateRisk    float64                  `json:"pirate_risk"`
	CurrentSystem string                   `json:"current_system"`
	Inventory     []InventoryItem          `json:"inventory"`
	Fleet         []Ship                   `json:"fleet"`
	Crew          []CrewMember             `json:"crew,omitempty"`
	Ventures      map[Venture]VentureState `json:"ventures"`
	Loans         []Loan                   `json:"loans,omitempty"`
	Insured       bool                     `json:"insured"`
	Missions      []Mission                `json:"missions,omitempty"`
	LastMissionGen map[MissionKind]time.Time `json:"last_mission_gen,omitempty"`
	Objectives    []Objective              `json:"objectives,omitempty"`
	Encounter     *Pirate                  `json:"encounter,omitempty"`
	FactionRep    map[string]int           `json:"faction_rep,omitempty"`
	NegativeSince *time.Time               `json:"negative_since,omitempty"`
}

// ActiveShip is the fleet's first entry by convention.
func (p *PlayerStats) ActiveShip() *Ship {
	if len(p.Fleet) == 0 {
		return nil
	}
	return &p.Fleet[0]
}

func (p *PlayerStats) MaxCargo() int {
	if ship := p.ActiveShip(); ship != nil {
		return ship.CargoCapacity
	}
	return 0
}

func (p *PlayerStats) HasCrewRole(role string) bool {
	for _, c := range p.Crew {
		if c.Role == role {
			return true
		}
	}
	return false
}

func (p *PlayerStats) ShipByID(id string) *Ship {
	for i := range p.Fleet {
		if p.Fleet[i].ID == id {
			return &p.Fleet[i]
		}
	}
	return nil
}

type GameState struct {
	Player       PlayerStats        `json:"player"`
	Market       []MarketItem       `json:"market"`
	PriceHistory map[string][]int64 `json:"price_history"`
	MarketEvent  string             `json:"market_event,omitempty"`
	GameOver     bool               `json:"game_over"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Clone deep-copies the state so reducers never share backing arrays with
// the committed snapshot.
func (g GameState) Clone() GameState {
	out := g
	out.Player.Inventory = append([]InventoryItem(nil), g.Player.Inventory...)
	out.Player.Crew = append([]CrewMember(nil), g.Player.Crew...)
	out.Player.Loans = append([]Loan(nil), g.Player.Loans...)
	out.Market = append([]MarketItem(nil), g.Market...)

	out.Player.Fleet = make([]Ship, len(g.Player.Fleet))
	for i, s := range g.Player.Fleet {
		s.Modules = append([]string(nil), s.Modules...)
		out.Player.Fleet[i] = s
	}

	out.Player.Missions = make([]Mission, len(g.Player.Missions))
	for i, m := range g.Player.Missions {
		m.Requires.Modules = append([]string(nil), m.Requires.Modules...)
		out.Player.Missions[i] = m
	}

	out.Player.Objectives = make([]Objective, len(g.Player.Objectives))
	for i, o := range g.Player.Objectives {
		o.Tasks = append([]ObjectiveTask(nil), o.Tasks...)
		out.Player.Objectives[i] = o
	}

	out.Player.Ventures = make(map[Venture]VentureState, len(g.Player.Ventures))
	for k, v := range g.Player.Ventures {
		if v.Contract != nil {
			c := *v.Contract
			c.ValueHistory = append([]int64(nil), v.Contract.ValueHistory...)
			c.Partners = append([]Partner(nil), v.Contract.Partners...)
			v.Contract = &c
		}
		out.Player.Ventures[k] = v
	}

	out.Player.LastMissionGen = make(map[MissionKind]time.Time, len(g.Player.LastMissionGen))
	for k, v := range g.Player.LastMissionGen {
		out.Player.LastMissionGen[k] = v
	}
	out.Player.FactionRep = make(map[string]int, len(g.Player.FactionRep))
	for k, v := range g.Player.FactionRep {
		out.Player.FactionRep[k] = v
	}

	if g.Player.Encounter != nil {
		e := *g.Player.Encounter
		out.Player.Encounter = &e
	}
	if g.Player.NegativeSince != nil {
		t := *g.Player.NegativeSince
		out.Player.NegativeSince = &t
	}

	out.PriceHistory = make(map[string][]int64, len(g.PriceHistory))
	for k, v := range g.PriceHistory {
		out.PriceHistory[k] = append([]int64(nil), v...)
	}
	return out
}

// NewGameState builds the first-run state: starter ship, starting credits,
// and a freshly generated market for the home system.
func NewGameState(cat *catalog.Catalog, rng *rand.Rand, now time.Time) GameState {
	home := cat.Systems[0]

	starter := cat.Ships[0]
	ship := Ship{
		ID:            "ship-1",
		Name:          starter.Name,
		Type:          starter.Type,
		CargoCapacity: starter.CargoCapacity,
		Health:        starter.MaxHealth,
		MaxHealth:     starter.MaxHealth,
		FuelLevel:     starter.FuelLevel,
		WeaponLevel:   starter.WeaponLevel,
		ShieldLevel:   starter.ShieldLevel,
		HullLevel:     starter.HullLevel,
		SensorLevel:   starter.SensorLevel,
		DroneLevel:    starter.DroneLevel,
		Modules:       append([]string(nil), starter.Modules...),
	}

	ventures := make(map[Venture]VentureState, len(AllVentures))
	for _, v := range AllVentures {
		ventures[v] = VentureState{}
	}

	st := GameState{
		Player: PlayerStats{
			NetWorth:       10_000,
			Fuel:           100,
			MaxFuel:        100,
			Reputation:     10,
			CurrentSystem:  home.Name,
			Fleet:          []Ship{ship},
			Ventures:       ventures,
			LastMissionGen: make(map[MissionKind]time.Time),
			FactionRep:     make(map[string]int),
		},
		PriceHistory: make(map[string][]int64),
		UpdatedAt:    now,
	}
	st.Market = GenerateMarket(cat, home, rng)
	for _, item := range st.Market {
		st.PriceHistory[item.Name] = []int64{item.Price}
	}
	for i := 0; i < 2 && i < len(cat.Objectives); i++ {
		st.Player.Objectives = append(st.Player.Objectives, objectiveFromTemplate(cat.Objectives[i], now))
	}
	return st
}

// Normalize repairs a state decoded from a save blob: nil maps, missing
// fleet, and out-of-range values are pulled back inside the invariants.
func Normalize(cat *catalog.Catalog, st GameState, now time.Time) GameState {
	if st.Player.Ventures == nil {
		st.Player.Ventures = make(map[Venture]VentureState)
	}
	for _, v := range AllVentures {
		if _, ok := st.Player.Ventures[v]; !ok {
			st.Player.Ventures[v] = VentureState{}
		}
	}
	if st.Player.LastMissionGen == nil {
		st.Player.LastMissionGen = make(map[MissionKind]time.Time)
	}
	if st.Player.FactionRep == nil {
		st.Player.FactionRep = make(map[string]int)
	}
	if st.PriceHistory == nil {
		st.PriceHistory = make(map[string][]int64)
	}
	if _, ok := cat.System(st.Player.CurrentSystem); !ok {
		st.Player.CurrentSystem = cat.Systems[0].Name
	}
	if len(st.Player.Fleet) == 0 {
		fresh := NewGameState(cat, rand.New(rand.NewSource(now.UnixNano())), now)
		st.Player.Fleet = fresh.Player.Fleet
	}
	if st.Player.MaxFuel <= 0 {
		st.Player.MaxFuel = 100
	}
	st.Player.Fuel = clampInt(st.Player.Fuel, 0, st.Player.MaxFuel)
	st.Player.Reputation = clampInt(st.Player.Reputation, 0, MaxReputation)
	st.Player.PirateRisk = clampFloat(st.Player.PirateRisk, 0, MaxPirateRisk)
	for i := range st.Player.Fleet {
		ship := &st.Player.Fleet[i]
		if ship.MaxHealth <= 0 {
			ship.MaxHealth = 100
		}
		ship.Health = clampInt(ship.Health, 0, ship.MaxHealth)
	}
	return st
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampRep(v int) int { return clampInt(v, 0, MaxReputation) }

func appendBounded(history []int64, v int64, depth int) []int64 {
	history = append(history, v)
	if len(history) > depth {
		history = history[len(history)-depth:]
	}
	return history
}
