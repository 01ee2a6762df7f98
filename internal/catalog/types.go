package catalog

import "time"

type Grade string

const (
	GradeCommon    Grade = "common"
	GradeRare      Grade = "rare"
	GradeUltraRare Grade = "ultra_rare"
)

type Security string

const (
	SecurityAnarchy Security = "anarchy"
	SecurityLow     Security = "low"
	SecurityMedium  Security = "medium"
	SecurityHigh    Security = "high"
)

type Zone string

const (
	ZoneCore     Zone = "core"
	ZoneFrontier Zone = "frontier"
	ZoneMining   Zone = "mining"
	ZoneRuins    Zone = "ruins"
	ZoneTrade    Zone = "trade"
	ZoneDefault  Zone = "default"
)

type Threat string

const (
	ThreatLow      Threat = "low"
	ThreatMedium   Threat = "medium"
	ThreatHigh     Threat = "high"
	ThreatCritical Threat = "critical"
)

var Threats = []Threat{ThreatLow, ThreatMedium, ThreatHigh, ThreatCritical}

type Commodity struct {
	Name           string `yaml:"name"`
	Category       string `yaml:"category"`
	Grade          Grade  `yaml:"grade"`
	BasePrice      int64  `yaml:"base_price"`
	CargoFootprint int    `yaml:"cargo_footprint"`
	Illegal        bool   `yaml:"illegal"`
}

type System struct {
	Name     string   `yaml:"name"`
	X        float64  `yaml:"x"`
	Y        float64  `yaml:"y"`
	Security Security `yaml:"security"`
	Economy  string   `yaml:"economy"`
	Zone     Zone     `yaml:"zone"`
}

type Ship struct {
	Name          string   `yaml:"name"`
	Type          string   `yaml:"type"`
	CargoCapacity int      `yaml:"cargo_capacity"`
	MaxHealth     int      `yaml:"max_health"`
	FuelLevel     int      `yaml:"fuel_level"`
	WeaponLevel   int      `yaml:"weapon_level"`
	ShieldLevel   int      `yaml:"shield_level"`
	HullLevel     int      `yaml:"hull_level"`
	SensorLevel   int      `yaml:"sensor_level"`
	DroneLevel    int      `yaml:"drone_level"`
	Modules       []string `yaml:"modules"`
	Price         int64    `yaml:"price"`
}

type Venture struct {
	Key         string           `yaml:"key"`
	DisplayName string           `yaml:"display_name"`
	BaseClick   int64            `yaml:"base_click"`
	BotCap      int              `yaml:"bot_cap"`
	ThemeIncome map[string]int64 `yaml:"theme_income"`
	TierCosts   []int64          `yaml:"tier_costs"`
}

type ShipRequirements struct {
	MinCargo  int      `yaml:"min_cargo"`
	MinFuel   int      `yaml:"min_fuel"`
	MinWeapon int      `yaml:"min_weapon"`
	MinHull   int      `yaml:"min_hull"`
	MinDrone  int      `yaml:"min_drone"`
	Modules   []string `yaml:"modules"`
}

type MissionTemplate struct {
	Kind           string           `yaml:"kind"`
	Description    string           `yaml:"description"`
	Requires       ShipRequirements `yaml:"requires"`
	Risk           Threat           `yaml:"risk"`
	BasePayout     int64            `yaml:"base_payout"`
	MinDurationSec int              `yaml:"min_duration_sec"`
	MaxDurationSec int              `yaml:"max_duration_sec"`
}

func (t MissionTemplate) MinDuration() time.Duration {
	return time.Duration(t.MinDurationSec) * time.Second
}

func (t MissionTemplate) MaxDuration() time.Duration {
	return time.Duration(t.MaxDurationSec) * time.Second
}

type ObjectiveTask struct {
	Action string `yaml:"action"`
	Target int    `yaml:"target"`
}

type ObjectiveTemplate struct {
	Title        string          `yaml:"title"`
	Tasks        []ObjectiveTask `yaml:"tasks"`
	Reward       int64           `yaml:"reward"`
	TimeLimitSec int             `yaml:"time_limit_sec"`
}

func (t ObjectiveTemplate) TimeLimit() time.Duration {
	return time.Duration(t.TimeLimitSec) * time.Second
}

type PiratePool struct {
	Threat    Threat   `yaml:"threat"`
	Names     []string `yaml:"names"`
	ShipTypes []string `yaml:"ship_types"`
}
