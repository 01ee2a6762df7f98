// Package catalog holds the immutable reference tables the engine is seeded
// with: commodities, star systems, ships, venture archetypes, economy
// multipliers, mission templates, objectives, and pirate name pools. Tables
// are embedded YAML, parsed once at startup, and never mutated afterwards.
package catalog

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

type Catalog struct {
	Commodities []Commodity
	Systems     []System
	Ships       []Ship
	Ventures    map[string]Venture
	Missions    map[string][]MissionTemplate
	Objectives  []ObjectiveTemplate
	Pirates     []PiratePool

	multipliers map[string]map[string]float64
	commodities map[string]Commodity
	systems     map[string]System
}

func Load() (*Catalog, error) {
	c := &Catalog{
		Ventures:    make(map[string]Venture),
		Missions:    make(map[string][]MissionTemplate),
		multipliers: make(map[string]map[string]float64),
		commodities: make(map[string]Commodity),
		systems:     make(map[string]System),
	}

	if err := readYAML("data/commodities.yaml", &c.Commodities); err != nil {
		return nil, err
	}
	if err := readYAML("data/systems.yaml", &c.Systems); err != nil {
		return nil, err
	}
	if err := readYAML("data/ships.yaml", &c.Ships); err != nil {
		return nil, err
	}
	var ventures []Venture
	if err := readYAML("data/ventures.yaml", &ventures); err != nil {
		return nil, err
	}
	if err := readYAML("data/economy.yaml", &c.multipliers); err != nil {
		return nil, err
	}
	var missions []MissionTemplate
	if err := readYAML("data/missions.yaml", &missions); err != nil {
		return nil, err
	}
	if err := readYAML("data/objectives.yaml", &c.Objectives); err != nil {
		return nil, err
	}
	if err := readYAML("data/pirates.yaml", &c.Pirates); err != nil {
		return nil, err
	}

	for _, v := range ventures {
		c.Ventures[v.Key] = v
	}
	for _, m := range missions {
		c.Missions[m.Kind] = append(c.Missions[m.Kind], m)
	}
	for _, item := range c.Commodities {
		c.commodities[item.Name] = item
	}
	for _, sys := range c.Systems {
		c.systems[sys.Name] = sys
	}

	if len(c.Commodities) == 0 || len(c.Systems) == 0 || len(c.Ships) == 0 {
		return nil, fmt.Errorf("catalog data incomplete")
	}
	return c, nil
}

func (c *Catalog) Commodity(name string) (Commodity, bool) {
	item, ok := c.commodities[name]
	return item, ok
}

func (c *Catalog) System(name string) (System, bool) {
	sys, ok := c.systems[name]
	return sys, ok
}

func (c *Catalog) Venture(key string) (Venture, bool) {
	v, ok := c.Ventures[key]
	return v, ok
}

// EconomyMultiplier returns the price multiplier for a commodity category in
// an economic archetype. Unknown pairs are neutral (1.0).
func (c *Catalog) EconomyMultiplier(economy, category string) float64 {
	if byCat, ok := c.multipliers[economy]; ok {
		if m, ok := byCat[category]; ok && m > 0 {
			return m
		}
	}
	return 1.0
}

// ThemeIncome returns a venture's per-bot income for a zone, falling back to
// the default theme when the zone has no specific entry.
func (c *Catalog) ThemeIncome(venture string, zone Zone) int64 {
	v, ok := c.Ventures[venture]
	if !ok {
		return 0
	}
	if income, ok := v.ThemeIncome[string(zone)]; ok {
		return income
	}
	return v.ThemeIncome[string(ZoneDefault)]
}

func (c *Catalog) PiratePool(threat Threat) (PiratePool, bool) {
	for _, p := range c.Pirates {
		if p.Threat == threat {
			return p, true
		}
	}
	return PiratePool{}, false
}

func readYAML(path string, out any) error {
	raw, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
