package narrative

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Local is the in-process resolver used when no content service is
// configured, and the fallback for flavor text when one is.
type Local struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewLocal(seed int64) *Local {
	return &Local{rand: rand.New(rand.NewSource(seed))}
}

var eventHeadlines = []string{
	"Dock chatter says %s freight rates are shifting again.",
	"A tariff dispute is rippling through %s markets.",
	"Longshoremen at %s report unusually heavy manifests this week.",
	"Traders at %s are hedging against a rumored shortage.",
}

func (l *Local) MarketEvent(_ context.Context, req MarketEventRequest) (MarketEvent, error) {
	line := eventHeadlines[l.intn(len(eventHeadlines))]
	return MarketEvent{Headline: fmt.Sprintf(line, req.System)}, nil
}

func (l *Local) ScanReport(_ context.Context, req ScanRequest) (string, error) {
	switch req.Threat {
	case "low":
		return fmt.Sprintf("Scan of %s: a %s running cold. Weapons antiquated, hull patched. Little appetite for a real fight.", req.PirateName, req.ShipType), nil
	case "medium":
		return fmt.Sprintf("Scan of %s: a %s with live fire control and partial shielding. Dangerous if given the first shot.", req.PirateName, req.ShipType), nil
	case "high":
		return fmt.Sprintf("Scan of %s: a %s bristling with hardpoints. Military-grade targeting. Engaging is a serious risk.", req.PirateName, req.ShipType), nil
	default:
		return fmt.Sprintf("Scan of %s: a %s returning readings off the known charts. Recommend you do not engage.", req.PirateName, req.ShipType), nil
	}
}

func (l *Local) ResolveEncounter(_ context.Context, req EncounterRequest) (EncounterOutcome, error) {
	tier := threatIndex(req.Threat)
	switch req.Action {
	case "fight":
		winChance := clamp01(0.35 + 0.1*float64(req.WeaponLevel) - 0.18*float64(tier))
		if l.float() < winChance {
			damage := 5 + l.intn(10) - 2*req.ShieldLevel
			if damage < 0 {
				damage = 0
			}
			return EncounterOutcome{
				Result:      ResultVictory,
				DamageTaken: damage,
				Story:       fmt.Sprintf("%s breaks off, venting atmosphere.", req.PirateName),
			}, nil
		}
		return EncounterOutcome{
			Result:      ResultDefeat,
			DamageTaken: 20 + l.intn(25) + 5*tier,
			CreditsLost: fraction(req.NetWorth, 0.05+0.02*float64(tier)),
			CargoLost:   req.CargoUsed / 4,
			Story:       fmt.Sprintf("%s strips your hold before you limp clear.", req.PirateName),
		}, nil

	case "evade":
		escapeChance := clamp01(0.4 + 0.08*float64(req.SensorLevel) - 0.12*float64(tier))
		if l.float() < escapeChance {
			return EncounterOutcome{
				Result: ResultEscaped,
				Story:  "You burn hard and lose them in the debris field.",
			}, nil
		}
		return EncounterOutcome{
			Result:      ResultDefeat,
			DamageTaken: 10 + l.intn(15) + 3*tier,
			CreditsLost: fraction(req.NetWorth, 0.02+0.01*float64(tier)),
			Story:       fmt.Sprintf("%s rakes your engines as you run.", req.PirateName),
		}, nil

	case "bribe":
		cost := fraction(req.NetWorth, 0.03+0.02*float64(tier))
		if cost < 500 {
			cost = 500
		}
		return EncounterOutcome{
			Result:      ResultBribed,
			CreditsLost: cost,
			Story:       fmt.Sprintf("%s takes the credits and waves you through.", req.PirateName),
		}, nil
	}
	return EncounterOutcome{}, fmt.Errorf("unknown encounter action: %s", req.Action)
}

func threatIndex(threat string) int {
	switch threat {
	case "low":
		return 0
	case "medium":
		return 1
	case "high":
		return 2
	default:
		return 3
	}
}

func fraction(v int64, f float64) int64 {
	if v <= 0 {
		return 0
	}
	return int64(float64(v) * f)
}

func clamp01(v float64) float64 {
	if v < 0.05 {
		return 0.05
	}
	if v > 0.95 {
		return 0.95
	}
	return v
}

func (l *Local) float() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rand.Float64()
}

func (l *Local) intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rand.Intn(n)
}
