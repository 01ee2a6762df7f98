package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/narrative"
)

// Config carries the tunable economy knobs the engine does not derive from
// the catalog.
type Config struct {
	InterestAPR       float64
	UpkeepInterval    time.Duration
	GameOverDebtFloor int64
	GameOverGrace     time.Duration
}

func (c Config) withDefaults() Config {
	if c.InterestAPR <= 0 {
		c.InterestAPR = 0.15
	}
	if c.UpkeepInterval <= 0 {
		c.UpkeepInterval = time.Minute
	}
	if c.GameOverDebtFloor >= 0 {
		c.GameOverDebtFloor = -25_000
	}
	if c.GameOverGrace <= 0 {
		c.GameOverGrace = 10 * time.Minute
	}
	return c
}

// Engine is the single entry point for every player intent and timer tick.
// Each operation builds a pure reducer and commits it through the store, so
// all mutations serialize over one authoritative state.
type Engine struct {
	cat   *catalog.Catalog
	store *Store
	svc   narrative.Service
	log   *slog.Logger
	rng   *rand.Rand
	cfg   Config
}

func NewEngine(cat *catalog.Catalog, store *Store, svc narrative.Service, logger *slog.Logger, seed int64, cfg Config) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cat:   cat,
		store: store,
		svc:   svc,
		log:   logger,
		rng:   rand.New(&lockedSource{src: rand.NewSource(seed).(rand.Source64)}),
		cfg:   cfg.withDefaults(),
	}
}

func (e *Engine) Snapshot() GameState { return e.store.Snapshot() }

func (e *Engine) Watch(buffer int) <-chan GameState { return e.store.Watch(buffer) }

// NewGame discards the current run and starts over.
func (e *Engine) NewGame() GameState {
	st, _ := e.store.Apply(func(GameState) (GameState, error) {
		return NewGameState(e.cat, e.rng, time.Now().UTC()), nil
	})
	return st
}

// Restore replaces the whole run with an imported state, re-normalized so a
// hostile or stale blob cannot smuggle values outside the invariants.
func (e *Engine) Restore(st GameState) GameState {
	next, _ := e.store.Apply(func(GameState) (GameState, error) {
		return Normalize(e.cat, st, time.Now().UTC()), nil
	})
	return next
}

func (e *Engine) Trade(name string, dir TradeDirection, qty int) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyTrade(e.cat, st, name, dir, qty)
	})
}

func (e *Engine) ClickVenture(v Venture) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyVentureClick(e.cat, st, v)
	})
}

func (e *Engine) HireBot(v Venture) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyHireBot(e.cat, st, v)
	})
}

func (e *Engine) PurchaseEstablishment(v Venture) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyPurchaseEstablishment(e.cat, st, v, e.rng)
	})
}

func (e *Engine) ExpandEstablishment(v Venture) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyExpandEstablishment(e.cat, st, v, e.rng)
	})
}

func (e *Engine) SellPartnerStake(v Venture, partner string, stake float64, offer int64) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applySellPartnerStake(st, v, partner, stake, offer)
	})
}

func (e *Engine) Liquidate(v Venture) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyLiquidate(st, v)
	})
}

func (e *Engine) PlanTravel(dest string) (TravelPlan, error) {
	return PlanTravel(e.cat, e.store.Snapshot(), dest)
}

// Travel commits the jump synchronously, then requests market-event flavor
// for the new system in the background. The follow-up write re-checks the
// player is still docked there before attaching the headline.
func (e *Engine) Travel(ctx context.Context, dest string) (GameState, error) {
	st, err := e.store.Apply(func(st GameState) (GameState, error) {
		return applyTravel(e.cat, st, dest, e.rng)
	})
	if err != nil {
		return st, err
	}

	go e.fetchMarketEvent(dest, st)
	return st, nil
}

func (e *Engine) fetchMarketEvent(dest string, st GameState) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	sys := systemOf(e.cat, dest)
	req := narrative.MarketEventRequest{System: sys.Name, Economy: string(sys.Economy)}
	for i, item := range st.Market {
		if i >= 5 {
			break
		}
		req.Items = append(req.Items, item.Name)
	}

	ev, err := e.svc.MarketEvent(ctx, req)
	if err != nil {
		e.log.Warn("market event fetch failed", "system", dest, "err", err)
		return
	}
	_, _ = e.store.Apply(func(st GameState) (GameState, error) {
		if st.Player.CurrentSystem != dest {
			return st, nil
		}
		st.MarketEvent = ev.Headline
		return st, nil
	})
}

// ScanEncounter is the one non-terminal encounter action: it fetches a
// scouting report and attaches it to the pending pirate.
func (e *Engine) ScanEncounter(ctx context.Context) (GameState, error) {
	st := e.store.Snapshot()
	pirate := st.Player.Encounter
	if pirate == nil {
		return st, ErrNoEncounter
	}
	report, err := e.svc.ScanReport(ctx, narrative.ScanRequest{
		PirateName: pirate.Name,
		ShipType:   pirate.ShipType,
		Threat:     string(pirate.Threat),
	})
	if err != nil {
		return st, fmt.Errorf("%w: %v", ErrExternalService, err)
	}
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyScanReport(st, pirate.ID, report)
	})
}

// ResolveEncounter asks the content service to narrate the chosen action,
// then settles the outcome. The resolver call runs outside the store lock;
// if it fails, no state changes and the encounter stays pending.
func (e *Engine) ResolveEncounter(ctx context.Context, action EncounterAction) (GameState, narrative.EncounterOutcome, error) {
	st := e.store.Snapshot()
	req, encounterID, err := encounterRequest(e.cat, st, action)
	if err != nil {
		return st, narrative.EncounterOutcome{}, err
	}

	out, err := e.svc.ResolveEncounter(ctx, req)
	if err != nil {
		return st, narrative.EncounterOutcome{}, fmt.Errorf("%w: %v", ErrExternalService, err)
	}

	next, err := e.store.Apply(func(st GameState) (GameState, error) {
		return applyEncounterOutcome(e.cat, st, encounterID, action, out)
	})
	return next, out, err
}

func (e *Engine) GenerateMissions(kind MissionKind) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyGenerateMissions(e.cat, st, kind, e.rng, time.Now().UTC())
	})
}

func (e *Engine) AcceptMission(missionID string) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyAcceptMission(st, missionID, time.Now().UTC())
	})
}

func (e *Engine) TakeLoan(amount int64) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyTakeLoan(st, amount, e.cfg.InterestAPR, time.Now().UTC())
	})
}

func (e *Engine) RepayLoan(loanID string, amount int64) (GameState, error) {
	return e.store.Apply(func(st GameState) (GameState, error) {
		return applyRepayLoan(st, loanID, amount)
	})
}

func (e *Engine) TickVenture(v Venture) {
	_, err := e.store.Apply(func(st GameState) (GameState, error) {
		return applyVentureTick(e.cat, st, v)
	})
	if err != nil {
		e.log.Error("venture tick failed", "venture", v, "err", err)
	}
}

func (e *Engine) TickMissions() {
	_, err := e.store.Apply(func(st GameState) (GameState, error) {
		return applyMissionTick(e.cat, st, e.rng, time.Now().UTC())
	})
	if err != nil {
		e.log.Error("mission tick failed", "err", err)
	}
}

func (e *Engine) TickUpkeep() {
	_, err := e.store.Apply(func(st GameState) (GameState, error) {
		return applyUpkeepTick(st, e.rng, e.cfg.UpkeepInterval, e.cfg.GameOverDebtFloor, e.cfg.GameOverGrace, time.Now().UTC())
	})
	if err != nil {
		e.log.Error("upkeep tick failed", "err", err)
	}
}

func (e *Engine) SweepObjectives() {
	_, err := e.store.Apply(func(st GameState) (GameState, error) {
		next, expired := applyObjectiveSweep(e.cat, st, e.rng, time.Now().UTC())
		for _, o := range expired {
			e.log.Info("objective expired", "title", o.Title)
		}
		return next, nil
	})
	if err != nil {
		e.log.Error("objective sweep failed", "err", err)
	}
}

// lockedSource makes one shared *rand.Rand safe across the timer goroutines
// and request handlers, the same way the math/rand global source does it.
type lockedSource struct {
	mu  sync.Mutex
	src rand.Source64
}

func (s *lockedSource) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Int63()
}

func (s *lockedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src.Uint64()
}

func (s *lockedSource) Seed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.src.Seed(seed)
}
