package game

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler owns the engine's timers: one 1s income timer per venture, a 1s
// mission progress timer, the slow upkeep timer, and the objective sweep.
// Timers run for the life of the process; a venture with no bots simply
// no-ops its tick.
type Scheduler struct {
	engine *Engine
	log    *slog.Logger

	VentureInterval   time.Duration
	MissionInterval   time.Duration
	UpkeepInterval    time.Duration
	ObjectiveInterval time.Duration
}

func NewScheduler(engine *Engine, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		engine:            engine,
		log:               logger,
		VentureInterval:   time.Second,
		MissionInterval:   time.Second,
		UpkeepInterval:    engine.cfg.UpkeepInterval,
		ObjectiveInterval: 5 * time.Second,
	}
}

// Run blocks until ctx is cancelled and every timer goroutine has drained.
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup

	for _, v := range AllVentures {
		v := v
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.loop(ctx, s.VentureInterval, func() { s.engine.TickVenture(v) })
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.MissionInterval, s.engine.TickMissions)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.UpkeepInterval, s.engine.TickUpkeep)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.loop(ctx, s.ObjectiveInterval, s.engine.SweepObjectives)
	}()

	s.log.Info("scheduler started",
		"venture_timers", len(AllVentures),
		"upkeep_interval", s.UpkeepInterval.String())
	<-ctx.Done()
	wg.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, interval time.Duration, tick func()) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			tick()
		}
	}
}
