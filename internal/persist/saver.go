package persist

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/game"
)

// Saver debounces the state change stream into periodic writes. Ticks land
// every second, so writing on every change would hammer the slot; instead
// the latest snapshot wins once the debounce window goes quiet.
type Saver struct {
	store    Store
	log      *slog.Logger
	debounce time.Duration
}

func NewSaver(store Store, logger *slog.Logger, debounce time.Duration) *Saver {
	if logger == nil {
		logger = slog.Default()
	}
	if debounce <= 0 {
		debounce = 3 * time.Second
	}
	return &Saver{store: store, log: logger, debounce: debounce}
}

// Run consumes snapshots until ctx is cancelled, then flushes whatever is
// pending before returning.
func (s *Saver) Run(ctx context.Context, changes <-chan game.GameState) {
	var (
		pending *game.GameState
		timer   = time.NewTimer(s.debounce)
	)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			if pending != nil {
				s.flush(*pending)
			}
			return
		case st := <-changes:
			if pending == nil {
				timer.Reset(s.debounce)
			}
			pending = &st
		case <-timer.C:
			if pending != nil {
				s.flush(*pending)
				pending = nil
			}
		}
	}
}

func (s *Saver) flush(st game.GameState) {
	blob, err := Encode(st)
	if err != nil {
		s.log.Error("encode save failed", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.store.Save(ctx, blob); err != nil {
		s.log.Error("write save failed", "err", err)
		return
	}
	s.log.Debug("save written", "bytes", len(blob))
}
