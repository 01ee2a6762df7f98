package game

import (
	"log/slog"
	"sync"
	"time"
)

// Reducer is a pure state transition. It receives its own copy of the
// current state and returns the next one; on error the store keeps the
// previous snapshot untouched.
type Reducer func(GameState) (GameState, error)

// Store serializes every mutation of the single authoritative GameState.
// Timers and intent handlers all commit through Apply, so concurrent ticks
// can never lose each other's writes by closing over a stale snapshot.
type Store struct {
	mu       sync.Mutex
	state    GameState
	log      *slog.Logger
	watchers []chan GameState
}

func NewStore(initial GameState, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{state: initial, log: logger}
}

func (s *Store) Snapshot() GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Apply(r Reducer) (GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := r(s.state.Clone())
	if err != nil {
		return s.state.Clone(), err
	}
	next.UpdatedAt = time.Now().UTC()
	s.state = next

	snap := next.Clone()
	for _, w := range s.watchers {
		select {
		case w <- snap:
		default:
			// Slow watcher; it re-snapshots on its next read anyway.
		}
	}
	return snap, nil
}

// Watch returns a channel fed a snapshot after every settled change.
// Delivery is best-effort: a full buffer drops the notification.
func (s *Store) Watch(buffer int) <-chan GameState {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan GameState, buffer)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()
	return ch
}
