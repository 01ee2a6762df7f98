// Package persist stores the whole game as one opaque blob. The engine
// never issues per-field updates; a save is an atomic snapshot and a load
// is decode-then-repair, so a blob from an older build still comes up
// inside the invariants.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/game"
)

var (
	ErrNoSave        = errors.New("no save found")
	ErrMalformedSave = errors.New("save blob is malformed")
)

// Store is a save slot. Save overwrites the slot wholesale.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Close()
}

func Encode(st game.GameState) ([]byte, error) {
	blob, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encode save: %w", err)
	}
	return blob, nil
}

// Decode parses a save blob and normalizes the result. Fields a newer build
// added decode to their zero values and get repaired; a blob that is not
// valid JSON at all is reported as ErrMalformedSave.
func Decode(cat *catalog.Catalog, blob []byte, now time.Time) (game.GameState, error) {
	var st game.GameState
	if err := json.Unmarshal(blob, &st); err != nil {
		return game.GameState{}, fmt.Errorf("%w: %v", ErrMalformedSave, err)
	}
	return game.Normalize(cat, st, now), nil
}
