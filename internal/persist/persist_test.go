package persist

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/game"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testGameState(t *testing.T) (*catalog.Catalog, game.GameState) {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	st := game.NewGameState(cat, rand.New(rand.NewSource(1)), testEpoch)
	st.Player.NetWorth = 123_456
	st.Player.Inventory = []game.InventoryItem{{Name: "Grain", Owned: 7}}
	return cat, st
}

func TestCodecRoundTrip(t *testing.T) {
	cat, st := testGameState(t)

	blob, err := Encode(st)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(cat, blob, testEpoch)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Player.NetWorth != st.Player.NetWorth {
		t.Fatalf("net worth = %d, want %d", got.Player.NetWorth, st.Player.NetWorth)
	}
	if got.Player.CurrentSystem != st.Player.CurrentSystem {
		t.Fatalf("system = %q, want %q", got.Player.CurrentSystem, st.Player.CurrentSystem)
	}
	if len(got.Player.Inventory) != 1 || got.Player.Inventory[0].Owned != 7 {
		t.Fatalf("inventory = %+v", got.Player.Inventory)
	}
}

func TestDecodeRepairsPartialBlob(t *testing.T) {
	cat, _ := testGameState(t)

	// An older save knows nothing about ventures, missions, or the fleet.
	got, err := Decode(cat, []byte(`{"player":{"net_worth":500,"current_system":"Greenfield"}}`), testEpoch)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Player.NetWorth != 500 {
		t.Fatalf("net worth = %d, want 500", got.Player.NetWorth)
	}
	if len(got.Player.Fleet) == 0 {
		t.Fatalf("missing fleet not repaired")
	}
	if got.Player.Ventures == nil || got.Player.LastMissionGen == nil {
		t.Fatalf("nil maps not repaired")
	}
	if got.Player.MaxFuel <= 0 {
		t.Fatalf("max fuel not repaired")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cat, _ := testGameState(t)
	if _, err := Decode(cat, []byte("not json at all"), testEpoch); !errors.Is(err, ErrMalformedSave) {
		t.Fatalf("err = %v, want ErrMalformedSave", err)
	}
}

func TestShareTokenRoundTrip(t *testing.T) {
	cat, st := testGameState(t)

	blob, err := Encode(st)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	token, err := EncodeToken(blob)
	if err != nil {
		t.Fatalf("encode token: %v", err)
	}
	back, err := DecodeToken(token)
	if err != nil {
		t.Fatalf("decode token: %v", err)
	}
	got, err := Decode(cat, back, testEpoch)
	if err != nil {
		t.Fatalf("decode blob: %v", err)
	}
	if got.Player.NetWorth != st.Player.NetWorth {
		t.Fatalf("round-tripped net worth = %d, want %d", got.Player.NetWorth, st.Player.NetWorth)
	}
}

func TestDecodeTokenRejectsBadInput(t *testing.T) {
	if _, err := DecodeToken("!!! not base64url !!!"); !errors.Is(err, ErrMalformedSave) {
		t.Fatalf("err = %v, want ErrMalformedSave", err)
	}
	if _, err := DecodeToken("YWJjZA"); !errors.Is(err, ErrMalformedSave) {
		t.Fatalf("err = %v, want ErrMalformedSave for non-deflate payload", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(filepath.Join(t.TempDir(), "saves", "slot.json"))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer store.Close()
	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrNoSave) {
		t.Fatalf("err = %v, want ErrNoSave on empty slot", err)
	}

	want := []byte(`{"player":{"net_worth":42}}`)
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(want) {
		t.Fatalf("loaded %q, want %q", got, want)
	}

	// Overwrite wins wholesale.
	next := []byte(`{"player":{"net_worth":43}}`)
	if err := store.Save(ctx, next); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != string(next) {
		t.Fatalf("loaded %q, want %q", got, next)
	}
}
