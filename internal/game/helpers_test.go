package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return cat
}

func testState(t *testing.T) (*catalog.Catalog, GameState) {
	t.Helper()
	cat := testCatalog(t)
	st := NewGameState(cat, rand.New(rand.NewSource(1)), testEpoch)
	return cat, st
}

// fixedMarket pins the market so trade tests do not depend on generation
// rolls.
func fixedMarket(st *GameState) {
	st.Market = []MarketItem{
		{Name: "Grain", Price: 50, Supply: 100, Demand: 100},
		{Name: "Titanium", Price: 300, Supply: 40, Demand: 90},
	}
}
