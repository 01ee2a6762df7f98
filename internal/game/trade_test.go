package game

import (
	"errors"
	"testing"
)

func TestTradeBuySettlesAtomically(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	st.Player.NetWorth = 10_000

	next, err := applyTrade(cat, st, "Grain", Buy, 10)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if next.Player.NetWorth != 9_500 {
		t.Fatalf("net worth = %d, want 9500", next.Player.NetWorth)
	}
	if got := ownedQuantity(next.Player.Inventory, "Grain"); got != 10 {
		t.Fatalf("owned grain = %d, want 10", got)
	}
	m := marketItem(&next, "Grain")
	if m.Supply != 90 {
		t.Fatalf("supply = %d, want 90", m.Supply)
	}
	if m.Demand != 105 {
		t.Fatalf("demand = %d, want 105", m.Demand)
	}
}

func TestTradeSellRemovesEmptyLine(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	st.Player.Inventory = []InventoryItem{{Name: "Grain", Owned: 10}}

	next, err := applyTrade(cat, st, "Grain", Sell, 10)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	for _, line := range next.Player.Inventory {
		if line.Name == "Grain" {
			t.Fatalf("zero-quantity line should be removed, got %+v", line)
		}
	}
	if next.Player.NetWorth <= st.Player.NetWorth {
		t.Fatalf("sell did not credit proceeds")
	}
}

func TestTradeOverdraftLeavesStateUntouched(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	st.Player.NetWorth = 100
	store := NewStore(st, nil)

	snap, err := store.Apply(func(s GameState) (GameState, error) {
		return applyTrade(cat, s, "Grain", Buy, 10)
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("err = %v, want ErrInsufficientFunds", err)
	}
	if snap.Player.NetWorth != 100 {
		t.Fatalf("net worth = %d, want 100 after rejected buy", snap.Player.NetWorth)
	}
	if len(snap.Player.Inventory) != 0 {
		t.Fatalf("inventory should be empty after rejected buy")
	}
}

func TestTradeBuyRejectedWhenHoldFull(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	st.Player.Fleet[0].CargoCapacity = 5
	before := st.Player.NetWorth

	next, err := applyTrade(cat, st, "Titanium", Buy, 5) // footprint 2, needs 10
	if !errors.Is(err, ErrInsufficientCargo) {
		t.Fatalf("err = %v, want ErrInsufficientCargo", err)
	}
	if next.Player.NetWorth != before {
		t.Fatalf("funds moved on a rejected buy")
	}
}

func TestTradeSellMoreThanOwned(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	st.Player.Inventory = []InventoryItem{{Name: "Grain", Owned: 3}}

	_, err := applyTrade(cat, st, "Grain", Sell, 5)
	if !errors.Is(err, ErrInsufficientInventory) {
		t.Fatalf("err = %v, want ErrInsufficientInventory", err)
	}
}

func TestTradeRareGoodsRatchetPirateRisk(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	st.Player.NetWorth = 100_000

	next, err := applyTrade(cat, st, "Titanium", Buy, 1)
	if err != nil {
		t.Fatalf("buy failed: %v", err)
	}
	if next.Player.PirateRisk != 0.05 {
		t.Fatalf("pirate risk = %v, want 0.05 after rare buy", next.Player.PirateRisk)
	}

	// Selling never lowers it; only safe arrivals do.
	next, err = applyTrade(cat, next, "Titanium", Sell, 1)
	if err != nil {
		t.Fatalf("sell failed: %v", err)
	}
	if next.Player.PirateRisk != 0.05 {
		t.Fatalf("pirate risk = %v, want 0.05 after sell", next.Player.PirateRisk)
	}
}

func TestTradeUnknownCommodity(t *testing.T) {
	cat, st := testState(t)
	fixedMarket(&st)
	if _, err := applyTrade(cat, st, "Moon Cheese", Buy, 1); !errors.Is(err, ErrUnknownItem) {
		t.Fatalf("err = %v, want ErrUnknownItem", err)
	}
}
