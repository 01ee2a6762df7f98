package game

import "testing"

func TestUsedCargoSumsFootprints(t *testing.T) {
	cat := testCatalog(t)
	inv := []InventoryItem{
		{Name: "Grain", Owned: 5},    // footprint 1
		{Name: "Iron Ore", Owned: 2}, // footprint 3
	}
	if got := UsedCargo(cat, inv); got != 11 {
		t.Fatalf("used cargo = %d, want 11", got)
	}
}

func TestUsedCargoIgnoresUnknownLines(t *testing.T) {
	cat := testCatalog(t)
	inv := []InventoryItem{
		{Name: "Grain", Owned: 5},
		{Name: "Not A Thing", Owned: 99},
	}
	used, missing := usedCargo(cat, inv)
	if used != 5 {
		t.Fatalf("used cargo = %d, want 5", used)
	}
	if len(missing) != 1 || missing[0] != "Not A Thing" {
		t.Fatalf("missing = %v, want the unknown line reported", missing)
	}
}

func TestAdjustInventoryDropsZeroLines(t *testing.T) {
	inv := []InventoryItem{{Name: "Grain", Owned: 4}}
	inv = adjustInventory(inv, "Grain", -4)
	if len(inv) != 0 {
		t.Fatalf("inventory = %v, want empty", inv)
	}
}

func TestAdjustInventoryNegativeDeltaOnMissingLine(t *testing.T) {
	inv := adjustInventory(nil, "Grain", -3)
	if len(inv) != 0 {
		t.Fatalf("inventory = %v, want empty", inv)
	}
}
