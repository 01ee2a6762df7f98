package game

import "github.com/Hudmebac/heggiegame-sub000/internal/catalog"

// UsedCargo recomputes hold usage from the inventory and the catalog. It is
// the single authority on cargo accounting; callers never adjust usage
// incrementally.
func UsedCargo(cat *catalog.Catalog, inventory []InventoryItem) int {
	used, _ := usedCargo(cat, inventory)
	return used
}

// usedCargo also reports inventory lines with no catalog entry. Those are
// data errors: they contribute zero space and get logged by the engine, not
// crashed on.
func usedCargo(cat *catalog.Catalog, inventory []InventoryItem) (int, []string) {
	var used int
	var missing []string
	for _, line := range inventory {
		item, ok := cat.Commodity(line.Name)
		if !ok {
			missing = append(missing, line.Name)
			continue
		}
		used += item.CargoFootprint * line.Owned
	}
	return used, missing
}

func ownedQuantity(inventory []InventoryItem, name string) int {
	for _, line := range inventory {
		if line.Name == name {
			return line.Owned
		}
	}
	return 0
}

// adjustInventory applies a quantity delta, dropping the line entirely when
// it reaches zero.
func adjustInventory(inventory []InventoryItem, name string, delta int) []InventoryItem {
	for i := range inventory {
		if inventory[i].Name != name {
			continue
		}
		inventory[i].Owned += delta
		if inventory[i].Owned <= 0 {
			return append(inventory[:i], inventory[i+1:]...)
		}
		return inventory
	}
	if delta > 0 {
		inventory = append(inventory, InventoryItem{Name: name, Owned: delta})
	}
	return inventory
}
