package game

import (
	"fmt"
	"math"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
)

type TradeDirection string

const (
	Buy  TradeDirection = "buy"
	Sell TradeDirection = "sell"
)

// applyTrade validates and settles a buy/sell intent against the current
// market. All effects land together or not at all: on any rejection the
// caller's state is discarded unchanged.
func applyTrade(cat *catalog.Catalog, st GameState, name string, dir TradeDirection, qty int) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	if qty <= 0 {
		return st, fmt.Errorf("quantity must be > 0")
	}
	item, ok := cat.Commodity(name)
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}
	market := marketItem(&st, name)
	if market == nil {
		return st, fmt.Errorf("%w: %s", ErrUnknownItem, name)
	}

	total := market.Price * int64(qty)

	switch dir {
	case Buy:
		if total > st.Player.NetWorth {
			return st, fmt.Errorf("%w: you need %d more credits", ErrInsufficientFunds, total-st.Player.NetWorth)
		}
		if qty > market.Supply {
			return st, fmt.Errorf("%w: only %d units on the market", ErrInsufficientStock, market.Supply)
		}
		used := UsedCargo(cat, st.Player.Inventory)
		needed := used + item.CargoFootprint*qty
		if needed > st.Player.MaxCargo() {
			return st, fmt.Errorf("%w: %d units over capacity", ErrInsufficientCargo, needed-st.Player.MaxCargo())
		}

		st.Player.NetWorth -= total
		st.Player.Inventory = adjustInventory(st.Player.Inventory, name, qty)
		market.Supply -= qty
		market.Demand += qty / 2

		// Buying graded goods draws attention. One-way ratchet; it only
		// decays on safe arrivals.
		switch item.Grade {
		case catalog.GradeRare:
			st.Player.PirateRisk = clampFloat(st.Player.PirateRisk+0.05, 0, MaxPirateRisk)
		case catalog.GradeUltraRare:
			st.Player.PirateRisk = clampFloat(st.Player.PirateRisk+0.1, 0, MaxPirateRisk)
		}

	case Sell:
		owned := ownedQuantity(st.Player.Inventory, name)
		if qty > owned {
			return st, fmt.Errorf("%w: you own %d of %s", ErrInsufficientInventory, owned, name)
		}
		st.Player.NetWorth += total
		st.Player.Inventory = adjustInventory(st.Player.Inventory, name, -qty)
		market.Supply += qty
		if market.Demand > qty/2 {
			market.Demand -= qty / 2
		}

	default:
		return st, fmt.Errorf("direction must be buy or sell")
	}

	mult := cat.EconomyMultiplier(systemOf(cat, st.Player.CurrentSystem).Economy, item.Category)
	market.Price = Price(item.BasePrice, market.Supply, market.Demand, mult)
	st.PriceHistory[name] = appendBounded(st.PriceHistory[name], market.Price, PriceHistoryDepth)

	repGain := int(math.Round(float64(total) / 5000))
	if repGain < 1 {
		repGain = 1
	}
	st.Player.Reputation = clampRep(st.Player.Reputation + repGain)

	st = progressObjectives(st, ActionTrade, 1)
	return st, nil
}

func systemOf(cat *catalog.Catalog, name string) catalog.System {
	if sys, ok := cat.System(name); ok {
		return sys
	}
	return cat.Systems[0]
}
