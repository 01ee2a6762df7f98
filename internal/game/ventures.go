package game

import (
	"fmt"
	"math/rand"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
)

// ventureIncomePerSecond is the passive rate for one venture:
// bots × themed base income × level, less the slice sold to partners.
func ventureIncomePerSecond(cat *catalog.Catalog, st *GameState, v Venture) int64 {
	vs := st.Player.Ventures[v]
	if vs.Bots <= 0 {
		return 0
	}
	zone := systemOf(cat, st.Player.CurrentSystem).Zone
	theme := cat.ThemeIncome(string(v), zone)
	level := vs.Level
	if level < 1 {
		level = 1
	}
	gross := int64(vs.Bots) * theme * int64(level)
	return int64(float64(gross) * (1 - vs.Contract.PartnerShare()))
}

// applyVentureTick credits one second of bot income. A venture with no bots
// is a no-op, which is what lets its timer idle harmlessly.
func applyVentureTick(cat *catalog.Catalog, st GameState, v Venture) (GameState, error) {
	if st.GameOver {
		return st, nil
	}
	income := ventureIncomePerSecond(cat, &st, v)
	if income <= 0 {
		return st, nil
	}
	st.Player.NetWorth += income
	st = progressObjectives(st, tickAction(v), 1)
	return st, nil
}

func applyVentureClick(cat *catalog.Catalog, st GameState, v Venture) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	desc, ok := cat.Venture(string(v))
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownVenture, v)
	}
	level := st.Player.Ventures[v].Level
	if level < 1 {
		level = 1
	}
	st.Player.NetWorth += desc.BaseClick * int64(level)
	st = progressObjectives(st, clickAction(v), 1)
	return st, nil
}

func applyHireBot(cat *catalog.Catalog, st GameState, v Venture) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	desc, ok := cat.Venture(string(v))
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownVenture, v)
	}
	vs := st.Player.Ventures[v]
	if vs.Bots >= desc.BotCap {
		return st, fmt.Errorf("%w: bot crew already at cap (%d)", ErrVentureState, desc.BotCap)
	}
	cost := desc.BaseClick * 100 * int64(vs.Bots+1)
	if cost > st.Player.NetWorth {
		return st, fmt.Errorf("%w: you need %d more credits", ErrInsufficientFunds, cost-st.Player.NetWorth)
	}
	st.Player.NetWorth -= cost
	vs.Bots++
	st.Player.Ventures[v] = vs
	return st, nil
}

// applyPurchaseEstablishment converts a fully-botted venture into an owned
// establishment. Cost is derived from the venture's own themed income
// potential, not a flat placeholder.
func applyPurchaseEstablishment(cat *catalog.Catalog, st GameState, v Venture, rng *rand.Rand) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	desc, ok := cat.Venture(string(v))
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownVenture, v)
	}
	vs := st.Player.Ventures[v]
	if vs.Level != 0 || vs.Contract != nil {
		return st, fmt.Errorf("%w: establishment already owned", ErrVentureState)
	}
	if vs.Bots < desc.BotCap {
		return st, fmt.Errorf("%w: requires %d bots, you have %d", ErrVentureState, desc.BotCap, vs.Bots)
	}

	zone := systemOf(cat, st.Player.CurrentSystem).Zone
	cost := cat.ThemeIncome(string(v), zone) * int64(desc.BotCap) * 600
	if cost > st.Player.NetWorth {
		return st, fmt.Errorf("%w: you need %d more credits", ErrInsufficientFunds, cost-st.Player.NetWorth)
	}

	// Initial market value lands at 80-120% of what was paid.
	value := cost * int64(80+rng.Intn(41)) / 100

	st.Player.NetWorth -= cost
	vs.Level = 1
	vs.Contract = &EstablishmentContract{
		MarketValue:  value,
		ValueHistory: []int64{value},
	}
	st.Player.Ventures[v] = vs
	return st, nil
}

func applyExpandEstablishment(cat *catalog.Catalog, st GameState, v Venture, rng *rand.Rand) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	desc, ok := cat.Venture(string(v))
	if !ok {
		return st, fmt.Errorf("%w: %s", ErrUnknownVenture, v)
	}
	vs := st.Player.Ventures[v]
	if vs.Contract == nil || vs.Level < 1 || vs.Level >= MaxEstablishmentLevel {
		return st, fmt.Errorf("%w: expansion requires level 1-%d with a contract", ErrVentureState, MaxEstablishmentLevel-1)
	}
	if vs.Level > len(desc.TierCosts) {
		return st, fmt.Errorf("%w: no expansion tier configured", ErrVentureState)
	}

	rate := ventureIncomePerSecond(cat, &st, v)
	if rate < 1 {
		rate = 1
	}
	cost := desc.TierCosts[vs.Level-1] * rate
	if cost > st.Player.NetWorth {
		return st, fmt.Errorf("%w: you need %d more credits", ErrInsufficientFunds, cost-st.Player.NetWorth)
	}

	st.Player.NetWorth -= cost
	vs.Level++
	// 70-90% of the expansion spend re-invests into the market value.
	vs.Contract.MarketValue += cost * int64(70+rng.Intn(21)) / 100
	vs.Contract.ValueHistory = appendBounded(vs.Contract.ValueHistory, vs.Contract.MarketValue, PriceHistoryDepth)
	st.Player.Ventures[v] = vs
	return st, nil
}

func applySellPartnerStake(st GameState, v Venture, partner string, stake float64, offer int64) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	vs := st.Player.Ventures[v]
	if vs.Contract == nil {
		return st, fmt.Errorf("%w: no establishment contract", ErrVentureState)
	}
	if stake <= 0 || offer <= 0 {
		return st, fmt.Errorf("stake and offer must be > 0")
	}
	if vs.Contract.PartnerShare()+stake > 1.0+1e-9 {
		return st, fmt.Errorf("%w: %.0f%% already sold", ErrOwnershipLimit, vs.Contract.PartnerShare()*100)
	}

	st.Player.NetWorth += offer
	vs.Contract.Partners = append(vs.Contract.Partners, Partner{
		Name:       partner,
		Percentage: stake,
		Investment: offer,
	})
	st.Player.Ventures[v] = vs
	return st, nil
}

// applyLiquidate cashes out at the current market value and resets the
// venture to its unowned defaults. There is no undo.
func applyLiquidate(st GameState, v Venture) (GameState, error) {
	if st.GameOver {
		return st, ErrGameOver
	}
	vs := st.Player.Ventures[v]
	if vs.Contract == nil {
		return st, fmt.Errorf("%w: nothing to liquidate", ErrVentureState)
	}
	st.Player.NetWorth += vs.Contract.MarketValue
	st.Player.Ventures[v] = VentureState{}
	return st, nil
}
