package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestVentureClickScalesWithLevel(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 0

	next, err := applyVentureClick(cat, st, VentureBar)
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if next.Player.NetWorth != 2 { // bar base click
		t.Fatalf("click payout = %d, want 2", next.Player.NetWorth)
	}

	next.Player.Ventures[VentureBar] = VentureState{Level: 3, Bots: 1}
	next.Player.NetWorth = 0
	next, err = applyVentureClick(cat, next, VentureBar)
	if err != nil {
		t.Fatalf("click failed: %v", err)
	}
	if next.Player.NetWorth != 6 {
		t.Fatalf("level 3 click payout = %d, want 6", next.Player.NetWorth)
	}
}

func TestVentureTickNoOpWithoutBots(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 100

	next, err := applyVentureTick(cat, st, VentureBar)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if next.Player.NetWorth != 100 {
		t.Fatalf("botless tick changed net worth: %d", next.Player.NetWorth)
	}
}

func TestVentureTickPaysThemedIncome(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 0
	st.Player.Ventures[VentureBar] = VentureState{Level: 2, Bots: 4}

	// Haven Prime is a core zone: bar theme income is 5 per bot per second.
	next, err := applyVentureTick(cat, st, VentureBar)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if next.Player.NetWorth != 40 { // 4 bots * 5 * level 2
		t.Fatalf("tick income = %d, want 40", next.Player.NetWorth)
	}
}

func TestVentureTickRespectsPartnerShare(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 0
	st.Player.Ventures[VentureBar] = VentureState{
		Level: 1,
		Bots:  10,
		Contract: &EstablishmentContract{
			MarketValue: 1000,
			Partners:    []Partner{{Name: "Syndicate", Percentage: 0.5, Investment: 500}},
		},
	}

	next, err := applyVentureTick(cat, st, VentureBar)
	if err != nil {
		t.Fatalf("tick failed: %v", err)
	}
	if next.Player.NetWorth != 25 { // 10 * 5 * 1, half to the partner
		t.Fatalf("tick income = %d, want 25", next.Player.NetWorth)
	}
}

func TestHireBotCostRises(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 1_000

	next, err := applyHireBot(cat, st, VentureBar)
	if err != nil {
		t.Fatalf("hire failed: %v", err)
	}
	if next.Player.NetWorth != 800 { // first bot: base_click 2 * 100
		t.Fatalf("net worth = %d, want 800", next.Player.NetWorth)
	}
	next, err = applyHireBot(cat, next, VentureBar)
	if err != nil {
		t.Fatalf("hire failed: %v", err)
	}
	if next.Player.NetWorth != 400 { // second bot costs 400
		t.Fatalf("net worth = %d, want 400", next.Player.NetWorth)
	}
	if next.Player.Ventures[VentureBar].Bots != 2 {
		t.Fatalf("bots = %d, want 2", next.Player.Ventures[VentureBar].Bots)
	}
}

func TestPurchaseRequiresFullBotCrew(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 1_000_000
	st.Player.Ventures[VentureBar] = VentureState{Bots: 10}

	_, err := applyPurchaseEstablishment(cat, st, VentureBar, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrVentureState) {
		t.Fatalf("err = %v, want ErrVentureState", err)
	}
}

func TestPurchaseAndExpand(t *testing.T) {
	cat, st := testState(t)
	st.Player.NetWorth = 1_000_000
	st.Player.Ventures[VentureBar] = VentureState{Bots: 25}
	rng := rand.New(rand.NewSource(1))

	next, err := applyPurchaseEstablishment(cat, st, VentureBar, rng)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	vs := next.Player.Ventures[VentureBar]
	if vs.Level != 1 || vs.Contract == nil {
		t.Fatalf("purchase did not install contract: %+v", vs)
	}
	if vs.Contract.MarketValue <= 0 {
		t.Fatalf("market value = %d", vs.Contract.MarketValue)
	}

	next, err = applyExpandEstablishment(cat, next, VentureBar, rng)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if next.Player.Ventures[VentureBar].Level != 2 {
		t.Fatalf("level = %d, want 2", next.Player.Ventures[VentureBar].Level)
	}
}

func TestPartnerStakeCannotExceedWholeBusiness(t *testing.T) {
	cat, st := testState(t)
	_ = cat
	st.Player.Ventures[VentureBar] = VentureState{
		Level: 1,
		Contract: &EstablishmentContract{
			MarketValue: 1000,
			Partners:    []Partner{{Name: "A", Percentage: 0.7, Investment: 700}},
		},
	}

	if _, err := applySellPartnerStake(st, VentureBar, "B", 0.4, 400); !errors.Is(err, ErrOwnershipLimit) {
		t.Fatalf("err = %v, want ErrOwnershipLimit", err)
	}

	next, err := applySellPartnerStake(st, VentureBar, "B", 0.3, 400)
	if err != nil {
		t.Fatalf("stake sale failed: %v", err)
	}
	if share := next.Player.Ventures[VentureBar].Contract.PartnerShare(); share != 1.0 {
		t.Fatalf("partner share = %v, want 1.0", share)
	}
}

func TestLiquidateCashesOutAndResets(t *testing.T) {
	cat, st := testState(t)
	_ = cat
	st.Player.NetWorth = 1_000
	st.Player.Ventures[VentureBar] = VentureState{
		Level:    3,
		Bots:     25,
		Contract: &EstablishmentContract{MarketValue: 50_000},
	}

	next, err := applyLiquidate(st, VentureBar)
	if err != nil {
		t.Fatalf("liquidate failed: %v", err)
	}
	if next.Player.NetWorth != 51_000 {
		t.Fatalf("net worth = %d, want 51000", next.Player.NetWorth)
	}
	vs := next.Player.Ventures[VentureBar]
	if vs.Level != 0 || vs.Bots != 0 || vs.Contract != nil {
		t.Fatalf("venture not reset: %+v", vs)
	}
}
