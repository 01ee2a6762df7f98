package game

import (
	"math/rand"
	"testing"
)

func TestPriceBalancedMarket(t *testing.T) {
	if got := Price(100, 100, 100, 1.0); got != 100 {
		t.Fatalf("balanced market price = %d, want 100", got)
	}
}

func TestPriceScarcityDoublesPrice(t *testing.T) {
	// demand/supply of 4 gives a sqrt factor of 2.
	if got := Price(100, 50, 200, 1.0); got != 200 {
		t.Fatalf("scarce market price = %d, want 200", got)
	}
}

func TestPriceMonotonicInDemand(t *testing.T) {
	low := Price(100, 100, 50, 1.0)
	high := Price(100, 100, 400, 1.0)
	if high <= low {
		t.Fatalf("price should rise with demand: low=%d high=%d", low, high)
	}
}

func TestPriceZeroSupplyClamped(t *testing.T) {
	got := Price(100, 0, 100, 1.0)
	if got <= 0 {
		t.Fatalf("zero-supply price = %d, want > 0", got)
	}
	if got != Price(100, 1, 100, 1.0) {
		t.Fatalf("zero supply should price as supply 1")
	}
}

func TestPriceAppliesMultiplier(t *testing.T) {
	base := Price(100, 100, 100, 1.0)
	cheap := Price(100, 100, 100, 0.5)
	if cheap >= base {
		t.Fatalf("producer multiplier should lower price: base=%d cheap=%d", base, cheap)
	}
}

func TestGenerateMarketExcludesIllegalInHighSecurity(t *testing.T) {
	cat := testCatalog(t)
	sys, ok := cat.System("Haven Prime")
	if !ok {
		t.Fatalf("missing home system")
	}
	market := GenerateMarket(cat, sys, rand.New(rand.NewSource(7)))
	if len(market) == 0 {
		t.Fatalf("market should not be empty")
	}
	for _, m := range market {
		item, ok := cat.Commodity(m.Name)
		if !ok {
			t.Fatalf("market lists unknown commodity %q", m.Name)
		}
		if item.Illegal {
			t.Fatalf("illegal commodity %q listed in a high security system", m.Name)
		}
		if m.Price <= 0 || m.Supply <= 0 {
			t.Fatalf("bad market row %+v", m)
		}
	}
}
