package game

import (
	"context"
	"errors"
	"testing"

	"github.com/Hudmebac/heggiegame-sub000/internal/narrative"
)

type downService struct{}

func (downService) MarketEvent(context.Context, narrative.MarketEventRequest) (narrative.MarketEvent, error) {
	return narrative.MarketEvent{}, errors.New("narrative offline")
}

func (downService) ScanReport(context.Context, narrative.ScanRequest) (string, error) {
	return "", errors.New("narrative offline")
}

func (downService) ResolveEncounter(context.Context, narrative.EncounterRequest) (narrative.EncounterOutcome, error) {
	return narrative.EncounterOutcome{}, errors.New("narrative offline")
}

func TestResolveEncounterServiceFailureLeavesEncounterPending(t *testing.T) {
	cat, st := testState(t)
	pendingPirate(&st, "")
	before := st.Player.NetWorth

	engine := NewEngine(cat, NewStore(st, nil), downService{}, nil, 1, Config{})

	_, _, err := engine.ResolveEncounter(context.Background(), ActionFight)
	if !errors.Is(err, ErrExternalService) {
		t.Fatalf("err = %v, want ErrExternalService", err)
	}

	got := engine.Snapshot()
	if got.Player.Encounter == nil {
		t.Fatalf("encounter cleared despite resolver failure")
	}
	if got.Player.NetWorth != before {
		t.Fatalf("net worth changed on failed resolution: %d -> %d", before, got.Player.NetWorth)
	}
}

func TestResolveEncounterWithLocalService(t *testing.T) {
	cat, st := testState(t)
	pendingPirate(&st, "")

	engine := NewEngine(cat, NewStore(st, nil), narrative.NewLocal(1), nil, 1, Config{})

	next, out, err := engine.ResolveEncounter(context.Background(), ActionBribe)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if out.Result != narrative.ResultBribed {
		t.Fatalf("result = %q, want bribed", out.Result)
	}
	if next.Player.Encounter != nil {
		t.Fatalf("encounter not cleared after resolution")
	}
}

func TestResolveEncounterWithoutEncounter(t *testing.T) {
	cat, st := testState(t)
	engine := NewEngine(cat, NewStore(st, nil), narrative.NewLocal(1), nil, 1, Config{})

	if _, _, err := engine.ResolveEncounter(context.Background(), ActionFight); !errors.Is(err, ErrNoEncounter) {
		t.Fatalf("err = %v, want ErrNoEncounter", err)
	}
}
