package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/config"
	"github.com/Hudmebac/heggiegame-sub000/internal/game"
	"github.com/Hudmebac/heggiegame-sub000/internal/narrative"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st := game.NewGameState(cat, rand.New(rand.NewSource(1)), now)
	store := game.NewStore(st, nil)
	engine := game.NewEngine(cat, store, narrative.NewLocal(1), nil, 1, game.Config{})
	return New(config.ServerConfig{}, nil, cat, engine, NewHub(nil))
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestStateEndpoint(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodGet, "/v1/state", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var st game.GameState
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if st.Player.CurrentSystem == "" || len(st.Player.Fleet) == 0 {
		t.Fatalf("state payload incomplete: %+v", st.Player)
	}
}

func TestTradeRejectionsMapToStatusCodes(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/v1/trade", `{"item":"Moon Cheese","direction":"buy","quantity":1}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown item status = %d, want 404", rec.Code)
	}

	// Selling a listed commodity the player does not own is a 400.
	var st game.GameState
	stateRec := doJSON(t, srv, http.MethodGet, "/v1/state", "")
	if err := json.Unmarshal(stateRec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if len(st.Market) == 0 {
		t.Fatalf("empty market")
	}
	body, _ := json.Marshal(map[string]any{"item": st.Market[0].Name, "direction": "sell", "quantity": 5})
	rec = doJSON(t, srv, http.MethodPost, "/v1/trade", string(body))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("oversell status = %d, want 400", rec.Code)
	}
}

func TestEncounterResolveWithoutEncounter(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/v1/encounter/resolve", `{"action":"fight"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUnknownSystemTravel(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/v1/travel", `{"destination":"Nowhere"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestVentureClickEndpoint(t *testing.T) {
	rec := doJSON(t, testServer(t), http.MethodPost, "/v1/ventures/bar/click", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, testServer(t), http.MethodPost, "/v1/ventures/casino/click", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown venture status = %d, want 404", rec.Code)
	}
}

func TestSaveTokenRoundTripOverHTTP(t *testing.T) {
	srv := testServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/v1/save/token", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", rec.Code)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode export: %v", err)
	}

	body, _ := json.Marshal(map[string]string{"token": out.Token})
	rec = doJSON(t, srv, http.MethodPost, "/v1/save/token", string(body))
	if rec.Code != http.StatusOK {
		t.Fatalf("import status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodPost, "/v1/save/token", `{"token":"garbage"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad token status = %d, want 400", rec.Code)
	}
}
