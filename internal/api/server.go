package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/config"
	"github.com/Hudmebac/heggiegame-sub000/internal/game"
	"github.com/Hudmebac/heggiegame-sub000/internal/persist"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	cfg    config.ServerConfig
	log    *slog.Logger
	cat    *catalog.Catalog
	engine *game.Engine
	hub    *Hub
	mux    *chi.Mux
}

func New(cfg config.ServerConfig, logger *slog.Logger, cat *catalog.Catalog, engine *game.Engine, hub *Hub) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:    cfg,
		log:    logger,
		cat:    cat,
		engine: engine,
		hub:    hub,
		mux:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/new-game", s.handleNewGame)

		r.Post("/trade", s.handleTrade)

		r.Post("/travel/plan", s.handleTravelPlan)
		r.Post("/travel", s.handleTravel)

		r.Post("/encounter/scan", s.handleEncounterScan)
		r.Post("/encounter/resolve", s.handleEncounterResolve)

		r.Route("/ventures/{venture}", func(r chi.Router) {
			r.Post("/click", s.handleVentureClick)
			r.Post("/bots/hire", s.handleHireBot)
			r.Post("/purchase", s.handlePurchase)
			r.Post("/expand", s.handleExpand)
			r.Post("/stake", s.handleSellStake)
			r.Post("/liquidate", s.handleLiquidate)
		})

		r.Post("/missions/{kind}/generate", s.handleGenerateMissions)
		r.Post("/missions/{id}/accept", s.handleAcceptMission)

		r.Post("/loans", s.handleTakeLoan)
		r.Post("/loans/{id}/repay", s.handleRepayLoan)

		r.Get("/save/token", s.handleExportToken)
		r.Post("/save/token", s.handleImportToken)

		r.Get("/ws", s.hub.HandleWS)
	})
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleNewGame(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.NewGame())
}

func (s *Server) handleTrade(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Item      string `json:"item"`
		Direction string `json:"direction"`
		Quantity  int    `json:"quantity"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.engine.Trade(in.Item, game.TradeDirection(in.Direction), in.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTravelPlan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Destination string `json:"destination"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	plan, err := s.engine.PlanTravel(in.Destination)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleTravel(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Destination string `json:"destination"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.engine.Travel(r.Context(), in.Destination)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleEncounterScan(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.ScanEncounter(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleEncounterResolve(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Action string `json:"action"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, outcome, err := s.engine.ResolveEncounter(r.Context(), game.EncounterAction(in.Action))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"state": st, "outcome": outcome})
}

func (s *Server) handleVentureClick(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.ClickVenture(ventureParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleHireBot(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.HireBot(ventureParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handlePurchase(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.PurchaseEstablishment(ventureParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleExpand(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.ExpandEstablishment(ventureParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleSellStake(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Partner    string  `json:"partner"`
		Percentage float64 `json:"percentage"`
		Offer      int64   `json:"offer"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.engine.SellPartnerStake(ventureParam(r), in.Partner, in.Percentage, in.Offer)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleLiquidate(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.Liquidate(ventureParam(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleGenerateMissions(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.GenerateMissions(game.MissionKind(chi.URLParam(r, "kind")))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleAcceptMission(w http.ResponseWriter, r *http.Request) {
	st, err := s.engine.AcceptMission(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleTakeLoan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount int64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.engine.TakeLoan(in.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleRepayLoan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Amount int64 `json:"amount"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := s.engine.RepayLoan(chi.URLParam(r, "id"), in.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleExportToken(w http.ResponseWriter, _ *http.Request) {
	blob, err := persist.Encode(s.engine.Snapshot())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	token, err := persist.EncodeToken(blob)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": token})
}

func (s *Server) handleImportToken(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token string `json:"token"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	blob, err := persist.DecodeToken(in.Token)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	st, err := persist.Decode(s.cat, blob, time.Now().UTC())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.engine.Restore(st))
}

func ventureParam(r *http.Request) game.Venture {
	return game.Venture(chi.URLParam(r, "venture"))
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInsufficientCargo),
		errors.Is(err, game.ErrInsufficientInventory),
		errors.Is(err, game.ErrInsufficientStock),
		errors.Is(err, game.ErrInsufficientFuel),
		errors.Is(err, game.ErrOwnershipLimit),
		errors.Is(err, game.ErrDebtLimit),
		errors.Is(err, game.ErrVentureState):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrUnknownItem),
		errors.Is(err, game.ErrUnknownSystem),
		errors.Is(err, game.ErrUnknownVenture),
		errors.Is(err, game.ErrMissionNotFound),
		errors.Is(err, game.ErrNoEncounter):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrMissionCooldown):
		writeError(w, http.StatusTooManyRequests, err.Error())
	case errors.Is(err, game.ErrEncounterPending),
		errors.Is(err, game.ErrAssetUnavailable),
		errors.Is(err, game.ErrGameOver):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrExternalService):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}
