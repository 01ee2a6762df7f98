package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Hudmebac/heggiegame-sub000/internal/api"
	"github.com/Hudmebac/heggiegame-sub000/internal/catalog"
	"github.com/Hudmebac/heggiegame-sub000/internal/config"
	"github.com/Hudmebac/heggiegame-sub000/internal/game"
	"github.com/Hudmebac/heggiegame-sub000/internal/narrative"
	"github.com/Hudmebac/heggiegame-sub000/internal/persist"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadServerFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cat, err := catalog.Load()
	if err != nil {
		logger.Error("load catalog failed", "err", err)
		os.Exit(1)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	saveStore, err := openSaveStore(ctx, cfg)
	if err != nil {
		logger.Error("open save store failed", "err", err)
		os.Exit(1)
	}
	defer saveStore.Close()

	initial := loadInitialState(ctx, cat, saveStore, logger, seed)
	store := game.NewStore(initial, logger)

	var svc narrative.Service = narrative.NewLocal(seed)
	if cfg.NarrativeURL != "" {
		svc = narrative.Fallback{
			Primary: narrative.NewClient(cfg.NarrativeURL, cfg.NarrativeTimeout),
			Backup:  narrative.NewLocal(seed),
		}
	}

	engine := game.NewEngine(cat, store, svc, logger, seed, game.Config{
		InterestAPR:       cfg.InterestAPR,
		UpkeepInterval:    cfg.UpkeepInterval,
		GameOverDebtFloor: cfg.GameOverDebtFloor,
		GameOverGrace:     cfg.GameOverGrace,
	})

	hub := api.NewHub(logger)
	server := api.New(cfg, logger, cat, engine, hub)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		game.NewScheduler(engine, logger).Run(ctx)
	}()
	go func() {
		defer wg.Done()
		hub.Run(ctx, engine.Watch(16))
	}()
	go func() {
		defer wg.Done()
		persist.NewSaver(saveStore, logger, cfg.SaveDebounce).Run(ctx, engine.Watch(16))
	}()

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("heggie server listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}

	wg.Wait()
	finalSave(engine, saveStore, logger)
}

func openSaveStore(ctx context.Context, cfg config.ServerConfig) (persist.Store, error) {
	if cfg.DatabaseURL != "" {
		return persist.NewPostgresStore(ctx, cfg.DatabaseURL, cfg.SaveSlot)
	}
	return persist.NewFileStore(cfg.SaveFile)
}

func loadInitialState(ctx context.Context, cat *catalog.Catalog, store persist.Store, logger *slog.Logger, seed int64) game.GameState {
	now := time.Now().UTC()
	blob, err := store.Load(ctx)
	if errors.Is(err, persist.ErrNoSave) {
		logger.Info("no save found, starting fresh")
		return game.NewGameState(cat, rand.New(rand.NewSource(seed)), now)
	}
	if err != nil {
		logger.Error("load save failed, starting fresh", "err", err)
		return game.NewGameState(cat, rand.New(rand.NewSource(seed)), now)
	}
	st, err := persist.Decode(cat, blob, now)
	if err != nil {
		logger.Error("save blob unreadable, starting fresh", "err", err)
		return game.NewGameState(cat, rand.New(rand.NewSource(seed)), now)
	}
	logger.Info("save loaded", "updated_at", st.UpdatedAt)
	return st
}

// finalSave flushes the last snapshot synchronously; the debounced saver
// may have been cut off mid-window by shutdown.
func finalSave(engine *game.Engine, store persist.Store, logger *slog.Logger) {
	blob, err := persist.Encode(engine.Snapshot())
	if err != nil {
		logger.Error("final save encode failed", "err", err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Save(ctx, blob); err != nil {
		logger.Error("final save write failed", "err", err)
		return
	}
	logger.Info("final save written", "bytes", len(blob))
}
