package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type ServerConfig struct {
	Addr              string
	DatabaseURL       string
	SaveSlot          string
	SaveFile          string
	SaveDebounce      time.Duration
	NarrativeURL      string
	NarrativeTimeout  time.Duration
	UpkeepInterval    time.Duration
	InterestAPR       float64
	GameOverDebtFloor int64
	GameOverGrace     time.Duration
	Seed              int64
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadServerFromEnv() ServerConfig {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("HEGGIE_ADDR", ":8080")
	}

	return ServerConfig{
		Addr:              addr,
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SaveSlot:          envDefault("HEGGIE_SAVE_SLOT", "default"),
		SaveFile:          envDefault("HEGGIE_SAVE_FILE", "heggie-save.json"),
		SaveDebounce:      envDurationDefault("HEGGIE_SAVE_DEBOUNCE", 3*time.Second),
		NarrativeURL:      strings.TrimRight(strings.TrimSpace(os.Getenv("HEGGIE_NARRATIVE_URL")), "/"),
		NarrativeTimeout:  envDurationDefault("HEGGIE_NARRATIVE_TIMEOUT", 10*time.Second),
		UpkeepInterval:    envDurationDefault("HEGGIE_UPKEEP_EVERY", time.Minute),
		InterestAPR:       envFloatDefault("HEGGIE_INTEREST_APR", 0.15),
		GameOverDebtFloor: envInt64Default("HEGGIE_DEBT_FLOOR", -25_000),
		GameOverGrace:     envDurationDefault("HEGGIE_DEBT_GRACE", 10*time.Minute),
		Seed:              envInt64Default("HEGGIE_SEED", 0),
	}
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("HEGGIE_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

func envDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envDurationDefault(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envFloatDefault(key string, fallback float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envInt64Default(key string, fallback int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
