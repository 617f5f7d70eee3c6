package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fameforge/internal/game"
)

type APIConfig struct {
	Addr            string
	DatabaseURL     string
	SupabaseURL     string
	SupabaseAnonKey string
	MuseURL         string
	BalanceFile     string
	RandomSeed      int64
	SeedSet         bool
}

type WorkerConfig struct {
	DatabaseURL string
	TurnEvery   time.Duration
	BalanceFile string
}

type CLIConfig struct {
	APIBaseURL string
}

func LoadAPIFromEnv() (APIConfig, error) {
	addr := os.Getenv("PORT")
	if addr != "" {
		if !strings.HasPrefix(addr, ":") {
			addr = ":" + addr
		}
	} else {
		addr = envDefault("FAME_API_ADDR", ":8080")
	}

	cfg := APIConfig{
		Addr:            addr,
		DatabaseURL:     strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SupabaseURL:     strings.TrimRight(strings.TrimSpace(os.Getenv("SUPABASE_URL")), "/"),
		SupabaseAnonKey: strings.TrimSpace(os.Getenv("SUPABASE_ANON_KEY")),
		MuseURL:         strings.TrimRight(strings.TrimSpace(os.Getenv("FAME_MUSE_URL")), "/"),
		BalanceFile:     strings.TrimSpace(os.Getenv("FAME_BALANCE_FILE")),
	}
	if seed := strings.TrimSpace(os.Getenv("FAME_RANDOM_SEED")); seed != "" {
		n, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("FAME_RANDOM_SEED: %w", err)
		}
		cfg.RandomSeed = n
		cfg.SeedSet = true
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.SupabaseURL == "" {
		return cfg, fmt.Errorf("SUPABASE_URL is required")
	}
	if cfg.SupabaseAnonKey == "" {
		return cfg, fmt.Errorf("SUPABASE_ANON_KEY is required")
	}
	return cfg, nil
}

func LoadWorkerFromEnv() (WorkerConfig, error) {
	cfg := WorkerConfig{
		DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TurnEvery:   envDurationDefault("FAME_TURN_EVERY", 10*time.Minute),
		BalanceFile: strings.TrimSpace(os.Getenv("FAME_BALANCE_FILE")),
	}
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func LoadCLIFromEnv() CLIConfig {
	return CLIConfig{
		APIBaseURL: strings.TrimRight(envDefault("FAME_API_BASE_URL", "http://localhost:8080"), "/"),
	}
}

// LoadBalance returns the default tuning overlaid with any values from the
// YAML file at path. Empty path means pure defaults. Keys absent from the
// file keep their defaults, so a tuning file only lists what it changes.
func LoadBalance(path string) (game.Balance, error) {
	bal := game.DefaultBalance()
	if path == "" {
		return bal, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return bal, fmt.Errorf("read balance file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &bal); err != nil {
		return bal, fmt.Errorf("parse balance file: %w", err)
	}
	if bal.ChartSize <= 0 {
		return bal, fmt.Errorf("chart_size must be positive")
	}
	if bal.PayoutPerStream < 0 {
		return bal, fmt.Errorf("payout_per_stream must not be negative")
	}
	if bal.NPCSpawnChance < 0 || bal.NPCSpawnChance > 1 {
		return bal, fmt.Errorf("npc_spawn_chance must be in [0,1]")
	}
	return bal, nil
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
