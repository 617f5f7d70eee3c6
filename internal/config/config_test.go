package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadBalanceDefaults(t *testing.T) {
	bal, err := LoadBalance("")
	if err != nil {
		t.Fatalf("empty path should load defaults: %v", err)
	}
	if bal.ChartSize != 100 || bal.WeeklyLivingCost != 50 {
		t.Fatalf("unexpected defaults: %+v", bal)
	}
}

func TestLoadBalanceOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	data := "weekly_living_cost: 75\nnpc_spawn_chance: 0.5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	bal, err := LoadBalance(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bal.WeeklyLivingCost != 75 {
		t.Fatalf("override lost: %d", bal.WeeklyLivingCost)
	}
	if bal.NPCSpawnChance != 0.5 {
		t.Fatalf("override lost: %v", bal.NPCSpawnChance)
	}
	// Untouched keys keep their defaults.
	if bal.ChartSize != 100 || bal.PayoutPerStream != 0.004 {
		t.Fatalf("defaults clobbered: %+v", bal)
	}
}

func TestLoadBalanceRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	if err := os.WriteFile(path, []byte("chart_size: 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadBalance(path); err == nil {
		t.Fatalf("zero chart_size must be rejected")
	}
}
