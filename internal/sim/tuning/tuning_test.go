package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault_PhaseCadence(t *testing.T) {
	d := Default()
	if d.Phase.LowSecs != 7 || d.Phase.HighSecs != 20 {
		t.Fatalf("default phase cadence = %v/%v, want 7/20", d.Phase.LowSecs, d.Phase.HighSecs)
	}
	if len(d.Patrol.ScatterAnchors) == 0 {
		t.Fatal("default tuning has no scatter anchors")
	}
}

func TestLoad_PartialOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	body := []byte("bust:\n  timeout_secs: 12\nheat_tiers: [2, 8]\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Bust.TimeoutSecs != 12 {
		t.Fatalf("bust timeout = %v, want 12", got.Bust.TimeoutSecs)
	}
	if len(got.HeatTiers) != 2 {
		t.Fatalf("heat tiers = %v, want [2 8]", got.HeatTiers)
	}
	// Untouched sections keep defaults.
	if got.Phase.LowSecs != 7 {
		t.Fatalf("phase low = %v, want default 7", got.Phase.LowSecs)
	}
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if got.Phase.HighSecs != 20 {
		t.Fatal("missing file should still return defaults")
	}
}

func TestTier(t *testing.T) {
	d := Default() // thresholds 1, 5, 10, 20
	cases := []struct {
		smell uint16
		tier  int
	}{
		{0, 0}, {1, 1}, {4, 1}, {5, 2}, {9, 2}, {10, 3}, {19, 3}, {20, 4}, {500, 4},
	}
	for _, c := range cases {
		if got := d.Tier(c.smell); got != c.tier {
			t.Errorf("Tier(%d) = %d, want %d", c.smell, got, c.tier)
		}
	}
}
