package game

import "testing"

func TestApplyDeltaClamps(t *testing.T) {
	tests := []struct {
		name  string
		start Artist
		delta StatDelta
		want  Artist
	}{
		{
			name:  "plain add",
			start: Artist{Fame: 10, Skills: 5, Fanbase: 100, Money: 1000, Reputation: 50},
			delta: StatDelta{Fame: 5, Skills: 2, Fanbase: 50, Money: -200, Reputation: 3},
			want:  Artist{Fame: 15, Skills: 7, Fanbase: 150, Money: 800, Reputation: 53},
		},
		{
			name:  "floors at zero",
			start: Artist{Fame: 3, Fanbase: 10, Money: 40, Skills: 1, Reputation: 2},
			delta: StatDelta{Fame: -10, Fanbase: -100, Money: -100, Skills: -5, Reputation: -9},
			want:  Artist{Fame: 0, Fanbase: 0, Money: 0, Skills: 0, Reputation: 0},
		},
		{
			name:  "skills and reputation cap at 100",
			start: Artist{Skills: 95, Reputation: 99},
			delta: StatDelta{Skills: 20, Reputation: 20},
			want:  Artist{Skills: 100, Reputation: 100},
		},
	}
	for _, tc := range tests {
		got := ApplyDelta(tc.start, tc.delta)
		if got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestUpgradeCost(t *testing.T) {
	b := DefaultBalance()
	tests := []struct {
		from, to ProductionQuality
		want     int64
	}{
		{QualityLow, QualityMedium, 500},
		{QualityLow, QualityHigh, 2000},
		{QualityMedium, QualityHigh, 1500},
		{QualityMedium, QualityLow, -1},
		{QualityHigh, QualityHigh, -1},
		{QualityHigh, QualityLow, -1},
		{QualityLow, QualityLow, -1},
	}
	for _, tc := range tests {
		if got := b.upgradeCost(tc.from, tc.to); got != tc.want {
			t.Fatalf("upgradeCost(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestQualityMultiplier(t *testing.T) {
	tests := []struct {
		q    ProductionQuality
		want float64
	}{
		{QualityLow, 1.0},
		{QualityMedium, 1.2},
		{QualityHigh, 1.5},
		{ProductionQuality("garbage"), 1.0},
	}
	for _, tc := range tests {
		if got := tc.q.Multiplier(); got != tc.want {
			t.Fatalf("%s multiplier = %v, want %v", tc.q, got, tc.want)
		}
	}
}

func TestArtistTier(t *testing.T) {
	tests := []struct {
		fame int64
		want string
	}{
		{0, "new"},
		{19, "new"},
		{20, "indie"},
		{40, "rising"},
		{60, "established"},
		{75, "superstar"},
		{90, "legend"},
		{500, "legend"},
	}
	for _, tc := range tests {
		if got := ArtistTier(tc.fame); got != tc.want {
			t.Fatalf("fame=%d tier=%q want %q", tc.fame, got, tc.want)
		}
	}
}

func TestBetweenBounds(t *testing.T) {
	r := NewSeededRNG(1)
	for i := 0; i < 1000; i++ {
		v := between(r, -3, 3)
		if v < -3 || v > 3 {
			t.Fatalf("between(-3,3) = %d out of range", v)
		}
	}
	if v := between(r, 7, 7); v != 7 {
		t.Fatalf("degenerate range returned %d", v)
	}
}

func TestUniformBounds(t *testing.T) {
	r := NewSeededRNG(2)
	for i := 0; i < 1000; i++ {
		v := uniform(r, 0.9, 1.0)
		if v < 0.9 || v >= 1.0 {
			t.Fatalf("uniform(0.9,1.0) = %v out of range", v)
		}
	}
}

func TestInitialStateTemplate(t *testing.T) {
	st := InitialState()
	if st.Artist != nil {
		t.Fatalf("fresh save should have no artist")
	}
	if st.CurrentTurn != 1 {
		t.Fatalf("fresh save starts at turn 1, got %d", st.CurrentTurn)
	}
	if len(st.LyricThemes) == 0 {
		t.Fatalf("fresh save should carry default lyric themes")
	}
}
