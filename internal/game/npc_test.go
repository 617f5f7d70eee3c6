package game

import (
	"math"
	"testing"
)

// sequenceRNG replays a fixed list of float draws, cycling when exhausted.
// IntN always picks the first element.
type sequenceRNG struct {
	floats []float64
	i      int
}

func (r *sequenceRNG) IntN(n int) int { return 0 }

func (r *sequenceRNG) Float64() float64 {
	v := r.floats[r.i%len(r.floats)]
	r.i++
	return v
}

func TestSeedWorld(t *testing.T) {
	e := NewEngine(DefaultBalance(), NewSeededRNG(5))
	st := InitialState()
	e.seedWorld(&st)

	if len(st.NPCArtists) != len(npcCatalog) {
		t.Fatalf("roster size %d, want %d", len(st.NPCArtists), len(npcCatalog))
	}
	if len(st.NPCSongs) < len(npcCatalog) || len(st.NPCSongs) > 2*len(npcCatalog) {
		t.Fatalf("each artist seeds 1-2 songs, got %d total", len(st.NPCSongs))
	}

	byArtist := make(map[string]int)
	for _, s := range st.NPCSongs {
		byArtist[s.ArtistID]++
		if s.ChartScore <= 0 {
			t.Fatalf("seeded song must enter with positive score: %+v", s)
		}
		if s.WeeksOnChart < 0 || s.WeeksOnChart > 7 {
			t.Fatalf("seed backdating out of range: %d weeks", s.WeeksOnChart)
		}
		if s.ReleaseTurn != st.CurrentTurn-s.WeeksOnChart {
			t.Fatalf("release turn inconsistent with backdated weeks: %+v", s)
		}
		if s.ID == "" || s.Title == "" || s.ArtistName == "" {
			t.Fatalf("seeded song missing identity: %+v", s)
		}
	}
	for _, a := range st.NPCArtists {
		n := byArtist[a.ID]
		if n < 1 || n > 2 {
			t.Fatalf("artist %s seeded %d songs", a.Name, n)
		}
	}
}

func TestSeedScoreScalesWithPopularity(t *testing.T) {
	// Pinned draws remove the noise term, leaving the popularity scaling.
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0})
	st := InitialState()
	e.seedWorld(&st)

	popByArtist := make(map[string]int)
	for _, a := range st.NPCArtists {
		popByArtist[a.ID] = a.Popularity
	}
	for _, s := range st.NPCSongs {
		pop := float64(popByArtist[s.ArtistID]) / 5.0
		want := math.Floor(300*pop + 200*pop)
		if s.ChartScore != want {
			t.Fatalf("seed score %v, want %v for popularity %v", s.ChartScore, want, pop)
		}
	}
}

func TestMaybeSpawnNPCSong(t *testing.T) {
	st := InitialState()
	e := NewEngine(DefaultBalance(), NewSeededRNG(5))
	e.seedWorld(&st)
	before := len(st.NPCSongs)

	// First draw 0.5 misses the 20% roll.
	miss := NewEngine(DefaultBalance(), &sequenceRNG{floats: []float64{0.5}})
	if miss.maybeSpawnNPCSong(&st) {
		t.Fatalf("0.5 must miss the 20%% spawn roll")
	}
	if len(st.NPCSongs) != before {
		t.Fatalf("missed roll must not add songs")
	}

	// First draw 0.1 hits; the remaining zeros pin the noise term.
	hit := NewEngine(DefaultBalance(), &sequenceRNG{floats: []float64{0.1, 0, 0}})
	if !hit.maybeSpawnNPCSong(&st) {
		t.Fatalf("0.1 must hit the 20%% spawn roll")
	}
	if len(st.NPCSongs) != before+1 {
		t.Fatalf("hit roll must add exactly one song")
	}

	spawned := st.NPCSongs[len(st.NPCSongs)-1]
	artist := st.NPCArtists[0] // IntN pinned to 0 picks the first artist
	if spawned.ArtistID != artist.ID {
		t.Fatalf("spawned song attributed to wrong artist")
	}
	pop := float64(artist.Popularity) / 5.0
	want := math.Floor(300*pop + 100)
	if spawned.ChartScore != want {
		t.Fatalf("spawn score %v, want %v", spawned.ChartScore, want)
	}
	if spawned.WeeksOnChart != 0 || spawned.ReleaseTurn != st.CurrentTurn {
		t.Fatalf("spawned song must be brand new: %+v", spawned)
	}
}

func TestRetireStaleNPCSongs(t *testing.T) {
	e := NewEngine(DefaultBalance(), NewSeededRNG(1))
	st := InitialState()
	st.NPCSongs = []NPCSong{
		{ID: "keep-charting", ChartTrack: ChartTrack{ChartScore: 200, WeeksOnChart: 60}},
		{ID: "keep-young-dead", ChartTrack: ChartTrack{ChartScore: 0, WeeksOnChart: 51}},
		{ID: "drop-old-dead", ChartTrack: ChartTrack{ChartScore: 0, WeeksOnChart: 52}},
		{ID: "drop-ancient", ChartTrack: ChartTrack{ChartScore: 0, WeeksOnChart: 90}},
	}

	e.retireStaleNPCSongs(&st)

	if len(st.NPCSongs) != 2 {
		t.Fatalf("want 2 survivors, got %d", len(st.NPCSongs))
	}
	if st.NPCSongs[0].ID != "keep-charting" || st.NPCSongs[1].ID != "keep-young-dead" {
		t.Fatalf("wrong survivors: %+v", st.NPCSongs)
	}
}

func TestWeeklyActivitiesCatalog(t *testing.T) {
	acts := WeeklyActivities()
	if len(acts) == 0 {
		t.Fatalf("catalog must not be empty")
	}
	seen := make(map[string]bool)
	for _, a := range acts {
		if a.ID == "" || a.Name == "" {
			t.Fatalf("activity missing identity: %+v", a)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate activity id %q", a.ID)
		}
		seen[a.ID] = true
		if a.Cost < 0 {
			t.Fatalf("activity cost must be non-negative: %+v", a)
		}
		if _, ok := activityByID(a.ID); !ok {
			t.Fatalf("activityByID misses %q", a.ID)
		}
	}
	if _, ok := activityByID("not-a-real-activity"); ok {
		t.Fatalf("lookup must fail for unknown ids")
	}
}
