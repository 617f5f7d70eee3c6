package game

import (
	"math"
	"testing"
)

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func chartState(playerScores []float64, npcScores []float64) *State {
	st := InitialState()
	st.Artist = &Artist{Name: "Player", Genre: "Pop"}
	for i, sc := range playerScores {
		st.Songs = append(st.Songs, Song{
			ID:         "p" + string(rune('a'+i)),
			Title:      "Player Song",
			IsReleased: true,
			ChartTrack: ChartTrack{ChartScore: sc},
		})
	}
	for i, sc := range npcScores {
		st.NPCSongs = append(st.NPCSongs, NPCSong{
			ID:         "n" + string(rune('a'+i)),
			Title:      "NPC Song",
			ArtistName: "Rival",
			ChartTrack: ChartTrack{ChartScore: sc},
		})
	}
	return &st
}

func TestRunChartRanksByScore(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5})
	st := chartState([]float64{300}, []float64{500, 100})

	e.runChart(st)

	if st.Songs[0].CurrentChartPosition == nil || *st.Songs[0].CurrentChartPosition != 2 {
		t.Fatalf("player song should rank 2nd: %+v", st.Songs[0].CurrentChartPosition)
	}
	if *st.NPCSongs[0].CurrentChartPosition != 1 {
		t.Fatalf("strongest NPC song should rank 1st")
	}
	if *st.NPCSongs[1].CurrentChartPosition != 3 {
		t.Fatalf("weakest song should rank 3rd")
	}
}

func TestRunChartPlayerWinsTies(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5})
	st := chartState([]float64{100}, []float64{100})

	e.runChart(st)

	if *st.Songs[0].CurrentChartPosition != 1 {
		t.Fatalf("player should win the exact tie, got %d", *st.Songs[0].CurrentChartPosition)
	}
	if *st.NPCSongs[0].CurrentChartPosition != 2 {
		t.Fatalf("npc should take 2nd on the tie")
	}
}

func TestRunChartTruncatesToSize(t *testing.T) {
	bal := DefaultBalance()
	bal.ChartSize = 3
	e := NewEngine(bal, fixedRNG{f: 0.5})
	st := chartState(nil, []float64{500, 400, 300, 200, 100})

	e.runChart(st)

	ranked := 0
	for i := range st.NPCSongs {
		if st.NPCSongs[i].CurrentChartPosition != nil {
			ranked++
		}
	}
	if ranked != 3 {
		t.Fatalf("chart of size 3 ranked %d songs", ranked)
	}
	if st.NPCSongs[3].CurrentChartPosition != nil || st.NPCSongs[4].CurrentChartPosition != nil {
		t.Fatalf("songs beyond the cutoff must have no position")
	}
}

func TestRunChartTracksPeakAndLastWeek(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5})
	st := chartState([]float64{100}, []float64{500})
	song := &st.Songs[0]

	e.runChart(st)
	if *song.CurrentChartPosition != 2 || *song.PeakChartPosition != 2 {
		t.Fatalf("first week: pos=%v peak=%v", song.CurrentChartPosition, song.PeakChartPosition)
	}

	// Knock the NPC song out; the player climbs to 1 and the peak follows.
	st.NPCSongs[0].ChartScore = 0
	e.runChart(st)
	if *song.CurrentChartPosition != 1 || *song.PeakChartPosition != 1 {
		t.Fatalf("second week: pos=%v peak=%v", song.CurrentChartPosition, song.PeakChartPosition)
	}
	if song.LastWeekPosition == nil || *song.LastWeekPosition != 2 {
		t.Fatalf("last week position should be 2, got %v", song.LastWeekPosition)
	}

	// Sink the player; position clears but the peak is forever.
	song.ChartScore = 0
	e.runChart(st)
	if song.CurrentChartPosition != nil {
		t.Fatalf("fallen song must have no position")
	}
	if *song.PeakChartPosition != 1 {
		t.Fatalf("peak must survive falling off")
	}
}

func TestDecayTrackLifecycle(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5}) // decay 0.95, noise 0

	tr := &ChartTrack{ChartScore: 200, WeeksOnChart: 0}
	e.decayTrack(tr)
	if !closeTo(tr.ChartScore, 190) {
		t.Fatalf("decay: got %v want 190", tr.ChartScore)
	}
	if tr.WeeksOnChart != 1 {
		t.Fatalf("weeks should advance")
	}
}

func TestDecayTrackAgePenalties(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5})

	old := &ChartTrack{ChartScore: 400, WeeksOnChart: 15}
	e.decayTrack(old) // weeks -> 16, above the first penalty threshold
	want := 400 * 0.95 * 0.85
	if !closeTo(old.ChartScore, want) {
		t.Fatalf("first age penalty: got %v want %v", old.ChartScore, want)
	}

	late := &ChartTrack{ChartScore: 400, WeeksOnChart: 25}
	e.decayTrack(late) // weeks -> 26, both penalties stack
	want = 400 * 0.95 * 0.85 * 0.70
	if !closeTo(late.ChartScore, want) {
		t.Fatalf("stacked penalties: got %v want %v", late.ChartScore, want)
	}
}

func TestDecayTrackFallRules(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5})

	weak := &ChartTrack{ChartScore: 10, WeeksOnChart: 1}
	e.decayTrack(weak) // 9.5 < 10 threshold
	if weak.ChartScore != 0 {
		t.Fatalf("score under the floor must zero out, got %v", weak.ChartScore)
	}

	ancient := &ChartTrack{ChartScore: 900, WeeksOnChart: 40}
	e.decayTrack(ancient) // weeks -> 41 > 40
	if ancient.ChartScore != 0 {
		t.Fatalf("past max weeks must zero out, got %v", ancient.ChartScore)
	}
}

func TestDecayTrackZeroIsTerminalButStillAges(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.99})
	tr := &ChartTrack{ChartScore: 0, WeeksOnChart: 50}
	e.decayTrack(tr)
	if tr.ChartScore != 0 {
		t.Fatalf("zero score must stay zero, got %v", tr.ChartScore)
	}
	if tr.WeeksOnChart != 51 {
		t.Fatalf("dead tracks still age, got %d", tr.WeeksOnChart)
	}
}

func TestChartRead(t *testing.T) {
	e := NewEngine(DefaultBalance(), fixedRNG{f: 0.5})
	st := chartState([]float64{450}, []float64{500, 100})
	st.Songs[0].Title = "My Hit"
	e.runChart(st)

	entries := Chart(st)
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}
	for i, en := range entries {
		if en.Rank != i+1 {
			t.Fatalf("entries must come back rank-sorted: %+v", entries)
		}
	}
	if entries[1].Title != "My Hit" || !entries[1].IsPlayer || entries[1].ArtistName != "Player" {
		t.Fatalf("player entry wrong: %+v", entries[1])
	}
	if entries[0].IsPlayer {
		t.Fatalf("npc entry mislabeled as player")
	}
}
