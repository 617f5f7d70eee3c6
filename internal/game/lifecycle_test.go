package game

import "testing"

// Runs a full career for sixty weeks and checks the structural chart
// invariants that single-step tests cannot see.
func TestChartLongRunInvariants(t *testing.T) {
	e := NewEngine(DefaultBalance(), NewSeededRNG(1234))
	st := InitialState()
	e.CreateArtist(&st, "u1", CreateArtistInput{Name: "Long Hauler", Genre: "Pop"})
	song, err := e.AddSong(&st, AddSongInput{Title: "Marathon"})
	if err != nil {
		t.Fatalf("add song: %v", err)
	}
	if _, err := e.ReleaseSong(&st, song.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	st.Artist.Money = 1_000_000 // never let the living cost end the run

	var bestPeak *int
	for week := 0; week < 60; week++ {
		if _, err := e.AdvanceTurn(&st); err != nil {
			t.Fatalf("week %d: %v", week, err)
		}

		seen := make(map[int]bool)
		checkPos := func(tr *ChartTrack) {
			if tr.CurrentChartPosition == nil {
				return
			}
			pos := *tr.CurrentChartPosition
			if pos < 1 || pos > 100 {
				t.Fatalf("week %d: position %d out of bounds", week, pos)
			}
			if seen[pos] {
				t.Fatalf("week %d: duplicate position %d", week, pos)
			}
			seen[pos] = true
			if tr.ChartScore <= 0 {
				t.Fatalf("week %d: ranked track with score %v", week, tr.ChartScore)
			}
		}
		for i := range st.Songs {
			checkPos(&st.Songs[i].ChartTrack)
		}
		for i := range st.NPCSongs {
			checkPos(&st.NPCSongs[i].ChartTrack)
		}

		// Peak only ever improves.
		if song.PeakChartPosition != nil {
			if bestPeak != nil && *song.PeakChartPosition > *bestPeak {
				t.Fatalf("week %d: peak regressed from %d to %d", week, *bestPeak, *song.PeakChartPosition)
			}
			p := *song.PeakChartPosition
			bestPeak = &p
		}

		if song.WeeksOnChart > 40 && song.ChartScore != 0 {
			t.Fatalf("week %d: track past the age limit still scores %v", week, song.ChartScore)
		}
	}

	// Sixty weeks is far past the hard cutoff.
	if song.ChartScore != 0 {
		t.Fatalf("song should be long gone, score %v", song.ChartScore)
	}
	if song.CurrentChartPosition != nil {
		t.Fatalf("fallen song still holds a position")
	}
	if bestPeak == nil {
		t.Fatalf("song never charted across sixty weeks")
	}
	if st.CurrentTurn != 61 {
		t.Fatalf("turn counter drifted: %d", st.CurrentTurn)
	}
}
