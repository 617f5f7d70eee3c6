package game

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func quietService() *Service {
	return NewService(nil, slog.New(slog.NewTextHandler(io.Discard, nil)), nil)
}

func TestDecodeStateEmpty(t *testing.T) {
	s := quietService()
	st := s.decodeState("u1", nil)
	if st.Artist != nil || st.CurrentTurn != 1 {
		t.Fatalf("empty document should decode to a fresh save: %+v", st)
	}
}

func TestDecodeStateCorrupt(t *testing.T) {
	s := quietService()
	st := s.decodeState("u1", []byte(`{"artist": {broken`))
	if st.Artist != nil {
		t.Fatalf("corrupt document must yield a fresh save")
	}
	if st.CurrentTurn != 1 || len(st.LyricThemes) == 0 {
		t.Fatalf("fresh save template not applied: %+v", st)
	}
}

func TestDecodeStateMissingFieldsDefault(t *testing.T) {
	// A document written before newer fields existed: the decoder overlays
	// it on the initial template, so absent fields keep their defaults.
	s := quietService()
	raw := []byte(`{"artist":{"uid":"u1","name":"Old Save","fame":12},"current_turn":7}`)
	st := s.decodeState("u1", raw)
	if st.Artist == nil || st.Artist.Name != "Old Save" || st.Artist.Fame != 12 {
		t.Fatalf("stored fields lost: %+v", st.Artist)
	}
	if st.CurrentTurn != 7 {
		t.Fatalf("stored turn lost: %d", st.CurrentTurn)
	}
	if len(st.LyricThemes) == 0 {
		t.Fatalf("missing lyric_themes should keep the default catalog")
	}
	if st.Songs == nil || st.NPCSongs == nil {
		t.Fatalf("missing collections should default to empty, not nil")
	}
}

func TestStateDocumentRoundTrip(t *testing.T) {
	e := NewEngine(DefaultBalance(), NewSeededRNG(8))
	st := InitialState()
	e.CreateArtist(&st, "u1", CreateArtistInput{Name: "Round Trip", Genre: "Indie"})
	song, _ := e.AddSong(&st, AddSongInput{Title: "Persisted"})
	if _, err := e.ReleaseSong(&st, song.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, err := e.AdvanceTurn(&st); err != nil {
		t.Fatalf("advance: %v", err)
	}

	raw, err := json.Marshal(&st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := quietService().decodeState("u1", raw)

	if got.CurrentTurn != st.CurrentTurn {
		t.Fatalf("turn lost: %d vs %d", got.CurrentTurn, st.CurrentTurn)
	}
	if len(got.Songs) != len(st.Songs) || len(got.NPCSongs) != len(st.NPCSongs) {
		t.Fatalf("collections lost in round trip")
	}
	if got.Songs[0].ChartScore != st.Songs[0].ChartScore {
		t.Fatalf("chart score lost: %v vs %v", got.Songs[0].ChartScore, st.Songs[0].ChartScore)
	}
	if *got.Artist != *st.Artist {
		t.Fatalf("artist drifted: %+v vs %+v", got.Artist, st.Artist)
	}
}
