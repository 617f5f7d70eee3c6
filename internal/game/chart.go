package game

import "sort"

// runChart applies the weekly decay/fluctuation pass and recomputes the
// top-N ranking across every in-world track (released player songs plus the
// NPC roster's songs). Tracks that hit score 0 stay at 0 forever; they keep
// aging so NPC housekeeping can eventually retire them.
func (e *Engine) runChart(st *State) {
	tracks := make([]*ChartTrack, 0, len(st.Songs)+len(st.NPCSongs))
	for i := range st.Songs {
		if st.Songs[i].IsReleased {
			tracks = append(tracks, &st.Songs[i].ChartTrack)
		}
	}
	for i := range st.NPCSongs {
		tracks = append(tracks, &st.NPCSongs[i].ChartTrack)
	}

	for _, t := range tracks {
		e.decayTrack(t)
	}

	// Rank survivors. sort.SliceStable keeps input order on equal scores,
	// so player songs (listed first) win exact ties.
	ranked := make([]*ChartTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.ChartScore > 0 {
			ranked = append(ranked, t)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ChartScore > ranked[j].ChartScore
	})
	if len(ranked) > e.bal.ChartSize {
		ranked = ranked[:e.bal.ChartSize]
	}

	for _, t := range tracks {
		t.LastWeekPosition = t.CurrentChartPosition
		t.CurrentChartPosition = nil
	}
	for i, t := range ranked {
		pos := i + 1
		t.CurrentChartPosition = &pos
		if t.PeakChartPosition == nil || pos < *t.PeakChartPosition {
			peak := pos
			t.PeakChartPosition = &peak
		}
	}
}

// decayTrack runs one track through the weekly lifecycle: multiplicative
// decay, additive noise, aging, the two age-penalty tiers, then the
// fall-off rule. Score 0 is terminal; only the age counter still moves.
func (e *Engine) decayTrack(t *ChartTrack) {
	if t.ChartScore <= 0 {
		t.ChartScore = 0
		t.WeeksOnChart++
		return
	}

	t.ChartScore *= uniform(e.rng, e.bal.DecayMin, e.bal.DecayMax)
	t.ChartScore += uniform(e.rng, -e.bal.FluctuationSpan, e.bal.FluctuationSpan)
	t.WeeksOnChart++

	if t.WeeksOnChart > e.bal.AgePenaltyWeeks && t.ChartScore > e.bal.AgePenaltyFloor {
		t.ChartScore *= e.bal.AgePenaltyFactor
	}
	if t.WeeksOnChart > e.bal.LateWeeks && t.ChartScore > e.bal.LateFloor {
		t.ChartScore *= e.bal.LateFactor
	}
	if t.ChartScore < e.bal.FallScore || t.WeeksOnChart > e.bal.MaxChartWeeks {
		t.ChartScore = 0
	}
}

// Chart renders the current standings from positions written back at the
// last recomputation. It never mutates state.
func Chart(st *State) []ChartEntry {
	artistName := ""
	if st.Artist != nil {
		artistName = st.Artist.Name
	}

	entries := make([]ChartEntry, 0, 32)
	for i := range st.Songs {
		s := &st.Songs[i]
		if s.IsReleased && s.CurrentChartPosition != nil {
			entries = append(entries, ChartEntry{
				Rank:         *s.CurrentChartPosition,
				Title:        s.Title,
				ArtistName:   artistName,
				Genre:        s.Genre,
				IsPlayer:     true,
				WeeksOnChart: s.WeeksOnChart,
				Peak:         peakOr(s.PeakChartPosition, *s.CurrentChartPosition),
				LastWeek:     s.LastWeekPosition,
			})
		}
	}
	for i := range st.NPCSongs {
		s := &st.NPCSongs[i]
		if s.CurrentChartPosition != nil {
			entries = append(entries, ChartEntry{
				Rank:         *s.CurrentChartPosition,
				Title:        s.Title,
				ArtistName:   s.ArtistName,
				Genre:        s.Genre,
				WeeksOnChart: s.WeeksOnChart,
				Peak:         peakOr(s.PeakChartPosition, *s.CurrentChartPosition),
				LastWeek:     s.LastWeekPosition,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Rank < entries[j].Rank })
	return entries
}

func peakOr(peak *int, fallback int) int {
	if peak != nil {
		return *peak
	}
	return fallback
}
