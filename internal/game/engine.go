package game

import (
	"math"

	"github.com/google/uuid"
)

// Engine owns every game-state transition. It is deliberately free of I/O:
// commands take a *State, mutate it (or leave it untouched and return a
// typed error), and the Service decides what to persist. One engine instance
// per service; all randomness flows through the injected RNG.
type Engine struct {
	bal Balance
	rng RNG
}

func NewEngine(bal Balance, rng RNG) *Engine {
	if rng == nil {
		rng = NewLockedRNG()
	}
	return &Engine{bal: bal, rng: rng}
}

func (e *Engine) Balance() Balance {
	return e.bal
}

// CreateArtist starts a fresh career: the save is reset to the initial
// template, the player artist is installed with starting stats, and the NPC
// world is seeded so the chart is alive from week one.
func (e *Engine) CreateArtist(st *State, uid string, in CreateArtistInput) *Artist {
	themes := st.LyricThemes
	*st = InitialState()
	if len(themes) > 0 {
		st.LyricThemes = themes
	}
	st.Artist = &Artist{
		UID:        uid,
		Name:       in.Name,
		Gender:     in.Gender,
		Genre:      in.Genre,
		Backstory:  in.Backstory,
		Fame:       0,
		Skills:     StartingSkills,
		Fanbase:    0,
		Money:      StartingMoney,
		Reputation: StartingReputation,
	}
	e.seedWorld(st)
	return st.Artist
}

// AddSong drafts a new unreleased track. Title/theme validation is the
// caller's job; the engine takes the strings as given.
func (e *Engine) AddSong(st *State, in AddSongInput) (*Song, error) {
	if st.Artist == nil {
		return nil, ErrNoArtist
	}
	genre := in.Genre
	if genre == "" {
		genre = st.Artist.Genre
	}
	song := Song{
		ID:                uuid.NewString(),
		Title:             in.Title,
		Theme:             in.Theme,
		Style:             in.Style,
		Genre:             genre,
		Lyrics:            in.Lyrics,
		Beat:              in.Beat,
		ProductionQuality: QualityLow,
	}
	st.Songs = append(st.Songs, song)
	return &st.Songs[len(st.Songs)-1], nil
}

// AddAlbum groups existing songs into an album entity. Unknown song IDs are
// dropped rather than rejected.
func (e *Engine) AddAlbum(st *State, in AddAlbumInput) (*Album, error) {
	if st.Artist == nil {
		return nil, ErrNoArtist
	}
	known := make(map[string]bool, len(st.Songs))
	for i := range st.Songs {
		known[st.Songs[i].ID] = true
	}
	ids := make([]string, 0, len(in.SongIDs))
	for _, id := range in.SongIDs {
		if known[id] {
			ids = append(ids, id)
		}
	}
	album := Album{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Type:        in.Type,
		SongIDs:     ids,
		CreatedTurn: st.CurrentTurn,
	}
	st.Albums = append(st.Albums, album)
	return &st.Albums[len(st.Albums)-1], nil
}

// InvestInProduction upgrades a drafted song's production tier. Quality
// only ever moves up and is frozen once the song is released; a rejected
// request leaves the state untouched and reports why.
func (e *Engine) InvestInProduction(st *State, songID string, target ProductionQuality) (InvestResult, error) {
	if st.Artist == nil {
		return InvestResult{}, ErrNoArtist
	}
	song := st.song(songID)
	if song == nil {
		return InvestResult{}, ErrSongNotFound
	}
	if song.IsReleased {
		return InvestResult{Song: song}, ErrAlreadyReleased
	}
	cost := e.bal.upgradeCost(song.ProductionQuality, target)
	if cost < 0 {
		return InvestResult{Song: song}, ErrInvalidUpgrade
	}
	if st.Artist.Money < cost {
		return InvestResult{Song: song}, ErrInsufficientFunds
	}
	song.ProductionQuality = target
	song.ProductionInvestment += cost
	*st.Artist = ApplyDelta(*st.Artist, StatDelta{Money: -cost})
	return InvestResult{Song: song, Debit: cost, Applied: true}, nil
}

// ReleaseSong performs the one-way draft→released transition and computes
// the release-time reception, chart seed and first batch of streams. The
// chart position itself is only assigned by the next weekly recomputation.
func (e *Engine) ReleaseSong(st *State, songID string) (ReleaseOutcome, error) {
	if st.Artist == nil {
		return ReleaseOutcome{}, ErrNoArtist
	}
	song := st.song(songID)
	if song == nil {
		return ReleaseOutcome{}, ErrSongNotFound
	}
	if song.IsReleased {
		return ReleaseOutcome{Song: song}, ErrAlreadyReleased
	}

	artist := st.Artist
	qm := song.ProductionQuality.Multiplier()

	fan := clampFloat(math.Round(uniform(e.rng, 0, 30)+50*qm), 0, 100)
	critic := clampFloat(math.Round(uniform(e.rng, 0, 30)+40*qm), 0, 100)
	score := clampFloat(math.Floor(
		(fan*2+critic*3+float64(artist.Fame)/10+float64(artist.Skills)*1.5)*qm+uniform(e.rng, 0, 100),
	), 50, 1000)
	streams := int64(math.Floor((uniform(e.rng, 0, 5000) + 1000 + float64(artist.Fanbase)/10) * qm))
	earnings := int64(math.Floor(float64(streams) * e.bal.PayoutPerStream))

	song.IsReleased = true
	song.ReleaseTurn = st.CurrentTurn
	song.FanReaction = int64(fan)
	song.CriticScore = int64(critic)
	song.ChartTrack = ChartTrack{ChartScore: score, ReleaseTurn: st.CurrentTurn}
	song.Sales = streams
	song.WeeklyStreams = streams
	song.TotalEarnings = earnings

	delta := StatDelta{
		Fame:    int64(math.Floor((10 + float64(artist.Skills)/10 + fan/20) * qm)),
		Fanbase: int64(math.Floor(((fan/100)*float64(artist.Skills)*10 + uniform(e.rng, 0, 500)) * qm)),
		Money:   earnings,
	}
	*artist = ApplyDelta(*artist, delta)

	return ReleaseOutcome{
		Song:           song,
		ArtistDelta:    delta,
		InitialStreams: streams,
		Earnings:       earnings,
		Applied:        true,
	}, nil
}

// SelectActivity records the training choice for the next advance. Empty id
// clears the slot. Effects are applied by AdvanceTurn, not here.
func (e *Engine) SelectActivity(st *State, activityID string) error {
	if st.Artist == nil {
		return ErrNoArtist
	}
	if activityID == "" {
		st.SelectedActivityID = ""
		return nil
	}
	if _, ok := activityByID(activityID); !ok {
		return ErrActivityNotFound
	}
	st.SelectedActivityID = activityID
	return nil
}

// SetAutoAdvance flags the save for the real-time clock worker.
func (e *Engine) SetAutoAdvance(st *State, enabled bool) error {
	if st.Artist == nil {
		return ErrNoArtist
	}
	st.AutoAdvance = enabled
	return nil
}

// AdvanceTurn runs one simulated week, in fixed order: training activity,
// living cost, fame drift, streaming payouts, NPC spawn roll, chart
// recomputation, then the turn counter. The activity selection is one-shot
// and always cleared, affordable or not.
func (e *Engine) AdvanceTurn(st *State) (TurnSummary, error) {
	if st.Artist == nil {
		return TurnSummary{}, ErrNoArtist
	}
	artist := st.Artist
	var sum TurnSummary

	if st.SelectedActivityID != "" {
		if act, ok := activityByID(st.SelectedActivityID); ok && artist.Money >= act.Cost {
			*artist = ApplyDelta(*artist, act.Effect.add(StatDelta{Money: -act.Cost}))
			sum.ActivityApplied = true
			sum.ActivityCost = act.Cost
		}
	}

	// Money clamps at zero, so a broke artist pays only what is left.
	sum.LivingCost = min(e.bal.WeeklyLivingCost, artist.Money)
	*artist = ApplyDelta(*artist, StatDelta{Money: -e.bal.WeeklyLivingCost})

	if artist.Fanbase > 1000 && artist.Fame > 10 {
		*artist = ApplyDelta(*artist, StatDelta{Fame: artist.Fanbase / 1000})
	} else if artist.Fame > 0 {
		*artist = ApplyDelta(*artist, StatDelta{Fame: -1})
	}

	var weekEarnings, weekStreams int64
	for i := range st.Songs {
		song := &st.Songs[i]
		if !song.IsReleased || song.CurrentChartPosition == nil {
			song.WeeklyStreams = 0
			continue
		}
		pos := *song.CurrentChartPosition
		base := float64((int64(e.bal.ChartSize) + 1 - int64(pos)) * e.bal.PositionStreamBase)
		bonus := float64(artist.Fame)*e.bal.FameStreamFactor + float64(artist.Fanbase/e.bal.FanbaseStreamDiv)
		streams := int64(math.Floor((base + bonus) * song.ProductionQuality.Multiplier() * uniform(e.rng, 0.8, 1.2)))
		if streams < 0 {
			streams = 0
		}
		earn := int64(math.Floor(float64(streams) * e.bal.PayoutPerStream))

		song.WeeklyStreams = streams
		song.Sales += streams
		song.TotalEarnings += earn
		weekStreams += streams
		weekEarnings += earn
	}
	if weekEarnings > 0 {
		*artist = ApplyDelta(*artist, StatDelta{Money: weekEarnings})
	}
	sum.StreamEarnings = weekEarnings
	sum.WeeklyStreams = weekStreams

	sum.NPCSongSpawned = e.maybeSpawnNPCSong(st)
	e.runChart(st)
	e.retireStaleNPCSongs(st)

	st.CurrentTurn++
	st.SelectedActivityID = ""
	sum.Turn = st.CurrentTurn
	return sum, nil
}

// AddEvent registers a generated three-choice event for the player to
// resolve.
func (e *Engine) AddEvent(st *State, description string, choices [3]string) (*ActiveEvent, error) {
	if st.Artist == nil {
		return nil, ErrNoArtist
	}
	ev := ActiveEvent{
		ID:            uuid.NewString(),
		Description:   description,
		Choices:       choices,
		TurnTriggered: st.CurrentTurn,
	}
	st.ActiveEvents = append(st.ActiveEvents, ev)
	return &st.ActiveEvents[len(st.ActiveEvents)-1], nil
}

// ResolveEvent applies one of the three outcome branches and moves the
// event from the active list to history. Each event resolves exactly once;
// a second resolve finds nothing and no-ops with ErrEventNotFound.
func (e *Engine) ResolveEvent(st *State, eventID string, choice int) (StatDelta, error) {
	if st.Artist == nil {
		return StatDelta{}, ErrNoArtist
	}
	if choice < 0 || choice > 2 {
		return StatDelta{}, ErrInvalidChoice
	}
	idx := -1
	for i := range st.ActiveEvents {
		if st.ActiveEvents[i].ID == eventID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return StatDelta{}, ErrEventNotFound
	}

	var delta StatDelta
	switch choice {
	case 0:
		delta = StatDelta{
			Fame:       between(e.rng, 5, 15),
			Reputation: between(e.rng, 2, 7),
			Money:      between(e.rng, 50, 250),
		}
	case 1:
		delta = StatDelta{
			Fame:       between(e.rng, 0, 5),
			Reputation: between(e.rng, -3, 3),
		}
	case 2:
		delta = StatDelta{
			Fame:       -between(e.rng, 0, 5),
			Reputation: -between(e.rng, 2, 7),
			Money:      -between(e.rng, 20, 120),
		}
	}
	*st.Artist = ApplyDelta(*st.Artist, delta)

	ev := st.ActiveEvents[idx]
	ev.Resolved = true
	chosen := choice
	ev.ChosenOption = &chosen
	st.ActiveEvents = append(st.ActiveEvents[:idx], st.ActiveEvents[idx+1:]...)
	st.EventHistory = append(st.EventHistory, ev)
	return delta, nil
}

// UpdateArtistStats is the direct ledger adjustment used by non-turn flows
// such as songwriting skill gain.
func (e *Engine) UpdateArtistStats(st *State, delta StatDelta) error {
	if st.Artist == nil {
		return ErrNoArtist
	}
	*st.Artist = ApplyDelta(*st.Artist, delta)
	return nil
}

// BuildDashboard aggregates the read-side summary for the UI.
func BuildDashboard(st *State) Dashboard {
	d := Dashboard{
		Artist:      st.Artist,
		Turn:        st.CurrentTurn,
		AutoAdvance: st.AutoAdvance,
	}
	if st.Artist != nil {
		d.Tier = ArtistTier(st.Artist.Fame)
	}
	for i := range st.Songs {
		s := &st.Songs[i]
		if !s.IsReleased {
			d.DraftedSongs++
			continue
		}
		d.ReleasedSongs++
		d.TotalStreams += s.Sales
		d.TotalEarnings += s.TotalEarnings
		if s.CurrentChartPosition != nil {
			d.ChartingSongs++
			if d.BestPosition == nil || *s.CurrentChartPosition < *d.BestPosition {
				pos := *s.CurrentChartPosition
				d.BestPosition = &pos
			}
		}
	}
	d.PendingEvents = len(st.ActiveEvents)
	return d
}

func (st *State) song(id string) *Song {
	for i := range st.Songs {
		if st.Songs[i].ID == id {
			return &st.Songs[i]
		}
	}
	return nil
}
