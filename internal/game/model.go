package game

import "errors"

const (
	StartingMoney      = int64(1000)
	StartingSkills     = int64(5)
	StartingReputation = int64(50)
)

var (
	ErrNoArtist          = errors.New("no artist created yet")
	ErrSongNotFound      = errors.New("song not found")
	ErrAlreadyReleased   = errors.New("song already released")
	ErrInvalidUpgrade    = errors.New("not a valid production upgrade")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrEventNotFound     = errors.New("event not found")
	ErrInvalidChoice     = errors.New("event choice must be 0, 1 or 2")
	ErrActivityNotFound  = errors.New("weekly activity not found")
	ErrUnauthorized      = errors.New("unauthorized")
)

// StatDelta is a partial adjustment to artist stats. Zero fields are no-ops,
// so callers only set what they mean to change.
type StatDelta struct {
	Fame       int64 `json:"fame,omitempty"`
	Skills     int64 `json:"skills,omitempty"`
	Fanbase    int64 `json:"fanbase,omitempty"`
	Money      int64 `json:"money,omitempty"`
	Reputation int64 `json:"reputation,omitempty"`
}

func (d StatDelta) add(o StatDelta) StatDelta {
	return StatDelta{
		Fame:       d.Fame + o.Fame,
		Skills:     d.Skills + o.Skills,
		Fanbase:    d.Fanbase + o.Fanbase,
		Money:      d.Money + o.Money,
		Reputation: d.Reputation + o.Reputation,
	}
}

// ApplyDelta returns the artist with the delta applied and every stat pulled
// back into its legal range: skills and reputation in [0,100], fame, fanbase
// and money floored at 0. Pure; never fails.
func ApplyDelta(a Artist, d StatDelta) Artist {
	a.Fame = clampMin(a.Fame+d.Fame, 0)
	a.Skills = clampRange(a.Skills+d.Skills, 0, 100)
	a.Fanbase = clampMin(a.Fanbase+d.Fanbase, 0)
	a.Money = clampMin(a.Money+d.Money, 0)
	a.Reputation = clampRange(a.Reputation+d.Reputation, 0, 100)
	return a
}

func clampMin(v, lo int64) int64 {
	if v < lo {
		return lo
	}
	return v
}

func clampRange(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InitialState is the fresh-save template. Document loads start from this
// value so fields missing from older persisted revisions keep their defaults.
func InitialState() State {
	return State{
		Artist:       nil,
		Songs:        []Song{},
		Albums:       []Album{},
		NPCArtists:   []NPCArtist{},
		NPCSongs:     []NPCSong{},
		CurrentTurn:  1,
		ActiveEvents: []ActiveEvent{},
		EventHistory: []ActiveEvent{},
		LyricThemes:  append([]string(nil), DefaultLyricThemes...),
	}
}
