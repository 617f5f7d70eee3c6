package game

import (
	"math"

	"github.com/google/uuid"
)

// npcCatalog is the fixed roster of computer-controlled artists. Popularity
// (1..10) seeds how strong their songs enter the chart.
var npcCatalog = []struct {
	Name       string
	Genres     []Genre
	Popularity int
}{
	{"Velvet Mirage", []Genre{"Pop"}, 9},
	{"Dex Holloway", []Genre{"Hip Hop", "Rap"}, 8},
	{"Nova Reyes", []Genre{"R&B", "Pop"}, 8},
	{"The Paper Suns", []Genre{"Indie", "Rock"}, 6},
	{"Kira Volt", []Genre{"Electronic"}, 7},
	{"Marlowe Finch", []Genre{"Folk", "Country"}, 5},
	{"Seoul Static", []Genre{"K-Pop"}, 9},
	{"Ash & Ivory", []Genre{"Indie", "Folk"}, 4},
	{"Bruno Calder", []Genre{"Rock", "Metal"}, 6},
	{"Lady Lumen", []Genre{"Pop", "Electronic"}, 10},
	{"Jett Mercer", []Genre{"Country"}, 5},
	{"Ophelia Grey", []Genre{"Jazz", "Blues"}, 3},
	{"Crimson Parade", []Genre{"Rock"}, 7},
	{"Yung Solstice", []Genre{"Rap", "Hip Hop"}, 6},
	{"Mira & the Moths", []Genre{"Indie"}, 3},
	{"DJ Nocturne", []Genre{"Electronic", "K-Pop"}, 7},
}

var npcTitleLead = []string{
	"Midnight", "Golden", "Broken", "Electric", "Neon", "Silver",
	"Wild", "Fading", "Burning", "Lonely", "Velvet", "Restless",
}

var npcTitleTail = []string{
	"Hearts", "City", "Echoes", "Summer", "Avenue", "Promises",
	"Gravity", "Mirrors", "Horizon", "Fever", "Letters", "Tide",
}

func (e *Engine) npcSongTitle() string {
	return npcTitleLead[e.rng.IntN(len(npcTitleLead))] + " " + npcTitleTail[e.rng.IntN(len(npcTitleTail))]
}

// seedWorld builds the NPC roster and gives each artist 1-2 backdated songs
// so the chart is populated from week one.
func (e *Engine) seedWorld(st *State) {
	st.NPCArtists = make([]NPCArtist, 0, len(npcCatalog))
	st.NPCSongs = st.NPCSongs[:0]

	for _, c := range npcCatalog {
		artist := NPCArtist{
			ID:         uuid.NewString(),
			Name:       c.Name,
			Genres:     append([]Genre(nil), c.Genres...),
			Popularity: c.Popularity,
		}
		st.NPCArtists = append(st.NPCArtists, artist)

		count := 1 + e.rng.IntN(2)
		for i := 0; i < count; i++ {
			pop := float64(artist.Popularity) / 5.0
			score := 300*pop + 200*pop + uniform(e.rng, 0, 100)
			weeks := e.rng.IntN(8)
			song := NPCSong{
				ID:         uuid.NewString(),
				Title:      e.npcSongTitle(),
				ArtistID:   artist.ID,
				ArtistName: artist.Name,
				Genre:      artist.Genres[e.rng.IntN(len(artist.Genres))],
				ChartTrack: ChartTrack{
					ChartScore:   math.Floor(score),
					WeeksOnChart: weeks,
					ReleaseTurn:  st.CurrentTurn - weeks,
				},
			}
			st.NPCSongs = append(st.NPCSongs, song)
		}
	}
}

// maybeSpawnNPCSong rolls the per-turn spawn chance and, on a hit, hands a
// strong new release to one roster artist picked uniformly at random.
func (e *Engine) maybeSpawnNPCSong(st *State) bool {
	if len(st.NPCArtists) == 0 {
		return false
	}
	if e.rng.Float64() >= e.bal.NPCSpawnChance {
		return false
	}
	artist := st.NPCArtists[e.rng.IntN(len(st.NPCArtists))]
	pop := float64(artist.Popularity) / 5.0
	song := NPCSong{
		ID:         uuid.NewString(),
		Title:      e.npcSongTitle(),
		ArtistID:   artist.ID,
		ArtistName: artist.Name,
		Genre:      artist.Genres[e.rng.IntN(len(artist.Genres))],
		ChartTrack: ChartTrack{
			ChartScore:  math.Floor(300*pop + 100 + uniform(e.rng, 0, 100)),
			ReleaseTurn: st.CurrentTurn,
		},
	}
	st.NPCSongs = append(st.NPCSongs, song)
	return true
}

// retireStaleNPCSongs drops NPC entries that fell off the chart and aged
// out. Player songs are never removed.
func (e *Engine) retireStaleNPCSongs(st *State) {
	kept := st.NPCSongs[:0]
	for _, s := range st.NPCSongs {
		if s.ChartScore == 0 && s.WeeksOnChart >= e.bal.NPCRetireWeeks {
			continue
		}
		kept = append(kept, s)
	}
	st.NPCSongs = kept
}
