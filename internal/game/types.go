package game

type Gender string

type Genre string

type MusicStyle string

type ProductionQuality string

const (
	QualityLow    ProductionQuality = "Low"
	QualityMedium ProductionQuality = "Medium"
	QualityHigh   ProductionQuality = "High"
)

// qualityRank orders production quality for upgrade checks. Unknown values
// rank below Low so a corrupt document can never "upgrade" downward.
func qualityRank(q ProductionQuality) int {
	switch q {
	case QualityLow:
		return 1
	case QualityMedium:
		return 2
	case QualityHigh:
		return 3
	default:
		return 0
	}
}

func (q ProductionQuality) Multiplier() float64 {
	switch q {
	case QualityMedium:
		return 1.2
	case QualityHigh:
		return 1.5
	default:
		return 1.0
	}
}

type Artist struct {
	UID        string `json:"uid"`
	Name       string `json:"name"`
	Gender     Gender `json:"gender"`
	Genre      Genre  `json:"genre"`
	Backstory  string `json:"backstory,omitempty"`
	Fame       int64  `json:"fame"`
	Skills     int64  `json:"skills"`
	Fanbase    int64  `json:"fanbase"`
	Money      int64  `json:"money"`
	Reputation int64  `json:"reputation"`
}

// ChartTrack is the chart-facing state shared by player songs and NPC songs.
// The chart engine only ever touches these fields.
type ChartTrack struct {
	ChartScore           float64 `json:"chart_score"`
	WeeksOnChart         int     `json:"weeks_on_chart"`
	ReleaseTurn          int     `json:"release_turn"`
	CurrentChartPosition *int    `json:"current_chart_position"`
	PeakChartPosition    *int    `json:"peak_chart_position"`
	LastWeekPosition     *int    `json:"last_week_position,omitempty"`
}

type Song struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Theme  string     `json:"theme"`
	Style  MusicStyle `json:"style"`
	Genre  Genre      `json:"genre"`
	Lyrics string     `json:"lyrics"`
	Beat   string     `json:"beat"`

	ProductionQuality    ProductionQuality `json:"production_quality"`
	ProductionInvestment int64             `json:"production_investment"`

	IsReleased bool `json:"is_released"`
	ChartTrack

	Sales         int64 `json:"sales"`
	WeeklyStreams int64 `json:"weekly_streams"`
	TotalEarnings int64 `json:"total_earnings"`
	FanReaction   int64 `json:"fan_reaction"`
	CriticScore   int64 `json:"critic_score"`
}

type AlbumType string

const (
	AlbumSingle  AlbumType = "Single"
	AlbumEP      AlbumType = "EP"
	AlbumMixtape AlbumType = "Mixtape"
	AlbumFull    AlbumType = "Album"
)

type Album struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        AlbumType `json:"type"`
	SongIDs     []string  `json:"song_ids"`
	CreatedTurn int       `json:"created_turn"`
}

type NPCArtist struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Genres     []Genre `json:"genres"`
	Popularity int     `json:"popularity"` // 1..10, seeds song strength
}

type NPCSong struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	ArtistID   string `json:"artist_id"`
	ArtistName string `json:"artist_name"` // denormalized for display only
	Genre      Genre  `json:"genre"`
	ChartTrack
}

type ActiveEvent struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	Choices       [3]string `json:"choices"`
	TurnTriggered int       `json:"turn_triggered"`
	Resolved      bool      `json:"resolved"`
	ChosenOption  *int      `json:"chosen_option,omitempty"`
}

// State is the full per-user game document. It is what gets persisted as
// one JSONB row per user; loaders start from InitialState so fields added
// in later schema revisions default instead of failing.
type State struct {
	Artist             *Artist       `json:"artist"`
	Songs              []Song        `json:"songs"`
	Albums             []Album       `json:"albums"`
	NPCArtists         []NPCArtist   `json:"npc_artists"`
	NPCSongs           []NPCSong     `json:"npc_songs"`
	CurrentTurn        int           `json:"current_turn"`
	ActiveEvents       []ActiveEvent `json:"active_events"`
	EventHistory       []ActiveEvent `json:"event_history"`
	SelectedActivityID string        `json:"selected_activity_id"`
	AutoAdvance        bool          `json:"auto_advance"`
	LyricThemes        []string      `json:"lyric_themes"`
}

type CreateArtistInput struct {
	Name      string
	Gender    Gender
	Genre     Genre
	Backstory string
}

type AddSongInput struct {
	Title  string
	Theme  string
	Style  MusicStyle
	Genre  Genre
	Lyrics string
	Beat   string
}

type AddAlbumInput struct {
	Title   string
	Type    AlbumType
	SongIDs []string
}

// InvestResult reports a production upgrade. Applied is false when the
// command was a validated no-op (insufficient funds, not an upgrade).
type InvestResult struct {
	Song    *Song `json:"song"`
	Debit   int64 `json:"debit"`
	Applied bool  `json:"applied"`
}

// ReleaseOutcome captures everything a release changed, for the caller's UI.
type ReleaseOutcome struct {
	Song           *Song     `json:"song"`
	ArtistDelta    StatDelta `json:"artist_delta"`
	InitialStreams int64     `json:"initial_streams"`
	Earnings       int64     `json:"earnings"`
	Applied        bool      `json:"applied"`
}

// TurnSummary is what advanceTurn hands back to the caller.
type TurnSummary struct {
	Turn            int   `json:"turn"`
	ActivityApplied bool  `json:"activity_applied"`
	ActivityCost    int64 `json:"activity_cost"`
	LivingCost      int64 `json:"living_cost"`
	StreamEarnings  int64 `json:"stream_earnings"`
	WeeklyStreams   int64 `json:"weekly_streams"`
	NPCSongSpawned  bool  `json:"npc_song_spawned"`
}

type ChartEntry struct {
	Rank         int    `json:"rank"`
	Title        string `json:"title"`
	ArtistName   string `json:"artist_name"`
	Genre        Genre  `json:"genre"`
	IsPlayer     bool   `json:"is_player"`
	WeeksOnChart int    `json:"weeks_on_chart"`
	Peak         int    `json:"peak"`
	LastWeek     *int   `json:"last_week"`
}

type Dashboard struct {
	Artist        *Artist `json:"artist"`
	Tier          string  `json:"tier"`
	Turn          int     `json:"turn"`
	DraftedSongs  int     `json:"drafted_songs"`
	ReleasedSongs int     `json:"released_songs"`
	ChartingSongs int     `json:"charting_songs"`
	BestPosition  *int    `json:"best_position"`
	TotalStreams  int64   `json:"total_streams"`
	TotalEarnings int64   `json:"total_earnings"`
	PendingEvents int     `json:"pending_events"`
	AutoAdvance   bool    `json:"auto_advance"`
}

var AllGenres = []Genre{
	"Pop", "Rock", "Hip Hop", "R&B", "Electronic", "Country", "Jazz",
	"Blues", "K-Pop", "Indie", "Folk", "Metal", "Rap",
}

var AllGenders = []Gender{"Male", "Female", "Non-binary", "Prefer not to say"}

var AllMusicStyles = []MusicStyle{
	"Love", "Party", "Struggle", "Conscious", "Hype", "Chill", "Experimental",
}

var DefaultLyricThemes = []string{
	"Heartbreak", "Success", "Betrayal", "Celebration",
	"Reflection", "Dreams", "Nightlife", "Social Justice",
}

// ArtistTier buckets fame the way the career ladder presents it.
func ArtistTier(fame int64) string {
	switch {
	case fame >= 90:
		return "legend"
	case fame >= 75:
		return "superstar"
	case fame >= 60:
		return "established"
	case fame >= 40:
		return "rising"
	case fame >= 20:
		return "indie"
	default:
		return "new"
	}
}
