package game

// WeeklyActivity is one trainable slot per week. The player picks at most
// one; advanceTurn applies its cost and effect, then clears the selection.
type WeeklyActivity struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Cost        int64     `json:"cost"`
	Effect      StatDelta `json:"effect"`
}

// weeklyActivities is the fixed catalog. Effects are flat stat deltas run
// through ApplyDelta, so clamping rules hold no matter the combination.
var weeklyActivities = []WeeklyActivity{
	{
		ID:          "vocal-training",
		Name:        "Vocal Training",
		Description: "Work with a vocal coach to improve your singing technique.",
		Cost:        100,
		Effect:      StatDelta{Skills: 2},
	},
	{
		ID:          "stage-presence",
		Name:        "Stage Presence Workshop",
		Description: "Learn to command the stage and engage with your audience.",
		Cost:        150,
		Effect:      StatDelta{Skills: 2, Reputation: 1},
	},
	{
		ID:          "songwriting-session",
		Name:        "Songwriting Session",
		Description: "Develop your songwriting craft with professional writers.",
		Cost:        200,
		Effect:      StatDelta{Skills: 3},
	},
	{
		ID:          "studio-time",
		Name:        "Studio Production",
		Description: "Learn production techniques in a professional studio.",
		Cost:        300,
		Effect:      StatDelta{Skills: 2, Reputation: 2},
	},
	{
		ID:          "social-media-workshop",
		Name:        "Social Media Workshop",
		Description: "Master the art of social media engagement.",
		Cost:        75,
		Effect:      StatDelta{Fanbase: 150, Fame: 1},
	},
	{
		ID:          "business-mentoring",
		Name:        "Industry Mentoring",
		Description: "Learn the business side of music from industry veterans.",
		Cost:        250,
		Effect:      StatDelta{Skills: 1, Reputation: 3},
	},
	{
		ID:          "street-gig",
		Name:        "Street Performance",
		Description: "Busk downtown for tips and a little local buzz.",
		Cost:        0,
		Effect:      StatDelta{Money: 120, Fanbase: 40},
	},
}

// WeeklyActivities returns the catalog for display.
func WeeklyActivities() []WeeklyActivity {
	out := make([]WeeklyActivity, len(weeklyActivities))
	copy(out, weeklyActivities)
	return out
}

func activityByID(id string) (WeeklyActivity, bool) {
	for _, a := range weeklyActivities {
		if a.ID == id {
			return a, true
		}
	}
	return WeeklyActivity{}, false
}
