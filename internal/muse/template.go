package muse

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// TemplateGenerator assembles text from fixed pools. It never fails, so it
// doubles as the fallback when no external generator is configured.
type TemplateGenerator struct {
	mu   sync.Mutex
	rand *rand.Rand
}

func NewTemplateGenerator(seed int64) *TemplateGenerator {
	return &TemplateGenerator{rand: rand.New(rand.NewSource(seed))}
}

func NewDefaultTemplateGenerator() *TemplateGenerator {
	return NewTemplateGenerator(time.Now().UnixNano())
}

var eventHooks = []string{
	"A late-night talk show wants %s for a live %s performance this week.",
	"A viral clip of %s is making the rounds and a %s playlist curator noticed.",
	"A rival artist name-dropped %s in an interview, and the %s scene is watching.",
	"A festival organizer offers %s a last-minute slot on the %s stage.",
	"A documentary crew asks %s for backstage access during the %s tour stop.",
	"An old collaborator resurfaces with an unreleased %s demo from the %s days.",
}

var boldChoices = []string{
	"Go all in and make it a moment",
	"Say yes and steal the spotlight",
	"Take the stage and own it",
	"Lean into the drama publicly",
}

var safeChoices = []string{
	"Accept quietly and keep expectations low",
	"Send a polite statement through management",
	"Test the waters with a short appearance",
	"Let the team handle the details",
}

var declineChoices = []string{
	"Pass and protect the schedule",
	"Decline and stay out of it",
	"Ignore it and keep working",
	"Turn it down, no comment",
}

var lyricImages = []string{
	"neon rain on the boulevard",
	"a phone that never rings twice",
	"smoke curling over the skyline",
	"gold dust on a broken mirror",
	"headlights crossing the state line",
	"an encore nobody asked to end",
}

var beatTextures = []string{
	"rolling 808s under a detuned piano loop",
	"four-on-the-floor pulse with airy synth stabs",
	"dusty boom-bap drums and a looped vocal chop",
	"half-time groove with sub-bass swells",
	"live-kit swing with muted funk guitar",
	"glassy arpeggios over a trap hat pattern",
}

func (g *TemplateGenerator) pick(pool []string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return pool[g.rand.Intn(len(pool))]
}

func (g *TemplateGenerator) GenerateEvent(_ context.Context, in EventInput) (EventCopy, error) {
	name := in.ArtistName
	if name == "" {
		name = "the artist"
	}
	genre := strings.ToLower(in.Genre)
	if genre == "" {
		genre = "music"
	}
	return EventCopy{
		Description: fmt.Sprintf(g.pick(eventHooks), name, genre),
		Choices: [3]string{
			g.pick(boldChoices),
			g.pick(safeChoices),
			g.pick(declineChoices),
		},
	}, nil
}

func (g *TemplateGenerator) GenerateLyrics(_ context.Context, in LyricsInput) (Lyrics, error) {
	theme := in.Theme
	if theme == "" {
		theme = "Reflection"
	}
	title := in.Title
	if title == "" {
		title = "Untitled"
	}
	low := strings.ToLower(theme)
	return Lyrics{
		Suggestions: []string{
			fmt.Sprintf("%s, %s", low, g.pick(lyricImages)),
			fmt.Sprintf("chasing %s past %s", low, g.pick(lyricImages)),
			fmt.Sprintf("%s fades like %s (%s)", low, g.pick(lyricImages), title),
		},
		BeatDescription: g.pick(beatTextures),
	}, nil
}
