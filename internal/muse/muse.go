// Package muse produces the game's flavor text: lyric sketches, beat
// descriptions and three-choice career events. The built-in generator works
// from word pools; an external service can be swapped in via the HTTP
// client when richer text is wanted. Either way the output is opaque
// strings, the simulation never parses them.
package muse

import "context"

type EventInput struct {
	ArtistName string `json:"artist_name"`
	Genre      string `json:"genre"`
	Fame       int64  `json:"fame"`
	Reputation int64  `json:"reputation"`
	Turn       int    `json:"turn"`
}

// EventCopy is a three-way career dilemma. Choice order is meaningful:
// index 0 is the bold option, 1 the safe one, 2 the decline.
type EventCopy struct {
	Description string    `json:"description"`
	Choices     [3]string `json:"choices"`
}

type LyricsInput struct {
	Title string `json:"title"`
	Theme string `json:"theme"`
	Genre string `json:"genre"`
	Style string `json:"style"`
}

// Lyrics is a songwriting starter kit: a few lines to riff on and a beat
// sketch, never a finished song.
type Lyrics struct {
	Suggestions     []string `json:"lyric_suggestions"`
	BeatDescription string   `json:"beat_description"`
}

type Generator interface {
	GenerateEvent(ctx context.Context, in EventInput) (EventCopy, error)
	GenerateLyrics(ctx context.Context, in LyricsInput) (Lyrics, error)
}
