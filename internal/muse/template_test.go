package muse

import (
	"context"
	"strings"
	"testing"
)

func TestTemplateGeneratorEvent(t *testing.T) {
	g := NewTemplateGenerator(1)
	out, err := g.GenerateEvent(context.Background(), EventInput{
		ArtistName: "Nova Reyes",
		Genre:      "Pop",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out.Description, "Nova Reyes") {
		t.Fatalf("description should mention the artist: %q", out.Description)
	}
	for i, c := range out.Choices {
		if c == "" {
			t.Fatalf("choice %d is empty", i)
		}
	}
}

func TestTemplateGeneratorEventDefaults(t *testing.T) {
	g := NewTemplateGenerator(1)
	out, err := g.GenerateEvent(context.Background(), EventInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.Description == "" {
		t.Fatalf("empty input should still produce copy")
	}
}

func TestTemplateGeneratorLyrics(t *testing.T) {
	g := NewTemplateGenerator(2)
	out, err := g.GenerateLyrics(context.Background(), LyricsInput{
		Title: "Midnight Letters",
		Theme: "Heartbreak",
		Genre: "R&B",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out.Suggestions) != 3 {
		t.Fatalf("want 3 lyric suggestions, got %d", len(out.Suggestions))
	}
	themed := false
	for _, s := range out.Suggestions {
		if s == "" {
			t.Fatalf("empty suggestion in %v", out.Suggestions)
		}
		if strings.Contains(s, "heartbreak") {
			themed = true
		}
	}
	if !themed {
		t.Fatalf("suggestions should work the theme in: %v", out.Suggestions)
	}
	if out.BeatDescription == "" {
		t.Fatalf("beat description missing")
	}
}
