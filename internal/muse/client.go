package muse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPGenerator calls an external text service. Failures come back to the
// caller as-is; there is no retry and no silent fallback, the API decides
// what to do with a dead generator.
type HTTPGenerator struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPGenerator(baseURL string) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (g *HTTPGenerator) GenerateEvent(ctx context.Context, in EventInput) (EventCopy, error) {
	var out EventCopy
	if err := g.postJSON(ctx, "/generate/event", in, &out); err != nil {
		return EventCopy{}, err
	}
	if out.Description == "" {
		return EventCopy{}, fmt.Errorf("generator returned empty event")
	}
	return out, nil
}

func (g *HTTPGenerator) GenerateLyrics(ctx context.Context, in LyricsInput) (Lyrics, error) {
	var out Lyrics
	if err := g.postJSON(ctx, "/generate/lyrics", in, &out); err != nil {
		return Lyrics{}, err
	}
	if len(out.Suggestions) == 0 {
		return Lyrics{}, fmt.Errorf("generator returned no lyric suggestions")
	}
	return out, nil
}

func (g *HTTPGenerator) postJSON(ctx context.Context, path string, in any, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("muse request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("muse status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode muse response: %w", err)
	}
	return nil
}
