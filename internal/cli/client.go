package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fameforge/internal/auth"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) Signup(ctx context.Context, email, password string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) Catalog(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/catalog", "", nil, &out)
	return out, err
}

func (c *Client) CreateArtist(ctx context.Context, accessToken, name, gender, genre, backstory string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/artist", accessToken, map[string]any{
		"name":      name,
		"gender":    gender,
		"genre":     genre,
		"backstory": backstory,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, accessToken string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/state", accessToken, nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, accessToken string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/dashboard", accessToken, nil, &out)
	return out, err
}

func (c *Client) AddSong(ctx context.Context, accessToken string, song map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/songs", accessToken, song, &out)
	return out, err
}

func (c *Client) ForgeSong(ctx context.Context, accessToken, title, theme, genre, style string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/songs/forge", accessToken, map[string]any{
		"title": title,
		"theme": theme,
		"genre": genre,
		"style": style,
	}, &out)
	return out, err
}

func (c *Client) Invest(ctx context.Context, accessToken, songID, quality string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/songs/"+url.PathEscape(songID)+"/invest", accessToken, map[string]any{
		"quality": quality,
	}, &out)
	return out, err
}

func (c *Client) Release(ctx context.Context, accessToken, songID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/songs/"+url.PathEscape(songID)+"/release", accessToken, map[string]any{}, &out)
	return out, err
}

func (c *Client) AddAlbum(ctx context.Context, accessToken, title, albumType string, songIDs []string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/albums", accessToken, map[string]any{
		"title":    title,
		"type":     albumType,
		"song_ids": songIDs,
	}, &out)
	return out, err
}

func (c *Client) Chart(ctx context.Context, accessToken string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/chart", accessToken, nil, &out)
	return out, err
}

func (c *Client) SelectActivity(ctx context.Context, accessToken, activityID string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/activity", accessToken, map[string]any{
		"activity_id": activityID,
	}, &out)
	return out, err
}

func (c *Client) AdvanceTurn(ctx context.Context, accessToken string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/turn/advance", accessToken, map[string]any{}, &out)
	return out, err
}

func (c *Client) SetAutoAdvance(ctx context.Context, accessToken string, enabled bool) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/turn/auto", accessToken, map[string]any{
		"enabled": enabled,
	}, &out)
	return out, err
}

func (c *Client) GenerateEvent(ctx context.Context, accessToken string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/events/generate", accessToken, map[string]any{}, &out)
	return out, err
}

func (c *Client) ResolveEvent(ctx context.Context, accessToken, eventID string, choice int) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/events/"+url.PathEscape(eventID)+"/resolve", accessToken, map[string]any{
		"choice": choice,
	}, &out)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, accessToken string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
