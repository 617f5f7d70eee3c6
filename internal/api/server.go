package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fameforge/internal/auth"
	"fameforge/internal/config"
	"fameforge/internal/game"
	"fameforge/internal/muse"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const userContextKey contextKey = "user"

type UserContext struct {
	UserID string
	Email  string
	Token  string
}

type Server struct {
	cfg  config.APIConfig
	log  *slog.Logger
	auth *auth.Client
	game *game.Service
	muse muse.Generator
	mux  *chi.Mux
}

func New(cfg config.APIConfig, logger *slog.Logger, authClient *auth.Client, gameSvc *game.Service, gen muse.Generator) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if gen == nil {
		gen = muse.NewDefaultTemplateGenerator()
	}
	s := &Server{
		cfg:  cfg,
		log:  logger,
		auth: authClient,
		game: gameSvc,
		muse: gen,
		mux:  chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	r := s.mux
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/auth/signup", s.handleSignup)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/catalog", s.handleCatalog)

		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)
			r.Post("/artist", s.handleCreateArtist)
			r.Post("/artist/stats", s.handleArtistStats)
			r.Get("/state", s.handleState)
			r.Get("/dashboard", s.handleDashboard)

			r.Post("/songs", s.handleAddSong)
			r.Post("/songs/forge", s.handleForgeSong)
			r.Post("/songs/{id}/invest", s.handleInvest)
			r.Post("/songs/{id}/release", s.handleRelease)
			r.Post("/albums", s.handleAddAlbum)

			r.Get("/chart", s.handleChart)
			r.Post("/activity", s.handleSelectActivity)
			r.Post("/turn/advance", s.handleAdvanceTurn)
			r.Post("/turn/auto", s.handleAutoAdvance)

			r.Post("/events/generate", s.handleGenerateEvent)
			r.Post("/events/{id}/resolve", s.handleResolveEvent)
		})
	})
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		user, err := s.auth.VerifyAccessToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, UserContext{
			UserID: user.ID,
			Email:  user.Email,
			Token:  token,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFromContext(ctx context.Context) (UserContext, error) {
	v := ctx.Value(userContextKey)
	user, ok := v.(UserContext)
	if !ok || user.UserID == "" {
		return UserContext{}, errors.New("missing auth context")
	}
	return user, nil
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := s.auth.SignUp(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	session, err := s.auth.Login(r.Context(), strings.TrimSpace(in.Email), strings.TrimSpace(in.Password))
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, session)
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"genres":       game.AllGenres,
		"genders":      game.AllGenders,
		"music_styles": game.AllMusicStyles,
		"lyric_themes": game.DefaultLyricThemes,
		"activities":   game.WeeklyActivities(),
	})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Name      string `json:"name"`
		Gender    string `json:"gender"`
		Genre     string `json:"genre"`
		Backstory string `json:"backstory"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Name) == "" {
		writeError(w, http.StatusBadRequest, "artist name is required")
		return
	}
	if strings.TrimSpace(in.Genre) == "" {
		writeError(w, http.StatusBadRequest, "genre is required")
		return
	}
	artist, err := s.game.CreateArtist(r.Context(), user.UserID, game.CreateArtistInput{
		Name:      strings.TrimSpace(in.Name),
		Gender:    game.Gender(in.Gender),
		Genre:     game.Genre(in.Genre),
		Backstory: strings.TrimSpace(in.Backstory),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, artist)
}

func (s *Server) handleArtistStats(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in game.StatDelta
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	artist, err := s.game.UpdateArtistStats(r.Context(), user.UserID, in)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artist)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	st, err := s.game.State(r.Context(), user.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	out, err := s.game.Dashboard(r.Context(), user.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Title  string `json:"title"`
		Theme  string `json:"theme"`
		Style  string `json:"style"`
		Genre  string `json:"genre"`
		Lyrics string `json:"lyrics"`
		Beat   string `json:"beat"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "song title is required")
		return
	}
	song, err := s.game.AddSong(r.Context(), user.UserID, game.AddSongInput{
		Title:  strings.TrimSpace(in.Title),
		Theme:  strings.TrimSpace(in.Theme),
		Style:  game.MusicStyle(in.Style),
		Genre:  game.Genre(in.Genre),
		Lyrics: in.Lyrics,
		Beat:   in.Beat,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, song)
}

func (s *Server) handleForgeSong(w http.ResponseWriter, r *http.Request) {
	if _, err := userFromContext(r.Context()); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in muse.LyricsInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	out, err := s.muse.GenerateLyrics(r.Context(), in)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleInvest(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Quality string `json:"quality"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	songID := chi.URLParam(r, "id")
	res, err := s.game.InvestInProduction(r.Context(), user.UserID, songID, game.ProductionQuality(in.Quality))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInvalidUpgrade),
		errors.Is(err, game.ErrAlreadyReleased):
		// Quiet no-op: nothing changed, the caller learns why.
		writeJSON(w, http.StatusOK, map[string]any{"applied": false, "reason": err.Error()})
	default:
		writeDomainError(w, err)
	}
}

func (s *Server) handleRelease(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	songID := chi.URLParam(r, "id")
	out, err := s.game.ReleaseSong(r.Context(), user.UserID, songID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, out)
	case errors.Is(err, game.ErrAlreadyReleased):
		writeJSON(w, http.StatusOK, map[string]any{"applied": false, "reason": err.Error()})
	default:
		writeDomainError(w, err)
	}
}

func (s *Server) handleAddAlbum(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Title   string   `json:"title"`
		Type    string   `json:"type"`
		SongIDs []string `json:"song_ids"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "album title is required")
		return
	}
	album, err := s.game.AddAlbum(r.Context(), user.UserID, game.AddAlbumInput{
		Title:   strings.TrimSpace(in.Title),
		Type:    game.AlbumType(in.Type),
		SongIDs: in.SongIDs,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, album)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	entries, err := s.game.Chart(r.Context(), user.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleSelectActivity(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		ActivityID string `json:"activity_id"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.game.SelectActivity(r.Context(), user.UserID, strings.TrimSpace(in.ActivityID)); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"selected": strings.TrimSpace(in.ActivityID)})
}

func (s *Server) handleAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	sum, err := s.game.AdvanceTurn(r.Context(), user.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleAutoAdvance(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Enabled bool `json:"enabled"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.game.SetAutoAdvance(r.Context(), user.UserID, in.Enabled); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"auto_advance": in.Enabled})
}

func (s *Server) handleGenerateEvent(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	st, err := s.game.State(r.Context(), user.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if st.Artist == nil {
		writeDomainError(w, game.ErrNoArtist)
		return
	}
	copyText, err := s.muse.GenerateEvent(r.Context(), muse.EventInput{
		ArtistName: st.Artist.Name,
		Genre:      string(st.Artist.Genre),
		Fame:       st.Artist.Fame,
		Reputation: st.Artist.Reputation,
		Turn:       st.CurrentTurn,
	})
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	ev, err := s.game.AddEvent(r.Context(), user.UserID, copyText.Description, copyText.Choices)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleResolveEvent(w http.ResponseWriter, r *http.Request) {
	user, err := userFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	var in struct {
		Choice int `json:"choice"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	eventID := chi.URLParam(r, "id")
	delta, err := s.game.ResolveEvent(r.Context(), user.UserID, eventID, in.Choice)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"applied": true, "delta": delta})
	case errors.Is(err, game.ErrEventNotFound):
		writeJSON(w, http.StatusOK, map[string]any{"applied": false, "reason": err.Error()})
	default:
		writeDomainError(w, err)
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNoArtist):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrInsufficientFunds),
		errors.Is(err, game.ErrInvalidUpgrade),
		errors.Is(err, game.ErrInvalidChoice),
		errors.Is(err, game.ErrActivityNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrSongNotFound), errors.Is(err, game.ErrEventNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrAlreadyReleased):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, game.ErrUnauthorized):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": strings.TrimSpace(message)})
}

func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
