package game

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service persists one game document per user and funnels every mutation
// through the engine inside a row-locked transaction. Concurrent requests
// for the same user serialize on the row lock, so command application is
// read-modify-write safe without any in-process locking.
type Service struct {
	db  *pgxpool.Pool
	log *slog.Logger
	eng *Engine
}

func NewService(db *pgxpool.Pool, logger *slog.Logger, eng *Engine) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if eng == nil {
		eng = NewEngine(DefaultBalance(), nil)
	}
	return &Service{db: db, log: logger, eng: eng}
}

func (s *Service) Engine() *Engine {
	return s.eng
}

func (s *Service) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS game`,
		`CREATE TABLE IF NOT EXISTS game.saves (
			user_id    text PRIMARY KEY,
			state      jsonb NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS saves_auto_advance_idx
			ON game.saves ((state->>'auto_advance'))
			WHERE state->>'auto_advance' = 'true'`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// decodeState unmarshals a stored document on top of the initial template,
// so fields added after the row was written keep their defaults. A corrupt
// document is logged and replaced with a fresh save rather than bricking
// the account.
func (s *Service) decodeState(userID string, raw []byte) State {
	st := InitialState()
	if len(raw) == 0 {
		return st
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		s.log.Warn("discarding corrupt save", "user_id", userID, "error", err)
		return InitialState()
	}
	return st
}

func (s *Service) loadForUpdate(ctx context.Context, tx pgx.Tx, userID string) (State, error) {
	var raw []byte
	err := tx.QueryRow(ctx, `
		SELECT state
		FROM game.saves
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return InitialState(), nil
	}
	if err != nil {
		return State{}, err
	}
	return s.decodeState(userID, raw), nil
}

func (s *Service) store(ctx context.Context, tx pgx.Tx, userID string, st *State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO game.saves (user_id, state, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE
		SET state = EXCLUDED.state, updated_at = now()
	`, userID, raw)
	return err
}

// mutate runs fn against the user's locked save and persists the result.
// If fn returns an error the transaction rolls back and nothing is written.
func (s *Service) mutate(ctx context.Context, userID string, fn func(*State) error) error {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	st, err := s.loadForUpdate(ctx, tx, userID)
	if err != nil {
		return err
	}
	if err := fn(&st); err != nil {
		return err
	}
	if err := s.store(ctx, tx, userID, &st); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// State returns the user's current document without taking the row lock.
func (s *Service) State(ctx context.Context, userID string) (State, error) {
	var raw []byte
	err := s.db.QueryRow(ctx, `
		SELECT state FROM game.saves WHERE user_id = $1
	`, userID).Scan(&raw)
	if err == pgx.ErrNoRows {
		return InitialState(), nil
	}
	if err != nil {
		return State{}, err
	}
	return s.decodeState(userID, raw), nil
}

func (s *Service) Dashboard(ctx context.Context, userID string) (Dashboard, error) {
	st, err := s.State(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	return BuildDashboard(&st), nil
}

func (s *Service) Chart(ctx context.Context, userID string) ([]ChartEntry, error) {
	st, err := s.State(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Chart(&st), nil
}

func (s *Service) CreateArtist(ctx context.Context, userID string, in CreateArtistInput) (Artist, error) {
	var out Artist
	err := s.mutate(ctx, userID, func(st *State) error {
		out = *s.eng.CreateArtist(st, userID, in)
		return nil
	})
	if err == nil {
		s.log.Info("artist created", "user_id", userID, "name", out.Name, "genre", out.Genre)
	}
	return out, err
}

func (s *Service) AddSong(ctx context.Context, userID string, in AddSongInput) (Song, error) {
	var out Song
	err := s.mutate(ctx, userID, func(st *State) error {
		song, err := s.eng.AddSong(st, in)
		if err != nil {
			return err
		}
		out = *song
		return nil
	})
	return out, err
}

func (s *Service) AddAlbum(ctx context.Context, userID string, in AddAlbumInput) (Album, error) {
	var out Album
	err := s.mutate(ctx, userID, func(st *State) error {
		album, err := s.eng.AddAlbum(st, in)
		if err != nil {
			return err
		}
		out = *album
		return nil
	})
	return out, err
}

func (s *Service) InvestInProduction(ctx context.Context, userID, songID string, target ProductionQuality) (InvestResult, error) {
	var out InvestResult
	err := s.mutate(ctx, userID, func(st *State) error {
		res, err := s.eng.InvestInProduction(st, songID, target)
		if err != nil {
			return err
		}
		out = res
		out.Song = copySong(res.Song)
		return nil
	})
	return out, err
}

func (s *Service) ReleaseSong(ctx context.Context, userID, songID string) (ReleaseOutcome, error) {
	var out ReleaseOutcome
	err := s.mutate(ctx, userID, func(st *State) error {
		res, err := s.eng.ReleaseSong(st, songID)
		if err != nil {
			return err
		}
		out = res
		out.Song = copySong(res.Song)
		return nil
	})
	if err == nil {
		s.log.Info("song released",
			"user_id", userID,
			"song_id", songID,
			"chart_score", out.Song.ChartScore,
			"initial_streams", out.InitialStreams)
	}
	return out, err
}

func (s *Service) SelectActivity(ctx context.Context, userID, activityID string) error {
	return s.mutate(ctx, userID, func(st *State) error {
		return s.eng.SelectActivity(st, activityID)
	})
}

func (s *Service) SetAutoAdvance(ctx context.Context, userID string, enabled bool) error {
	return s.mutate(ctx, userID, func(st *State) error {
		return s.eng.SetAutoAdvance(st, enabled)
	})
}

func (s *Service) AdvanceTurn(ctx context.Context, userID string) (TurnSummary, error) {
	var out TurnSummary
	err := s.mutate(ctx, userID, func(st *State) error {
		sum, err := s.eng.AdvanceTurn(st)
		if err != nil {
			return err
		}
		out = sum
		return nil
	})
	if err == nil {
		s.log.Info("turn advanced", "user_id", userID, "turn", out.Turn,
			"stream_earnings", out.StreamEarnings, "npc_spawned", out.NPCSongSpawned)
	}
	return out, err
}

func (s *Service) AddEvent(ctx context.Context, userID, description string, choices [3]string) (ActiveEvent, error) {
	var out ActiveEvent
	err := s.mutate(ctx, userID, func(st *State) error {
		ev, err := s.eng.AddEvent(st, description, choices)
		if err != nil {
			return err
		}
		out = *ev
		return nil
	})
	return out, err
}

func (s *Service) ResolveEvent(ctx context.Context, userID, eventID string, choice int) (StatDelta, error) {
	var out StatDelta
	err := s.mutate(ctx, userID, func(st *State) error {
		delta, err := s.eng.ResolveEvent(st, eventID, choice)
		if err != nil {
			return err
		}
		out = delta
		return nil
	})
	return out, err
}

func (s *Service) UpdateArtistStats(ctx context.Context, userID string, delta StatDelta) (Artist, error) {
	var out Artist
	err := s.mutate(ctx, userID, func(st *State) error {
		if err := s.eng.UpdateArtistStats(st, delta); err != nil {
			return err
		}
		out = *st.Artist
		return nil
	})
	return out, err
}

// ListAutoAdvance returns the user IDs flagged for worker-driven turns.
func (s *Service) ListAutoAdvance(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `
		SELECT user_id
		FROM game.saves
		WHERE state->>'auto_advance' = 'true'
		ORDER BY user_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// copySong detaches a song snapshot from the transaction-scoped state so
// results stay valid after the state goes out of scope.
func copySong(s *Song) *Song {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
