package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface.
// The schema comes from Migrate.
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to Postgres
func New(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Storage{pool: pool}, nil
}

// NewWithPool creates a storage over an existing pool
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close closes the connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Save operations

func (s *Storage) SaveMatch(ctx context.Context, name string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO match_saves (name, data, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		name, string(data))
	if err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, name string) ([]byte, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM match_saves WHERE name=$1`, name).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load match: %w", err)
	}
	return raw, nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM match_saves ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *Storage) DeleteMatch(ctx context.Context, name string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM match_saves WHERE name=$1`, name)
	return err
}

// High score operations

func (s *Storage) GetHighScore(ctx context.Context) (model.HighScore, error) {
	hs := model.DefaultHighScore()
	err := s.pool.QueryRow(ctx, `SELECT score, player FROM high_score WHERE id=1`).Scan(&hs.Score, &hs.Player)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.DefaultHighScore(), nil
	}
	if err != nil {
		return model.HighScore{}, fmt.Errorf("load high score: %w", err)
	}
	return hs, nil
}

func (s *Storage) SubmitScore(ctx context.Context, player string, score int) (model.HighScore, bool, error) {
	if !model.DefaultHighScore().Beats(score) {
		hs, err := s.GetHighScore(ctx)
		return hs, false, err
	}

	var hs model.HighScore
	err := s.pool.QueryRow(ctx, `
		INSERT INTO high_score (id, score, player) VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET score = EXCLUDED.score, player = EXCLUDED.player
		WHERE high_score.score < EXCLUDED.score
		RETURNING score, player`, score, player).Scan(&hs.Score, &hs.Player)
	if errors.Is(err, pgx.ErrNoRows) {
		current, err := s.GetHighScore(ctx)
		return current, false, err
	}
	if err != nil {
		return model.HighScore{}, false, fmt.Errorf("submit score: %w", err)
	}
	return hs, true, nil
}

func (s *Storage) ResetHighScore(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM high_score`)
	return err
}
