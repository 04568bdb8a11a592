// Package sqlite stores saves and the high score in a local SQLite file,
// laid out as namespaced key/value preferences.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// Preference namespaces
const (
	savesNamespace = "jeopardy_saves"
	prefsNamespace = "jeopardy_prefs"
)

// Preference keys in prefsNamespace
const (
	keyHighScore       = "high_score"
	keyHighScorePlayer = "high_score_player"
)

const schema = `
CREATE TABLE IF NOT EXISTS preferences (
	namespace  TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (namespace, key)
)`

// Storage is a SQLite-backed implementation of the storage interface
type Storage struct {
	db *sql.DB
}

// New opens (creating if needed) the database at dsn.
// Use ":memory:" for a throwaway store.
func New(ctx context.Context, dsn string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func putPref(ctx context.Context, db execer, namespace, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO preferences (namespace, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		namespace, key, value)
	return err
}

func getPref(ctx context.Context, db queryer, namespace, key string) (string, bool, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE namespace = ? AND key = ?`, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Save operations

func (s *Storage) SaveMatch(ctx context.Context, name string, data []byte) error {
	return putPref(ctx, s.db, savesNamespace, name, string(data))
}

func (s *Storage) GetMatch(ctx context.Context, name string) ([]byte, error) {
	value, ok, err := getPref(ctx, s.db, savesNamespace, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrSaveNotFound
	}
	return []byte(value), nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM preferences WHERE namespace = ? ORDER BY key`, savesNamespace)
	if err != nil {
		return nil, err
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
	_, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE namespace = ? AND key = ?`, savesNamespace, name)
	return err
}

// High score operations

func readHighScore(ctx context.Context, db queryer) (model.HighScore, error) {
	hs := model.DefaultHighScore()
	raw, ok, err := getPref(ctx, db, prefsNamespace, keyHighScore)
	if err != nil {
		return model.HighScore{}, err
	}
	if ok {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return model.HighScore{}, fmt.Errorf("parse high score: %w", err)
		}
		hs.Score = score
	}
	player, ok, err := getPref(ctx, db, prefsNamespace, keyHighScorePlayer)
	if err != nil {
		return model.HighScore{}, err
	}
	if ok {
		hs.Player = player
	}
	return hs, nil
}

func (s *Storage) GetHighScore(ctx context.Context) (model.HighScore, error) {
	return readHighScore(ctx, s.db)
}

func (s *Storage) SubmitScore(ctx context.Context, player string, score int) (model.HighScore, bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.HighScore{}, false, err
	}
	defer tx.Rollback()

	current, err := readHighScore(ctx, tx)
	if err != nil {
		return model.HighScore{}, false, err
	}
	if !current.Beats(score) {
		return current, false, nil
	}
	if err := putPref(ctx, tx, prefsNamespace, keyHighScore, strconv.Itoa(score)); err != nil {
		return model.HighScore{}, false, err
	}
	if err := putPref(ctx, tx, prefsNamespace, keyHighScorePlayer, player); err != nil {
		return model.HighScore{}, false, err
	}
	if err := tx.Commit(); err != nil {
		return model.HighScore{}, false, err
	}
	return model.HighScore{Score: score, Player: player}, true, nil
}

func (s *Storage) ResetHighScore(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE namespace = ?`, prefsNamespace)
	return err
}
