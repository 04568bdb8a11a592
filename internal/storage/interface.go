package storage

import (
	"context"

	"github.com/mcoot/jeopardy-go2/internal/model"
)

// Storage defines the interface for data persistence.
// Saved matches are opaque encoded snapshots keyed by a free-form name.
type Storage interface {
	// Save operations
	SaveMatch(ctx context.Context, name string, data []byte) error
	GetMatch(ctx context.Context, name string) ([]byte, error)
	ListMatches(ctx context.Context) ([]string, error)
	DeleteMatch(ctx context.Context, name string) error

	// High score operations
	GetHighScore(ctx context.Context) (model.HighScore, error)
	// SubmitScore records score as the high score if it strictly beats the
	// current one. Returns the high score after the call and whether it changed.
	SubmitScore(ctx context.Context, player string, score int) (model.HighScore, bool, error)
	ResetHighScore(ctx context.Context) error

	Close() error
}
