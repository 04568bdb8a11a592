package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	saves     map[string][]byte
	highScore model.HighScore
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		saves:     make(map[string][]byte),
		highScore: model.DefaultHighScore(),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Save operations

func (s *Storage) SaveMatch(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[name] = append([]byte(nil), data...)
	return nil
}

func (s *Storage) GetMatch(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.saves[name]
	if !ok {
		return nil, model.ErrSaveNotFound
	}
	return append([]byte(nil), data...), nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.saves))
	for name := range s.saves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saves, name)
	return nil
}

// High score operations

func (s *Storage) GetHighScore(ctx context.Context) (model.HighScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highScore, nil
}

func (s *Storage) SubmitScore(ctx context.Context, player string, score int) (model.HighScore, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.highScore.Beats(score) {
		return s.highScore, false, nil
	}
	s.highScore = model.HighScore{Score: score, Player: player}
	return s.highScore, true, nil
}

func (s *Storage) ResetHighScore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highScore = model.DefaultHighScore()
	return nil
}

func (s *Storage) Close() error {
	return nil
}
