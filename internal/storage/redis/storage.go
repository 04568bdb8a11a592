package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// maxTxRetries bounds optimistic retries of the high score update
const maxTxRetries = 10

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
	sf     singleflight.Group
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Save operations

func (s *Storage) SaveMatch(ctx context.Context, name string, data []byte) error {
	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, saveKey(name), data, s.cfg.SaveTTL)
	pipe.SAdd(ctx, savesIndexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetMatch(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, saveKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSaveNotFound
		}
		return nil, err
	}
	return data, nil
}

// ListMatches returns save names in order. Names whose snapshot has expired
// are pruned from the index.
func (s *Storage) ListMatches(ctx context.Context) ([]string, error) {
	names, err := s.client.SMembers(ctx, savesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return []string{}, nil
	}

	pipe := s.client.Pipeline()
	exists := make([]*redis.IntCmd, len(names))
	for i, name := range names {
		exists[i] = pipe.Exists(ctx, saveKey(name))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	live := make([]string, 0, len(names))
	var stale []any
	for i, name := range names {
		if exists[i].Val() > 0 {
			live = append(live, name)
		} else {
			stale = append(stale, name)
		}
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, savesIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}

	sort.Strings(live)
	return live, nil
}

func (s *Storage) DeleteMatch(ctx context.Context, name string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, saveKey(name))
	pipe.SRem(ctx, savesIndexKey(), name)
	_, err := pipe.Exec(ctx)
	return err
}

// High score operations

type hashReader interface {
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
}

func readHighScore(ctx context.Context, r hashReader) (model.HighScore, error) {
	fields, err := r.HGetAll(ctx, highScoreKey()).Result()
	if err != nil {
		return model.HighScore{}, err
	}
	hs := model.DefaultHighScore()
	if raw, ok := fields[fieldHighScore]; ok {
		score, err := strconv.Atoi(raw)
		if err != nil {
			return model.HighScore{}, fmt.Errorf("parse high score: %w", err)
		}
		hs.Score = score
	}
	if player, ok := fields[fieldHighScorePlayer]; ok {
		hs.Player = player
	}
	return hs, nil
}

// GetHighScore reads the high score hash. Concurrent readers share one
// round trip.
func (s *Storage) GetHighScore(ctx context.Context) (model.HighScore, error) {
	// The read is shared by concurrent callers, so one caller cancelling
	// must not fail the others.
	shared := context.WithoutCancel(ctx)
	v, err, _ := s.sf.Do(highScoreKey(), func() (interface{}, error) {
		return readHighScore(shared, s.client)
	})
	if err != nil {
		return model.HighScore{}, err
	}
	return v.(model.HighScore), nil
}

func (s *Storage) SubmitScore(ctx context.Context, player string, score int) (model.HighScore, bool, error) {
	var (
		result  model.HighScore
		updated bool
	)
	txf := func(tx *redis.Tx) error {
		current, err := readHighScore(ctx, tx)
		if err != nil {
			return err
		}
		if !current.Beats(score) {
			result, updated = current, false
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, highScoreKey(), fieldHighScore, score, fieldHighScorePlayer, player)
			return nil
		})
		if err != nil {
			return err
		}
		result, updated = model.HighScore{Score: score, Player: player}, true
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, highScoreKey())
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return model.HighScore{}, false, err
		}
		return result, updated, nil
	}
	return model.HighScore{}, false, errors.New("high score update retries exhausted")
}

func (s *Storage) ResetHighScore(ctx context.Context) error {
	return s.client.Del(ctx, highScoreKey()).Err()
}
