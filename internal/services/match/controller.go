package match

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mcoot/jeopardy-go2/internal/codec"
	"github.com/mcoot/jeopardy-go2/internal/dependencies/clock"
	"github.com/mcoot/jeopardy-go2/internal/dependencies/random"
	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/services/engine"
	"github.com/mcoot/jeopardy-go2/internal/services/scoring"
	"github.com/mcoot/jeopardy-go2/internal/storage"
)

// DefaultMinPlayers is the fewest players allowed to start a match
const DefaultMinPlayers = 2

// QuestionView is the active question as shown to players
type QuestionView struct {
	Cell         model.Cell
	Prompt       string
	Choices      []string
	PlayerIndex  int
	Remaining    float64
	WholeSeconds int
	Urgency      model.Urgency
	Progress     float64
}

// View is a read-only picture of a live match
type View struct {
	ID                 string
	State              engine.State
	Players            []model.Player
	CurrentPlayerIndex int
	Board              [][]bool
	AnsweredCount      int
	Active             *QuestionView
	LastResolution     *engine.Resolution
	Result             *scoring.Result
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// liveMatch is one running engine. Its mutex serialises all access.
type liveMatch struct {
	mu sync.Mutex

	id             string
	engine         *engine.Engine
	lastSync       time.Time
	lastResolution *engine.Resolution
	result         *scoring.Result
	createdAt      time.Time
	updatedAt      time.Time
}

// Controller owns the live matches and their saves
type Controller struct {
	storage    storage.Storage
	questions  engine.QuestionSource
	scoring    *scoring.Service
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	minPlayers int

	mu      sync.RWMutex
	matches map[string]*liveMatch
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	questions engine.QuestionSource,
	scoring *scoring.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	minPlayers int,
) *Controller {
	if minPlayers < 1 {
		minPlayers = DefaultMinPlayers
	}
	return &Controller{
		storage:    storage,
		questions:  questions,
		scoring:    scoring,
		clock:      clock,
		random:     random,
		logger:     logger,
		minPlayers: minPlayers,
		matches:    make(map[string]*liveMatch),
	}
}

// MinPlayers returns the configured minimum roster size
func (c *Controller) MinPlayers() int {
	return c.minPlayers
}

// CreateMatch starts a new match for the named players
func (c *Controller) CreateMatch(ctx context.Context, names []string) (*View, error) {
	if len(names) < c.minPlayers {
		return nil, fmt.Errorf("%w: need at least %d", model.ErrInsufficientPlayers, c.minPlayers)
	}
	eng, err := engine.New(c.questions, names)
	if err != nil {
		return nil, err
	}

	m := c.register(eng)
	c.logger.Info("match created",
		slog.String("match_id", m.id),
		slog.Int("player_count", len(names)),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view(), nil
}

// GetMatch returns the current view of a match
func (c *Controller) GetMatch(ctx context.Context, id string) (*View, error) {
	return c.withMatch(ctx, id, func(m *liveMatch) error { return nil })
}

// SelectCell opens a question for the current player
func (c *Controller) SelectCell(ctx context.Context, id string, category model.Category, value int) (*View, error) {
	return c.withMatch(ctx, id, func(m *liveMatch) error {
		cell, err := model.CellFor(category, value)
		if err != nil {
			return fmt.Errorf("%w: %v", model.ErrInvalidCell, err)
		}
		if _, err := m.engine.SelectCell(cell); err != nil {
			return err
		}
		m.lastSync = c.clock.Now()
		m.lastResolution = nil
		return nil
	})
}

// SubmitAnswer answers the active question
func (c *Controller) SubmitAnswer(ctx context.Context, id string, choice int) (*View, error) {
	return c.withMatch(ctx, id, func(m *liveMatch) error {
		res, err := m.engine.SubmitChoice(choice)
		if err != nil {
			return err
		}
		c.resolved(ctx, m, res)
		return nil
	})
}

// PlayAgain resets a finished match with the same players
func (c *Controller) PlayAgain(ctx context.Context, id string) (*View, error) {
	return c.withMatch(ctx, id, func(m *liveMatch) error {
		if err := m.engine.PlayAgain(); err != nil {
			return err
		}
		m.lastResolution = nil
		m.result = nil
		c.logger.Info("match restarted", slog.String("match_id", m.id))
		return nil
	})
}

// EndMatch discards a live match
func (c *Controller) EndMatch(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.matches[id]; !ok {
		return model.ErrMatchNotFound
	}
	delete(c.matches, id)
	c.logger.Info("match ended", slog.String("match_id", id))
	return nil
}

// SaveMatch stores a snapshot of the match under name
func (c *Controller) SaveMatch(ctx context.Context, id, name string) (*View, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidSaveName
	}
	return c.withMatch(ctx, id, func(m *liveMatch) error {
		data, err := codec.Encode(m.engine.Snapshot())
		if err != nil {
			return err
		}
		if err := c.storage.SaveMatch(ctx, name, data); err != nil {
			c.logger.Error("failed to save match",
				slog.String("match_id", m.id),
				slog.String("save", name),
				slog.String("error", err.Error()),
			)
			return err
		}
		c.logger.Info("match saved",
			slog.String("match_id", m.id),
			slog.String("save", name),
		)
		return nil
	})
}

// RestoreMatch replaces a live match's state with a save. On any failure
// the live match is left as it was.
func (c *Controller) RestoreMatch(ctx context.Context, id, name string) (*View, error) {
	return c.withMatch(ctx, id, func(m *liveMatch) error {
		state, err := c.loadSave(ctx, name)
		if err != nil {
			return err
		}
		if err := m.engine.Restore(state); err != nil {
			return err
		}
		m.lastResolution = nil
		m.result = nil
		m.lastSync = c.clock.Now()
		c.logger.Info("match restored",
			slog.String("match_id", m.id),
			slog.String("save", name),
		)
		if m.engine.State() == engine.StateRoundComplete {
			c.completed(ctx, m)
		}
		return nil
	})
}

// LoadMatch starts a new live match from a save
func (c *Controller) LoadMatch(ctx context.Context, name string) (*View, error) {
	state, err := c.loadSave(ctx, name)
	if err != nil {
		return nil, err
	}
	eng, err := engine.FromSnapshot(c.questions, state)
	if err != nil {
		return nil, err
	}

	m := c.register(eng)
	c.logger.Info("match loaded",
		slog.String("match_id", m.id),
		slog.String("save", name),
	)

	m.mu.Lock()
	defer m.mu.Unlock()
	if eng.State() == engine.StateRoundComplete {
		c.completed(ctx, m)
	}
	return m.view(), nil
}

// ListSaves returns all save names in order
func (c *Controller) ListSaves(ctx context.Context) ([]string, error) {
	return c.storage.ListMatches(ctx)
}

// DeleteSave removes a save
func (c *Controller) DeleteSave(ctx context.Context, name string) error {
	if err := c.storage.DeleteMatch(ctx, name); err != nil {
		return err
	}
	c.logger.Info("save deleted", slog.String("save", name))
	return nil
}

// HighScore returns the recorded high score
func (c *Controller) HighScore(ctx context.Context) (model.HighScore, error) {
	return c.scoring.HighScore(ctx)
}

// ResetHighScore clears the recorded high score
func (c *Controller) ResetHighScore(ctx context.Context) error {
	return c.scoring.ResetHighScore(ctx)
}

func (c *Controller) loadSave(ctx context.Context, name string) (model.MatchState, error) {
	data, err := c.storage.GetMatch(ctx, name)
	if err != nil {
		return model.MatchState{}, err
	}
	state, err := codec.Decode(data)
	if err != nil {
		c.logger.Warn("unreadable save",
			slog.String("save", name),
			slog.String("error", err.Error()),
		)
		return model.MatchState{}, fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}
	return state, nil
}

func (c *Controller) register(eng *engine.Engine) *liveMatch {
	now := c.clock.Now()
	m := &liveMatch{
		id:        c.random.UUID(),
		engine:    eng,
		lastSync:  now,
		createdAt: now,
		updatedAt: now,
	}
	c.mu.Lock()
	c.matches[m.id] = m
	c.mu.Unlock()
	return m
}

// withMatch locks a live match, catches its timer up to the clock, runs fn
// and returns the resulting view.
func (c *Controller) withMatch(ctx context.Context, id string, fn func(m *liveMatch) error) (*View, error) {
	c.mu.RLock()
	m, ok := c.matches[id]
	c.mu.RUnlock()
	if !ok {
		return nil, model.ErrMatchNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c.syncTimer(ctx, m)
	if err := fn(m); err != nil {
		return nil, err
	}
	m.updatedAt = c.clock.Now()
	return m.view(), nil
}

func (c *Controller) syncTimer(ctx context.Context, m *liveMatch) {
	now := c.clock.Now()
	elapsed := now.Sub(m.lastSync).Seconds()
	m.lastSync = now
	if res := m.engine.Tick(elapsed); res != nil {
		c.logger.Info("answer timed out",
			slog.String("match_id", m.id),
			slog.String("player", res.PlayerName),
		)
		c.resolved(ctx, m, res)
	}
}

func (c *Controller) resolved(ctx context.Context, m *liveMatch, res *engine.Resolution) {
	m.lastResolution = res
	if res.RoundComplete {
		c.completed(ctx, m)
	}
}

// completed scores a match that has reached RoundComplete
func (c *Controller) completed(ctx context.Context, m *liveMatch) {
	result, err := c.scoring.ScoreMatch(ctx, m.engine.Players())
	if err != nil {
		c.logger.Error("failed to record high score",
			slog.String("match_id", m.id),
			slog.String("error", err.Error()),
		)
	}
	m.result = result
	c.logger.Info("match completed",
		slog.String("match_id", m.id),
		slog.Any("winners", result.Outcome.Winners),
		slog.Bool("tie", result.Outcome.Tie),
	)
}

func (m *liveMatch) view() *View {
	v := &View{
		ID:                 m.id,
		State:              m.engine.State(),
		Players:            m.engine.Players(),
		CurrentPlayerIndex: m.engine.CurrentPlayerIndex(),
		Board:              m.engine.Board().Grid(),
		AnsweredCount:      m.engine.AnsweredCount(),
		LastResolution:     m.lastResolution,
		Result:             m.result,
		CreatedAt:          m.createdAt,
		UpdatedAt:          m.updatedAt,
	}
	if a := m.engine.Active(); a != nil {
		v.Active = &QuestionView{
			Cell:         a.Cell,
			Prompt:       a.Question.Prompt,
			Choices:      append([]string(nil), a.Question.Choices...),
			PlayerIndex:  a.PlayerIndex,
			Remaining:    a.Remaining(),
			WholeSeconds: a.WholeSeconds(),
			Urgency:      a.Urgency(),
			Progress:     a.Progress(),
		}
	}
	return v
}

// ControllerInterface is the match API used by transports
type ControllerInterface interface {
	MinPlayers() int
	CreateMatch(ctx context.Context, names []string) (*View, error)
	GetMatch(ctx context.Context, id string) (*View, error)
	SelectCell(ctx context.Context, id string, category model.Category, value int) (*View, error)
	SubmitAnswer(ctx context.Context, id string, choice int) (*View, error)
	PlayAgain(ctx context.Context, id string) (*View, error)
	EndMatch(ctx context.Context, id string) error
	SaveMatch(ctx context.Context, id, name string) (*View, error)
	RestoreMatch(ctx context.Context, id, name string) (*View, error)
	LoadMatch(ctx context.Context, name string) (*View, error)
	ListSaves(ctx context.Context) ([]string, error)
	DeleteSave(ctx context.Context, name string) error
	HighScore(ctx context.Context) (model.HighScore, error)
	ResetHighScore(ctx context.Context) error
}

var _ ControllerInterface = (*Controller)(nil)
