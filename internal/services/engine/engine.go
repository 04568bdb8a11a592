package engine

import (
	"fmt"
	"strings"

	"github.com/mcoot/jeopardy-go2/internal/model"
)

// State is the turn engine's position in a round
type State string

const (
	StateAwaitingSelection State = "awaiting_selection"
	StateQuestionActive    State = "question_active"
	StateRoundComplete     State = "round_complete"
)

// MaxFrameStep is the largest timer delta a front-end should feed per frame
const MaxFrameStep = 1.0 / 30

// QuestionSource supplies the question for a board cell
type QuestionSource interface {
	Question(category model.Category, value int) model.Question
}

// ActiveQuestion is the question currently being answered
type ActiveQuestion struct {
	Cell        model.Cell     `json:"cell"`
	Question    model.Question `json:"question"`
	PlayerIndex int            `json:"player_index"`

	timer *model.AnswerTimer
}

// Remaining returns the seconds left to answer
func (a *ActiveQuestion) Remaining() float64 { return a.timer.Remaining() }

// WholeSeconds returns the seconds left, truncated
func (a *ActiveQuestion) WholeSeconds() int { return a.timer.WholeSeconds() }

// Urgency classifies the time left
func (a *ActiveQuestion) Urgency() model.Urgency { return a.timer.Urgency() }

// Progress returns the fraction of time left
func (a *ActiveQuestion) Progress() float64 { return a.timer.Progress() }

// TimerState returns the answer timer's state
func (a *ActiveQuestion) TimerState() model.TimerState { return a.timer.State() }

// Resolution describes how a question ended
type Resolution struct {
	Cell            model.Cell       `json:"cell"`
	PlayerIndex     int              `json:"player_index"`
	PlayerName      string           `json:"player_name"`
	PointsDelta     int              `json:"points_delta"`
	Correct         bool             `json:"correct"`
	TimedOut        bool             `json:"timed_out"`
	CorrectAnswer   string           `json:"correct_answer"`
	NextPlayerIndex int              `json:"next_player_index"`
	RoundComplete   bool             `json:"round_complete"`
	Standings       []model.Standing `json:"standings,omitempty"`
}

// Engine runs one match: turn order, question resolution, scoring and
// completion. It is not safe for concurrent use.
type Engine struct {
	questions QuestionSource

	board    *model.Board
	roster   *model.Roster
	current  int
	answered int
	state    State
	active   *ActiveQuestion
}

// New starts a match for the named players in turn order
func New(questions QuestionSource, names []string) (*Engine, error) {
	roster, err := model.NewRoster(names)
	if err != nil {
		return nil, err
	}
	return &Engine{
		questions: questions,
		board:     model.NewBoard(),
		roster:    roster,
		state:     StateAwaitingSelection,
	}, nil
}

// State returns the current engine state
func (e *Engine) State() State {
	return e.state
}

// CurrentPlayerIndex returns the index of the player whose turn it is
func (e *Engine) CurrentPlayerIndex() int {
	return e.current
}

// CurrentPlayer returns a copy of the player whose turn it is
func (e *Engine) CurrentPlayer() model.Player {
	return *e.roster.At(e.current)
}

// Players returns copies of all players in turn order
func (e *Engine) Players() []model.Player {
	return e.roster.Players()
}

// Board returns a copy of the board
func (e *Engine) Board() *model.Board {
	return e.board.Clone()
}

// AnsweredCount returns how many cells have been played
func (e *Engine) AnsweredCount() int {
	return e.answered
}

// Active returns the question being answered, or nil
func (e *Engine) Active() *ActiveQuestion {
	return e.active
}

// SelectCell opens the question at cell for the current player.
// Rejected selections leave the engine unchanged.
func (e *Engine) SelectCell(cell model.Cell) (*ActiveQuestion, error) {
	switch e.state {
	case StateQuestionActive:
		return nil, model.ErrQuestionActive
	case StateRoundComplete:
		return nil, model.ErrMatchComplete
	}
	if !cell.Valid() {
		return nil, model.ErrInvalidCell
	}
	if e.board.IsAnswered(cell) {
		return nil, model.ErrCellAnswered
	}

	e.active = &ActiveQuestion{
		Cell:        cell,
		Question:    e.questions.Question(cell.Category, cell.Value()),
		PlayerIndex: e.current,
		timer:       model.NewAnswerTimer(),
	}
	e.state = StateQuestionActive
	return e.active, nil
}

// SubmitChoice answers the active question with the choice at index
func (e *Engine) SubmitChoice(choice int) (*Resolution, error) {
	if e.state != StateQuestionActive {
		return nil, model.ErrNoActiveQuestion
	}
	q := e.active.Question
	if choice < 0 || choice >= len(q.Choices) {
		return nil, model.ErrInvalidChoice
	}
	e.active.timer.Stop()

	delta := 0
	if q.IsCorrect(choice) {
		delta = e.active.Cell.Value()
	}
	return e.resolve(delta, false), nil
}

// ResolveAnswer ends the active question with a points delta, which must be
// zero or the cell's value.
func (e *Engine) ResolveAnswer(pointsDelta int) (*Resolution, error) {
	if e.state != StateQuestionActive {
		return nil, model.ErrNoActiveQuestion
	}
	if pointsDelta != 0 && pointsDelta != e.active.Cell.Value() {
		return nil, fmt.Errorf("%w: got %d for a %d cell", model.ErrInvalidPoints, pointsDelta, e.active.Cell.Value())
	}
	e.active.timer.Stop()
	return e.resolve(pointsDelta, false), nil
}

// Tick advances the answer timer by delta seconds. When the timer expires
// the question resolves with no points and the resolution is returned.
func (e *Engine) Tick(delta float64) *Resolution {
	if e.state != StateQuestionActive {
		return nil
	}
	if !e.active.timer.Tick(delta) {
		return nil
	}
	return e.resolve(0, true)
}

func (e *Engine) resolve(delta int, timedOut bool) *Resolution {
	active := e.active
	player := e.roster.At(e.current)

	player.AddPoints(delta)
	e.board.MarkAnswered(active.Cell)
	resolvedIndex := e.current
	e.current = (e.current + 1) % e.roster.Len()
	e.answered++
	e.active = nil

	res := &Resolution{
		Cell:            active.Cell,
		PlayerIndex:     resolvedIndex,
		PlayerName:      player.Name,
		PointsDelta:     delta,
		Correct:         delta > 0,
		TimedOut:        timedOut,
		CorrectAnswer:   active.Question.CorrectAnswer,
		NextPlayerIndex: e.current,
	}

	if e.answered >= model.TotalCells {
		e.state = StateRoundComplete
		res.RoundComplete = true
		res.Standings = e.Standings()
	} else {
		e.state = StateAwaitingSelection
	}
	return res
}

// SkipTurn passes the turn to the next player without playing a cell
func (e *Engine) SkipTurn() error {
	switch e.state {
	case StateQuestionActive:
		return model.ErrQuestionActive
	case StateRoundComplete:
		return model.ErrMatchComplete
	}
	e.current = (e.current + 1) % e.roster.Len()
	return nil
}

// Standings returns players ranked by score
func (e *Engine) Standings() []model.Standing {
	return model.RankPlayers(e.roster.Players())
}

// Outcome returns the winners by current score
func (e *Engine) Outcome() model.Outcome {
	return model.OutcomeFor(e.roster.Players())
}

// PlayAgain starts a fresh round with the same players once the match is over
func (e *Engine) PlayAgain() error {
	if e.state != StateRoundComplete {
		return model.ErrMatchNotComplete
	}
	e.board = model.NewBoard()
	e.roster.ResetScores()
	e.current = 0
	e.answered = 0
	e.active = nil
	e.state = StateAwaitingSelection
	return nil
}

// Snapshot captures the board, players and turn
func (e *Engine) Snapshot() model.MatchState {
	players := e.roster.Players()
	states := make([]model.PlayerState, len(players))
	for i, p := range players {
		states[i] = model.PlayerState{Name: p.Name, Score: p.Score}
	}
	return model.MatchState{
		Board:              e.board.Grid(),
		Players:            states,
		CurrentPlayerIndex: e.current,
	}
}

// Restore replaces the match with a snapshot. An invalid snapshot leaves the
// engine untouched. Any active question is discarded.
func (e *Engine) Restore(state model.MatchState) error {
	if len(state.Players) == 0 {
		return fmt.Errorf("%w: no players", model.ErrInvalidSnapshot)
	}
	if state.CurrentPlayerIndex < 0 || state.CurrentPlayerIndex >= len(state.Players) {
		return fmt.Errorf("%w: current player index %d out of range", model.ErrInvalidSnapshot, state.CurrentPlayerIndex)
	}
	board, err := model.BoardFromGrid(state.Board)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrInvalidSnapshot, err)
	}
	players := make([]*model.Player, len(state.Players))
	for i, ps := range state.Players {
		if strings.TrimSpace(ps.Name) == "" {
			return fmt.Errorf("%w: player %d has no name", model.ErrInvalidSnapshot, i)
		}
		players[i] = &model.Player{Name: ps.Name, Score: ps.Score}
	}

	e.board = board
	e.roster = model.RosterOf(players)
	e.current = state.CurrentPlayerIndex
	e.answered = board.CountAnswered()
	e.active = nil
	if e.answered >= model.TotalCells {
		e.state = StateRoundComplete
	} else {
		e.state = StateAwaitingSelection
	}
	return nil
}

// FromSnapshot builds an engine directly from a saved match state
func FromSnapshot(questions QuestionSource, state model.MatchState) (*Engine, error) {
	e := &Engine{
		questions: questions,
		board:     model.NewBoard(),
		roster:    model.RosterOf(nil),
		state:     StateAwaitingSelection,
	}
	if err := e.Restore(state); err != nil {
		return nil, err
	}
	return e, nil
}
