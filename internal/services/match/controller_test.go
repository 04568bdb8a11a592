package match

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/jeopardy-go2/internal/codec"
	"github.com/mcoot/jeopardy-go2/internal/dependencies/mocks"
	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/services/engine"
	"github.com/mcoot/jeopardy-go2/internal/services/questionbank"
	"github.com/mcoot/jeopardy-go2/internal/services/scoring"
	"github.com/mcoot/jeopardy-go2/internal/storage/memory"
	"github.com/mcoot/jeopardy-go2/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	logger := testutil.NopLogger()
	table, err := questionbank.DefaultTable()
	s.Require().NoError(err)
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	bank := questionbank.New(table, s.random)
	s.controller = NewController(s.storage, bank, scoring.New(s.storage, logger), s.clock, s.random, logger, DefaultMinPlayers)
	s.ctx = context.Background()
}

func (s *ControllerSuite) newMatch(names ...string) *View {
	view, err := s.controller.CreateMatch(s.ctx, names)
	s.Require().NoError(err)
	return view
}

func correctIndex(v *View, q questionbank.ServiceInterface) int {
	for _, candidate := range q.All(v.Active.Cell.Category, v.Active.Cell.Value()) {
		if candidate.Prompt == v.Active.Prompt {
			return candidate.CorrectIndex()
		}
	}
	return -1
}

// CreateMatch tests

func (s *ControllerSuite) TestCreateMatch() {
	s.random.QueueUUID("match-1")

	view := s.newMatch("Ann", "Ben")

	s.Equal("match-1", view.ID)
	s.Equal(engine.StateAwaitingSelection, view.State)
	s.Len(view.Players, 2)
	s.Equal(0, view.CurrentPlayerIndex)
	s.Len(view.Board, model.NumCategories)
	s.Nil(view.Active)
}

func (s *ControllerSuite) TestCreateMatchEnforcesMinimumPlayers() {
	_, err := s.controller.CreateMatch(s.ctx, []string{"Solo"})
	s.ErrorIs(err, model.ErrInsufficientPlayers)
}

func (s *ControllerSuite) TestCreateMatchRejectsBlankNames() {
	_, err := s.controller.CreateMatch(s.ctx, []string{"Ann", ""})
	s.ErrorIs(err, model.ErrInvalidName)
}

func (s *ControllerSuite) TestGetMatchNotFound() {
	_, err := s.controller.GetMatch(s.ctx, "nope")
	s.ErrorIs(err, model.ErrMatchNotFound)
}

// Play tests

func (s *ControllerSuite) TestSelectAndAnswerCorrectly() {
	view := s.newMatch("Ann", "Ben")

	view, err := s.controller.SelectCell(s.ctx, view.ID, model.CategoryScience, 200)
	s.Require().NoError(err)
	s.Require().NotNil(view.Active)
	s.Equal(engine.StateQuestionActive, view.State)
	s.Equal("Which planet is known as the Red Planet?", view.Active.Prompt)
	s.Equal(20, view.Active.WholeSeconds)
	s.Equal(model.UrgencyNormal, view.Active.Urgency)

	view, err = s.controller.SubmitAnswer(s.ctx, view.ID, 1)
	s.Require().NoError(err)

	s.Nil(view.Active)
	s.Equal(200, view.Players[0].Score)
	s.Equal(1, view.CurrentPlayerIndex)
	s.True(view.Board[model.CategoryScience][0])
	s.Require().NotNil(view.LastResolution)
	s.True(view.LastResolution.Correct)
}

func (s *ControllerSuite) TestSelectInvalidValue() {
	view := s.newMatch("Ann", "Ben")
	_, err := s.controller.SelectCell(s.ctx, view.ID, model.CategoryScience, 300)
	s.ErrorIs(err, model.ErrInvalidCell)
}

func (s *ControllerSuite) TestTimerCountsDownWithClock() {
	view := s.newMatch("Ann", "Ben")
	_, err := s.controller.SelectCell(s.ctx, view.ID, model.CategoryHistory, 400)
	s.Require().NoError(err)

	s.clock.Advance(16 * time.Second)
	view, err = s.controller.GetMatch(s.ctx, view.ID)
	s.Require().NoError(err)

	s.Require().NotNil(view.Active)
	s.Equal(4, view.Active.WholeSeconds)
	s.Equal(model.UrgencyCritical, view.Active.Urgency)
}

func (s *ControllerSuite) TestTimeoutResolvesOnNextAccess() {
	view := s.newMatch("Ann", "Ben")
	_, err := s.controller.SelectCell(s.ctx, view.ID, model.CategoryHistory, 400)
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Second)
	_, err = s.controller.SubmitAnswer(s.ctx, view.ID, 0)
	s.ErrorIs(err, model.ErrNoActiveQuestion)

	view, err = s.controller.GetMatch(s.ctx, view.ID)
	s.Require().NoError(err)
	s.Equal(engine.StateAwaitingSelection, view.State)
	s.Equal(1, view.CurrentPlayerIndex)
	s.Equal(0, view.Players[0].Score)
	s.Equal(1, view.AnsweredCount)
	s.Require().NotNil(view.LastResolution)
	s.True(view.LastResolution.TimedOut)
}

func (s *ControllerSuite) TestFullMatchRecordsHighScore() {
	view := s.newMatch("Ann", "Ben")
	bank := s.controller.questions.(*questionbank.Service)

	for _, c := range model.Categories() {
		for _, v := range model.Values() {
			var err error
			view, err = s.controller.SelectCell(s.ctx, view.ID, c, v)
			s.Require().NoError(err)
			choice := correctIndex(view, bank)
			if view.CurrentPlayerIndex == 1 {
				choice = (choice + 1) % model.ChoicesPerQuestion
			}
			view, err = s.controller.SubmitAnswer(s.ctx, view.ID, choice)
			s.Require().NoError(err)
		}
	}

	s.Equal(engine.StateRoundComplete, view.State)
	s.Require().NotNil(view.Result)
	s.Equal([]string{"Ann"}, view.Result.Outcome.Winners)
	s.True(view.Result.NewHighScore)

	hs, err := s.controller.HighScore(s.ctx)
	s.Require().NoError(err)
	s.Equal("Ann", hs.Player)
	s.Equal(view.Players[0].Score, hs.Score)

	view, err = s.controller.PlayAgain(s.ctx, view.ID)
	s.Require().NoError(err)
	s.Equal(engine.StateAwaitingSelection, view.State)
	s.Nil(view.Result)
	s.Equal(0, view.Players[0].Score)
}

func (s *ControllerSuite) TestEndMatch() {
	view := s.newMatch("Ann", "Ben")

	s.Require().NoError(s.controller.EndMatch(s.ctx, view.ID))

	_, err := s.controller.GetMatch(s.ctx, view.ID)
	s.ErrorIs(err, model.ErrMatchNotFound)
	s.ErrorIs(s.controller.EndMatch(s.ctx, view.ID), model.ErrMatchNotFound)
}

// Save and load tests

func (s *ControllerSuite) TestSaveWritesSnapshot() {
	view := s.newMatch("Ann", "Ben")
	_, _ = s.controller.SelectCell(s.ctx, view.ID, model.CategoryScience, 200)
	_, err := s.controller.SubmitAnswer(s.ctx, view.ID, 1)
	s.Require().NoError(err)

	_, err = s.controller.SaveMatch(s.ctx, view.ID, " friday ")
	s.Require().NoError(err)

	data, err := s.storage.GetMatch(s.ctx, "friday")
	s.Require().NoError(err)
	state, err := codec.Decode(data)
	s.Require().NoError(err)
	s.Equal(1, state.CurrentPlayerIndex)
	s.Equal(200, state.Players[0].Score)
	s.True(state.Board[0][0])
}

func (s *ControllerSuite) TestSaveRequiresName() {
	view := s.newMatch("Ann", "Ben")
	_, err := s.controller.SaveMatch(s.ctx, view.ID, "  ")
	s.ErrorIs(err, model.ErrInvalidSaveName)
}

func (s *ControllerSuite) TestLoadMatchCreatesNewLiveMatch() {
	s.random.QueueUUID("first", "second")
	view := s.newMatch("Ann", "Ben")
	_, _ = s.controller.SelectCell(s.ctx, view.ID, model.CategoryScience, 200)
	_, _ = s.controller.SubmitAnswer(s.ctx, view.ID, 1)
	_, err := s.controller.SaveMatch(s.ctx, view.ID, "friday")
	s.Require().NoError(err)

	loaded, err := s.controller.LoadMatch(s.ctx, "friday")
	s.Require().NoError(err)

	s.Equal("second", loaded.ID)
	s.Equal(1, loaded.CurrentPlayerIndex)
	s.Equal(1, loaded.AnsweredCount)
	s.Equal(200, loaded.Players[0].Score)
}

func (s *ControllerSuite) TestRestoreReplacesState() {
	view := s.newMatch("Ann", "Ben")
	_, err := s.controller.SaveMatch(s.ctx, view.ID, "start")
	s.Require().NoError(err)
	_, _ = s.controller.SelectCell(s.ctx, view.ID, model.CategoryScience, 200)
	_, _ = s.controller.SubmitAnswer(s.ctx, view.ID, 1)

	view, err = s.controller.RestoreMatch(s.ctx, view.ID, "start")
	s.Require().NoError(err)

	s.Equal(0, view.AnsweredCount)
	s.Equal(0, view.Players[0].Score)
	s.Nil(view.LastResolution)
}

func (s *ControllerSuite) TestRestoreCorruptSaveLeavesMatchIntact() {
	view := s.newMatch("Ann", "Ben")
	_, _ = s.controller.SelectCell(s.ctx, view.ID, model.CategoryScience, 200)
	_, _ = s.controller.SubmitAnswer(s.ctx, view.ID, 1)
	s.Require().NoError(s.storage.SaveMatch(s.ctx, "bad", []byte(`{"boardState": [[0]], "players": []}`)))
	s.Require().NoError(s.storage.SaveMatch(s.ctx, "empty", []byte(`{
		"boardState": [[0,0,0,0,0],[0,0,0,0,0],[0,0,0,0,0],[0,0,0,0,0],[0,0,0,0,0]],
		"players": [], "currentPlayerIndex": 0}`)))

	_, err := s.controller.RestoreMatch(s.ctx, view.ID, "bad")
	s.ErrorIs(err, model.ErrInvalidSnapshot)
	_, err = s.controller.RestoreMatch(s.ctx, view.ID, "empty")
	s.ErrorIs(err, model.ErrInvalidSnapshot)
	_, err = s.controller.RestoreMatch(s.ctx, view.ID, "missing")
	s.ErrorIs(err, model.ErrSaveNotFound)

	view, err = s.controller.GetMatch(s.ctx, view.ID)
	s.Require().NoError(err)
	s.Equal(200, view.Players[0].Score)
	s.Equal(1, view.AnsweredCount)
}

func (s *ControllerSuite) TestListAndDeleteSaves() {
	view := s.newMatch("Ann", "Ben")
	_, _ = s.controller.SaveMatch(s.ctx, view.ID, "b")
	_, _ = s.controller.SaveMatch(s.ctx, view.ID, "a")

	names, err := s.controller.ListSaves(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, names)

	s.Require().NoError(s.controller.DeleteSave(s.ctx, "a"))
	names, _ = s.controller.ListSaves(s.ctx)
	s.Equal([]string{"b"}, names)
}

func (s *ControllerSuite) TestResetHighScore() {
	_, _, _ = s.storage.SubmitScore(s.ctx, "Ann", 400)

	s.Require().NoError(s.controller.ResetHighScore(s.ctx))

	hs, err := s.controller.HighScore(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.DefaultHighScore(), hs)
}

// Completed saves

func (s *ControllerSuite) saveFinishedMatch(name string) {
	board := make([][]bool, model.NumCategories)
	for i := range board {
		board[i] = []bool{true, true, true, true, true}
	}
	data, err := codec.Encode(model.MatchState{
		Board:   board,
		Players: []model.PlayerState{{Name: "Ann", Score: 5000}, {Name: "Ben", Score: 200}},
	})
	s.Require().NoError(err)
	s.Require().NoError(s.storage.SaveMatch(s.ctx, name, data))
}

func (s *ControllerSuite) TestLoadFinishedMatchScoresIt() {
	s.saveFinishedMatch("final")

	view, err := s.controller.LoadMatch(s.ctx, "final")
	s.Require().NoError(err)

	s.Equal(engine.StateRoundComplete, view.State)
	s.Require().NotNil(view.Result)
	s.Equal([]string{"Ann"}, view.Result.Outcome.Winners)
	s.True(view.Result.NewHighScore)

	hs, err := s.controller.HighScore(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.HighScore{Score: 5000, Player: "Ann"}, hs)
}

func (s *ControllerSuite) TestRestoreFinishedMatchScoresIt() {
	view := s.newMatch("Cat", "Dan")
	s.saveFinishedMatch("final")

	view, err := s.controller.RestoreMatch(s.ctx, view.ID, "final")
	s.Require().NoError(err)

	s.Equal(engine.StateRoundComplete, view.State)
	s.Require().NotNil(view.Result)
	s.Equal("Ann", view.Result.Standings[0].Name)
	s.Equal(5000, view.Result.HighScore.Score)
}
