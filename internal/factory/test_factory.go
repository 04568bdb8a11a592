package factory

import (
	"time"

	"github.com/mcoot/jeopardy-go2/internal/dependencies/mocks"
	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
	"github.com/mcoot/jeopardy-go2/internal/services/questionbank"
	"github.com/mcoot/jeopardy-go2/internal/storage/memory"
	"github.com/mcoot/jeopardy-go2/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// It uses in-memory storage and the built-in question set.
func NewTestApp() *TestApp {
	store := memory.New()
	table, err := questionbank.DefaultTable()
	if err != nil {
		panic(err)
	}
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, table, mockClock, mockRandom, match.DefaultMinPlayers, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// CorrectChoice returns the index of the right answer for the question
// currently shown in a view, or -1 if none is active
func (t *TestApp) CorrectChoice(view *match.View) int {
	if view.Active == nil {
		return -1
	}
	return t.CorrectChoiceFor(view.Active.Cell, view.Active.Prompt)
}

// CorrectChoiceFor returns the index of the right answer for the question
// with the given prompt in a cell
func (t *TestApp) CorrectChoiceFor(cell model.Cell, prompt string) int {
	for _, q := range t.QuestionBank.All(cell.Category, cell.Value()) {
		if q.Prompt == prompt {
			return q.CorrectIndex()
		}
	}
	return questionbank.Fallback(cell.Value()).CorrectIndex()
}
