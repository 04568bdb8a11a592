package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/jeopardy-go2/internal/api"
	"github.com/mcoot/jeopardy-go2/internal/api/apierr"
	"github.com/mcoot/jeopardy-go2/internal/api/response"
	"github.com/mcoot/jeopardy-go2/internal/factory"
	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/testutil"
)

// testServer wraps the router around a test app
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:          testutil.NopLogger(),
		MatchController: app.MatchController,
	})

	return &testServer{handler: router, app: app}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) correctChoice(t *testing.T, q *response.Question) int {
	t.Helper()
	require.NotNil(t, q)
	category, err := model.ParseCategory(q.Cell.Category)
	require.NoError(t, err)
	cell, err := model.CellFor(category, q.Cell.Value)
	require.NoError(t, err)
	return ts.app.CorrectChoiceFor(cell, q.Prompt)
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches", map[string][]string{"players": {"Ann", "Ben"}})
	assert.Equal(t, http.StatusCreated, rr.Code)

	m := decodeMatch(t, rr)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, "awaiting_selection", m.State)
	require.Len(t, m.Players, 2)
	assert.Equal(t, "Ann", m.Players[0].Name)
	assert.Equal(t, 0, m.CurrentPlayerIndex)
	assert.Equal(t, []int{200, 400, 600, 800, 1000}, m.Board.Values)
	require.Len(t, m.Board.Categories, model.NumCategories)
	assert.Equal(t, "science", m.Board.Categories[0].Tag)
	assert.Nil(t, m.Question)
}

func TestCreateMatchRejectsBadRosters(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/v1/matches", map[string][]string{"players": {"Solo"}})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInsufficientPlayers)

	rr = ts.request(http.MethodPost, "/api/v1/matches", map[string][]string{"players": {"Ann", "ann"}})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeDuplicateName)

	rr = ts.request(http.MethodPost, "/api/v1/matches", map[string][]string{"players": {"Ann", "  "}})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidName)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches", bytes.NewBufferString("{"))
	rr = httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)
}

func TestGetUnknownMatch(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/v1/matches/missing", nil)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeMatchNotFound)
}

func TestSelectAndAnswer(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")

	rr := ts.request(http.MethodPost, "/api/v1/matches/"+id+"/select", map[string]any{"category": "Science", "value": 400})
	require.Equal(t, http.StatusOK, rr.Code)

	m := decodeMatch(t, rr)
	assert.Equal(t, "question_active", m.State)
	require.NotNil(t, m.Question)
	assert.Equal(t, "science", m.Question.Cell.Category)
	assert.Equal(t, 400, m.Question.Cell.Value)
	assert.Len(t, m.Question.Choices, model.ChoicesPerQuestion)
	assert.Equal(t, 20, m.Question.WholeSeconds)
	assert.Equal(t, "normal", m.Question.Urgency)
	assert.NotContains(t, rr.Body.String(), "correct_answer")

	choice := ts.correctChoice(t, m.Question)
	rr = ts.request(http.MethodPost, "/api/v1/matches/"+id+"/answer", map[string]int{"choice": choice})
	require.Equal(t, http.StatusOK, rr.Code)

	m = decodeMatch(t, rr)
	assert.Equal(t, "awaiting_selection", m.State)
	assert.Equal(t, 400, m.Players[0].Score)
	assert.Equal(t, 1, m.CurrentPlayerIndex)
	assert.Equal(t, 1, m.AnsweredCount)
	assert.True(t, m.Board.Categories[0].Answered[1])
	require.NotNil(t, m.LastResolution)
	assert.True(t, m.LastResolution.Correct)
	assert.Equal(t, 400, m.LastResolution.PointsDelta)
}

func TestWrongAnswerScoresNothing(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")

	rr := ts.request(http.MethodPost, "/api/v1/matches/"+id+"/select", map[string]any{"category": "history", "value": 200})
	require.Equal(t, http.StatusOK, rr.Code)
	m := decodeMatch(t, rr)

	wrong := (ts.correctChoice(t, m.Question) + 1) % model.ChoicesPerQuestion
	rr = ts.request(http.MethodPost, "/api/v1/matches/"+id+"/answer", map[string]int{"choice": wrong})
	require.Equal(t, http.StatusOK, rr.Code)

	m = decodeMatch(t, rr)
	assert.Equal(t, 0, m.Players[0].Score)
	assert.Equal(t, 1, m.CurrentPlayerIndex)
	require.NotNil(t, m.LastResolution)
	assert.False(t, m.LastResolution.Correct)
	assert.NotEmpty(t, m.LastResolution.CorrectAnswer)
}

func TestSelectionErrors(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")
	path := "/api/v1/matches/" + id

	rr := ts.request(http.MethodPost, path+"/select", map[string]any{"category": "cooking", "value": 200})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeUnknownCategory)

	rr = ts.request(http.MethodPost, path+"/select", map[string]any{"category": "science", "value": 300})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidCell)

	rr = ts.request(http.MethodPost, path+"/answer", map[string]int{"choice": 0})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeNoActiveQuestion)

	rr = ts.request(http.MethodPost, path+"/select", map[string]any{"category": "science", "value": 200})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, path+"/select", map[string]any{"category": "movies", "value": 200})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeQuestionActive)

	rr = ts.request(http.MethodPost, path+"/answer", map[string]int{"choice": 7})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidChoice)

	rr = ts.request(http.MethodPost, path+"/answer", map[string]any{})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidRequest)

	rr = ts.request(http.MethodPost, path+"/answer", map[string]int{"choice": 0})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, path+"/select", map[string]any{"category": "science", "value": 200})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeCellAnswered)

	rr = ts.request(http.MethodPost, path+"/play-again", nil)
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeMatchNotComplete)
}

func TestAnswerTimesOut(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")

	rr := ts.request(http.MethodPost, "/api/v1/matches/"+id+"/select", map[string]any{"category": "sports", "value": 1000})
	require.Equal(t, http.StatusOK, rr.Code)

	ts.app.MockClock.Advance(15500 * time.Millisecond)
	rr = ts.request(http.MethodGet, "/api/v1/matches/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m := decodeMatch(t, rr)
	require.NotNil(t, m.Question)
	assert.Equal(t, 4, m.Question.WholeSeconds)
	assert.Equal(t, "critical", m.Question.Urgency)

	ts.app.MockClock.Advance(5 * time.Second)
	rr = ts.request(http.MethodGet, "/api/v1/matches/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m = decodeMatch(t, rr)
	assert.Equal(t, "awaiting_selection", m.State)
	assert.Nil(t, m.Question)
	assert.Equal(t, 1, m.CurrentPlayerIndex)
	assert.Equal(t, 0, m.Players[0].Score)
	require.NotNil(t, m.LastResolution)
	assert.True(t, m.LastResolution.TimedOut)
}

func TestSaveRestoreAndLoad(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")
	path := "/api/v1/matches/" + id

	answerCorrectly(t, ts, id, "geography", 600)

	rr := ts.request(http.MethodPost, path+"/save", map[string]string{"name": "slot1"})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, path+"/save", map[string]string{"name": "  "})
	assertErrorCode(t, rr, http.StatusBadRequest, apierr.CodeInvalidSaveName)

	answerCorrectly(t, ts, id, "movies", 800)

	rr = ts.request(http.MethodGet, "/api/v1/saves", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var saves response.Saves
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saves))
	assert.Equal(t, []string{"slot1"}, saves.Saves)

	rr = ts.request(http.MethodPost, path+"/restore", map[string]string{"name": "slot1"})
	require.Equal(t, http.StatusOK, rr.Code)
	m := decodeMatch(t, rr)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, 600, m.Players[0].Score)
	assert.Equal(t, 0, m.Players[1].Score)
	assert.Equal(t, 1, m.CurrentPlayerIndex)
	assert.Equal(t, 1, m.AnsweredCount)

	rr = ts.request(http.MethodPost, path+"/restore", map[string]string{"name": "nope"})
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeSaveNotFound)

	rr = ts.request(http.MethodPost, "/api/v1/saves/slot1/load", nil)
	require.Equal(t, http.StatusCreated, rr.Code)
	loaded := decodeMatch(t, rr)
	assert.NotEqual(t, id, loaded.ID)
	assert.Equal(t, 600, loaded.Players[0].Score)
	assert.True(t, loaded.Board.Categories[4].Answered[2])

	rr = ts.request(http.MethodDelete, "/api/v1/saves/slot1", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/saves", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"saves":[]}`, rr.Body.String())
}

func TestRestoreRejectsCorruptSave(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")
	answerCorrectly(t, ts, id, "science", 200)

	require.NoError(t, ts.app.Storage.SaveMatch(context.Background(), "broken", []byte(`{"boardState":[[1]]}`)))

	rr := ts.request(http.MethodPost, "/api/v1/matches/"+id+"/restore", map[string]string{"name": "broken"})
	assertErrorCode(t, rr, http.StatusUnprocessableEntity, apierr.CodeInvalidSnapshot)

	rr = ts.request(http.MethodGet, "/api/v1/matches/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m := decodeMatch(t, rr)
	assert.Equal(t, 200, m.Players[0].Score)
	assert.Equal(t, 1, m.AnsweredCount)
}

func TestFullMatchRecordsHighScore(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")

	for _, c := range model.Categories() {
		for _, v := range model.Values() {
			answerCorrectly(t, ts, id, c.Tag(), v)
		}
	}

	rr := ts.request(http.MethodGet, "/api/v1/matches/"+id, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m := decodeMatch(t, rr)
	assert.Equal(t, "round_complete", m.State)
	assert.Equal(t, model.TotalCells, m.AnsweredCount)
	require.NotNil(t, m.Result)
	require.Len(t, m.Result.Standings, 2)
	assert.Equal(t, 1, m.Result.Standings[0].Rank)

	top := m.Result.Standings[0]
	rr = ts.request(http.MethodGet, "/api/v1/highscore", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var hs response.HighScore
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &hs))
	assert.Equal(t, top.Score, hs.Score)
	assert.Equal(t, top.Name, hs.Player)
	assert.True(t, m.Result.NewHighScore)

	rr = ts.request(http.MethodPost, "/api/v1/matches/"+id+"/select", map[string]any{"category": "science", "value": 200})
	assertErrorCode(t, rr, http.StatusConflict, apierr.CodeMatchComplete)

	rr = ts.request(http.MethodPost, "/api/v1/matches/"+id+"/play-again", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	m = decodeMatch(t, rr)
	assert.Equal(t, "awaiting_selection", m.State)
	assert.Equal(t, 0, m.AnsweredCount)
	assert.Equal(t, 0, m.Players[0].Score)
	assert.Nil(t, m.Result)

	rr = ts.request(http.MethodDelete, "/api/v1/highscore", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/highscore", nil)
	assert.JSONEq(t, `{"score":0,"player":"None"}`, rr.Body.String())
}

func TestEndMatch(t *testing.T) {
	ts := newTestServer(t)
	id := createMatch(t, ts, "Ann", "Ben")

	rr := ts.request(http.MethodDelete, "/api/v1/matches/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/v1/matches/"+id, nil)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeMatchNotFound)

	rr = ts.request(http.MethodDelete, "/api/v1/matches/"+id, nil)
	assertErrorCode(t, rr, http.StatusNotFound, apierr.CodeMatchNotFound)
}

// Helper functions

func createMatch(t *testing.T, ts *testServer, names ...string) string {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/matches", map[string][]string{"players": names})
	require.Equal(t, http.StatusCreated, rr.Code)

	return decodeMatch(t, rr).ID
}

func answerCorrectly(t *testing.T, ts *testServer, id, category string, value int) {
	t.Helper()

	rr := ts.request(http.MethodPost, "/api/v1/matches/"+id+"/select", map[string]any{"category": category, "value": value})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	m := decodeMatch(t, rr)

	rr = ts.request(http.MethodPost, "/api/v1/matches/"+id+"/answer", map[string]int{"choice": ts.correctChoice(t, m.Question)})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func decodeMatch(t *testing.T, rr *httptest.ResponseRecorder) response.Match {
	t.Helper()

	var m response.Match
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &m))
	return m
}

func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	assert.Equal(t, status, rr.Code)
	var resp apierr.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, code, resp.Error.Code)
}
