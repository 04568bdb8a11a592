package response

import (
	"time"

	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/services/engine"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
	"github.com/mcoot/jeopardy-go2/internal/services/scoring"
)

// Player represents a player in API responses
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlayersFromModel converts model.Player values in turn order
func PlayersFromModel(ps []model.Player) []Player {
	out := make([]Player, len(ps))
	for i, p := range ps {
		out[i] = Player{Name: p.Name, Score: p.Score}
	}
	return out
}

// Cell identifies a board cell by category tag and point value
type Cell struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

// CellFromModel converts model.Cell
func CellFromModel(c model.Cell) Cell {
	return Cell{Category: c.Category.Tag(), Value: c.Value()}
}

// Category is one board column with the answered flag per value
type Category struct {
	Tag      string `json:"tag"`
	Label    string `json:"label"`
	Answered []bool `json:"answered"`
}

// Board is the board grid, one entry per category in display order
type Board struct {
	Values     []int      `json:"values"`
	Categories []Category `json:"categories"`
}

// BoardFromGrid converts the category-major answered grid
func BoardFromGrid(grid [][]bool) Board {
	cats := model.Categories()
	b := Board{
		Values:     model.Values(),
		Categories: make([]Category, len(cats)),
	}
	for i, c := range cats {
		b.Categories[i] = Category{
			Tag:      c.Tag(),
			Label:    c.Label(),
			Answered: append([]bool(nil), grid[i]...),
		}
	}
	return b
}

// Question is the active question; the answer is never included
type Question struct {
	Cell             Cell     `json:"cell"`
	Prompt           string   `json:"prompt"`
	Choices          []string `json:"choices"`
	PlayerIndex      int      `json:"player_index"`
	RemainingSeconds float64  `json:"remaining_seconds"`
	WholeSeconds     int      `json:"whole_seconds"`
	Urgency          string   `json:"urgency"`
	Progress         float64  `json:"progress"`
}

// QuestionFromView converts match.QuestionView
func QuestionFromView(q *match.QuestionView) *Question {
	if q == nil {
		return nil
	}
	return &Question{
		Cell:             CellFromModel(q.Cell),
		Prompt:           q.Prompt,
		Choices:          q.Choices,
		PlayerIndex:      q.PlayerIndex,
		RemainingSeconds: q.Remaining,
		WholeSeconds:     q.WholeSeconds,
		Urgency:          string(q.Urgency),
		Progress:         q.Progress,
	}
}

// Resolution describes how the last question ended
type Resolution struct {
	Cell            Cell   `json:"cell"`
	PlayerName      string `json:"player_name"`
	PointsDelta     int    `json:"points_delta"`
	Correct         bool   `json:"correct"`
	TimedOut        bool   `json:"timed_out"`
	CorrectAnswer   string `json:"correct_answer"`
	NextPlayerIndex int    `json:"next_player_index"`
	RoundComplete   bool   `json:"round_complete"`
}

// ResolutionFromEngine converts engine.Resolution
func ResolutionFromEngine(r *engine.Resolution) *Resolution {
	if r == nil {
		return nil
	}
	return &Resolution{
		Cell:            CellFromModel(r.Cell),
		PlayerName:      r.PlayerName,
		PointsDelta:     r.PointsDelta,
		Correct:         r.Correct,
		TimedOut:        r.TimedOut,
		CorrectAnswer:   r.CorrectAnswer,
		NextPlayerIndex: r.NextPlayerIndex,
		RoundComplete:   r.RoundComplete,
	}
}

// Result is the final standings of a completed match
type Result struct {
	Standings    []model.Standing `json:"standings"`
	Winners      []string         `json:"winners"`
	Tie          bool             `json:"tie"`
	HighScore    HighScore        `json:"high_score"`
	NewHighScore bool             `json:"new_high_score"`
}

// ResultFromScoring converts scoring.Result
func ResultFromScoring(r *scoring.Result) *Result {
	if r == nil {
		return nil
	}
	return &Result{
		Standings:    r.Standings,
		Winners:      r.Outcome.Winners,
		Tie:          r.Outcome.Tie,
		HighScore:    HighScoreFromModel(r.HighScore),
		NewHighScore: r.NewHighScore,
	}
}

// Match represents a live match
type Match struct {
	ID                 string      `json:"id"`
	State              string      `json:"state"`
	Players            []Player    `json:"players"`
	CurrentPlayerIndex int         `json:"current_player_index"`
	AnsweredCount      int         `json:"answered_count"`
	Board              Board       `json:"board"`
	Question           *Question   `json:"question,omitempty"`
	LastResolution     *Resolution `json:"last_resolution,omitempty"`
	Result             *Result     `json:"result,omitempty"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// MatchFromView converts match.View
func MatchFromView(v *match.View) Match {
	return Match{
		ID:                 v.ID,
		State:              string(v.State),
		Players:            PlayersFromModel(v.Players),
		CurrentPlayerIndex: v.CurrentPlayerIndex,
		AnsweredCount:      v.AnsweredCount,
		Board:              BoardFromGrid(v.Board),
		Question:           QuestionFromView(v.Active),
		LastResolution:     ResolutionFromEngine(v.LastResolution),
		Result:             ResultFromScoring(v.Result),
		CreatedAt:          v.CreatedAt,
		UpdatedAt:          v.UpdatedAt,
	}
}

// Saves lists save names
type Saves struct {
	Saves []string `json:"saves"`
}

// HighScore is the best score on record
type HighScore struct {
	Score  int    `json:"score"`
	Player string `json:"player"`
}

// HighScoreFromModel converts model.HighScore
func HighScoreFromModel(h model.HighScore) HighScore {
	return HighScore{Score: h.Score, Player: h.Player}
}
