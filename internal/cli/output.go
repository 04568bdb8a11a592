package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Match:
		o.printMatch(v)
	case Saves:
		o.printSaves(v)
	case HighScore:
		o.printHighScore(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Cell response type
type Cell struct {
	Category string `json:"category"`
	Value    int    `json:"value"`
}

// BoardCategory response type
type BoardCategory struct {
	Tag      string `json:"tag"`
	Label    string `json:"label"`
	Answered []bool `json:"answered"`
}

// Board response type
type Board struct {
	Values     []int           `json:"values"`
	Categories []BoardCategory `json:"categories"`
}

// Question response type
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

// Resolution response type
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

// Standing response type
type Standing struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Winner bool   `json:"winner"`
}

// Result response type
type Result struct {
	Standings    []Standing `json:"standings"`
	Winners      []string   `json:"winners"`
	Tie          bool       `json:"tie"`
	HighScore    HighScore  `json:"high_score"`
	NewHighScore bool       `json:"new_high_score"`
}

// Match response type
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
}

// Saves response type
type Saves struct {
	Saves []string `json:"saves"`
}

// HighScore response type
type HighScore struct {
	Score  int    `json:"score"`
	Player string `json:"player"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printMatch(m Match) {
	fmt.Fprintf(o.w, "Match: %s\n", m.ID)
	fmt.Fprintf(o.w, "State: %s\n", m.State)
	fmt.Fprintf(o.w, "Answered: %d/25\n", m.AnsweredCount)

	if r := m.LastResolution; r != nil {
		fmt.Fprintln(o.w)
		writeResolution(o.w, r.PlayerName, r.PointsDelta, r.TimedOut, r.CorrectAnswer)
	}

	fmt.Fprintln(o.w)
	labels := make([]string, len(m.Board.Categories))
	for i, c := range m.Board.Categories {
		labels[i] = c.Label
	}
	writeBoard(o.w, labels, m.Board.Values, func(col, row int) bool {
		return m.Board.Categories[col].Answered[row]
	})

	fmt.Fprintln(o.w)
	names := make([]string, len(m.Players))
	scores := make([]int, len(m.Players))
	for i, p := range m.Players {
		names[i], scores[i] = p.Name, p.Score
	}
	writeScores(o.w, names, scores, m.CurrentPlayerIndex)

	if q := m.Question; q != nil {
		fmt.Fprintln(o.w)
		writeQuestion(o.w, q.Cell.Category, q.Cell.Value, q.Prompt, q.Choices)
		fmt.Fprintf(o.w, "Time left: %ds (%s)\n", q.WholeSeconds, q.Urgency)
	}

	if r := m.Result; r != nil {
		fmt.Fprintln(o.w)
		o.printResult(*r)
	}
}

func (o *Output) printResult(r Result) {
	fmt.Fprintln(o.w, "Final Standings:")
	for _, s := range r.Standings {
		mark := ""
		if s.Winner {
			mark = " *"
		}
		fmt.Fprintf(o.w, "  %d. %s: %d%s\n", s.Rank, s.Name, s.Score, mark)
	}
	switch {
	case r.Tie:
		fmt.Fprintf(o.w, "Tie between %s\n", strings.Join(r.Winners, ", "))
	case len(r.Winners) == 1:
		fmt.Fprintf(o.w, "Winner: %s\n", r.Winners[0])
	}
	if r.NewHighScore {
		fmt.Fprintln(o.w, "NEW HIGH SCORE!")
	}
	fmt.Fprintf(o.w, "High Score: %d by %s\n", r.HighScore.Score, r.HighScore.Player)
}

func (o *Output) printSaves(s Saves) {
	if len(s.Saves) == 0 {
		fmt.Fprintln(o.w, "No saved games")
		return
	}
	fmt.Fprintf(o.w, "Saved games (%d):\n", len(s.Saves))
	for _, name := range s.Saves {
		fmt.Fprintf(o.w, "  - %s\n", name)
	}
}

func (o *Output) printHighScore(h HighScore) {
	fmt.Fprintf(o.w, "High Score: %d by %s\n", h.Score, h.Player)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Fprintf(o.w, "Status: %s\n", h.Status)
}
