package model

// NoHighScoreHolder is the holder name reported before any score is recorded
const NoHighScoreHolder = "None"

// HighScore is the best score recorded across matches
type HighScore struct {
	Score  int    `json:"score"`
	Player string `json:"player"`
}

// DefaultHighScore returns the value reported by an empty store
func DefaultHighScore() HighScore {
	return HighScore{Score: 0, Player: NoHighScoreHolder}
}

// Beats returns true if score strictly exceeds the recorded high score
func (h HighScore) Beats(score int) bool {
	return score > h.Score
}
