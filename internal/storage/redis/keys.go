package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "jeopardy"

// Hash fields of the high score key
const (
	fieldHighScore       = "high_score"
	fieldHighScorePlayer = "high_score_player"
)

// saveKey returns the Redis key for a saved match snapshot
func saveKey(name string) string {
	return fmt.Sprintf("%s:saves:%s", keyPrefix, name)
}

// savesIndexKey returns the Redis key for the SET of save names
func savesIndexKey() string {
	return fmt.Sprintf("%s:idx:saves", keyPrefix)
}

// highScoreKey returns the Redis key for the high score hash
func highScoreKey() string {
	return fmt.Sprintf("%s:prefs:high_score", keyPrefix)
}
