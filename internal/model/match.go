package model

import "sort"

// PlayerState is a player's name and score inside a snapshot
type PlayerState struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// MatchState is a self-contained copy of a match's persistent state
type MatchState struct {
	Board              [][]bool      `json:"board"`
	Players            []PlayerState `json:"players"`
	CurrentPlayerIndex int           `json:"current_player_index"`
}

// Clone returns a deep copy
func (s MatchState) Clone() MatchState {
	c := MatchState{
		Board:              make([][]bool, len(s.Board)),
		Players:            append([]PlayerState(nil), s.Players...),
		CurrentPlayerIndex: s.CurrentPlayerIndex,
	}
	for i, row := range s.Board {
		c.Board[i] = append([]bool(nil), row...)
	}
	return c
}

// Standing is a player's final position
type Standing struct {
	Rank   int    `json:"rank"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Winner bool   `json:"winner"`
}

// Outcome summarises who won a match
type Outcome struct {
	Winners  []string `json:"winners"`
	TopScore int      `json:"top_score"`
	Tie      bool     `json:"tie"`
}

// RankPlayers sorts players by score descending, keeping roster order on ties.
// Equal scores share a rank.
func RankPlayers(players []Player) []Standing {
	sorted := append([]Player(nil), players...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	standings := make([]Standing, len(sorted))
	for i, p := range sorted {
		rank := i + 1
		if i > 0 && p.Score == sorted[i-1].Score {
			rank = standings[i-1].Rank
		}
		standings[i] = Standing{
			Rank:   rank,
			Name:   p.Name,
			Score:  p.Score,
			Winner: len(sorted) > 0 && p.Score == sorted[0].Score,
		}
	}
	return standings
}

// OutcomeFor derives the winners from a set of players
func OutcomeFor(players []Player) Outcome {
	if len(players) == 0 {
		return Outcome{}
	}
	top := players[0].Score
	for _, p := range players[1:] {
		if p.Score > top {
			top = p.Score
		}
	}
	out := Outcome{TopScore: top}
	for _, p := range players {
		if p.Score == top {
			out.Winners = append(out.Winners, p.Name)
		}
	}
	out.Tie = len(out.Winners) > 1
	return out
}
