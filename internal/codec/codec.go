// Package codec converts match snapshots to and from their portable JSON form.
//
// The wire format keeps the board as a grid of 0/1 integers so that saves
// written by older clients still load.
package codec

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mcoot/jeopardy-go2/internal/model"
)

// Version is the snapshot format written by Encode
const Version = 1

var (
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	ErrMalformedSnapshot  = errors.New("malformed snapshot")
)

type wireSnapshot struct {
	Version            int          `json:"version,omitempty"`
	CurrentPlayerIndex int          `json:"currentPlayerIndex"`
	BoardState         [][]int      `json:"boardState"`
	Players            []wirePlayer `json:"players"`
}

type wirePlayer struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Encode serialises a match state
func Encode(state model.MatchState) ([]byte, error) {
	if len(state.Board) != model.NumCategories {
		return nil, fmt.Errorf("%w: board has %d categories", ErrMalformedSnapshot, len(state.Board))
	}
	w := wireSnapshot{
		Version:            Version,
		CurrentPlayerIndex: state.CurrentPlayerIndex,
		BoardState:         make([][]int, len(state.Board)),
		Players:            make([]wirePlayer, len(state.Players)),
	}
	for c, row := range state.Board {
		if len(row) != model.NumTiers {
			return nil, fmt.Errorf("%w: category %d has %d tiers", ErrMalformedSnapshot, c, len(row))
		}
		w.BoardState[c] = make([]int, len(row))
		for t, answered := range row {
			if answered {
				w.BoardState[c][t] = 1
			}
		}
	}
	for i, p := range state.Players {
		w.Players[i] = wirePlayer{Name: p.Name, Score: p.Score}
	}
	return json.Marshal(w)
}

// Decode parses a serialised match state. Snapshots without a version are
// treated as version 1.
func Decode(data []byte) (model.MatchState, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return model.MatchState{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	if w.Version > Version || w.Version < 0 {
		return model.MatchState{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, w.Version)
	}
	if len(w.BoardState) != model.NumCategories {
		return model.MatchState{}, fmt.Errorf("%w: board has %d categories", ErrMalformedSnapshot, len(w.BoardState))
	}

	state := model.MatchState{
		Board:              make([][]bool, len(w.BoardState)),
		Players:            make([]model.PlayerState, len(w.Players)),
		CurrentPlayerIndex: w.CurrentPlayerIndex,
	}
	for c, row := range w.BoardState {
		if len(row) != model.NumTiers {
			return model.MatchState{}, fmt.Errorf("%w: category %d has %d tiers", ErrMalformedSnapshot, c, len(row))
		}
		state.Board[c] = make([]bool, len(row))
		for t, v := range row {
			switch v {
			case 0:
			case 1:
				state.Board[c][t] = true
			default:
				return model.MatchState{}, fmt.Errorf("%w: cell [%d][%d] is %d", ErrMalformedSnapshot, c, t, v)
			}
		}
	}
	for i, p := range w.Players {
		state.Players[i] = model.PlayerState{Name: p.Name, Score: p.Score}
	}
	return state, nil
}
