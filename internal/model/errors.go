package model

import "errors"

// Common errors used across the application
var (
	// Catalogue errors
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidValue    = errors.New("invalid point value")

	// Player errors
	ErrInvalidName         = errors.New("player name must not be empty")
	ErrDuplicateName       = errors.New("player name is already taken")
	ErrInsufficientPlayers = errors.New("insufficient players to start match")

	// Board errors
	ErrInvalidBoardShape = errors.New("board must be 5 categories by 5 tiers")

	// Turn errors
	ErrInvalidCell      = errors.New("cell is not on the board")
	ErrCellAnswered     = errors.New("cell has already been answered")
	ErrQuestionActive   = errors.New("a question is already active")
	ErrNoActiveQuestion = errors.New("no question is active")
	ErrInvalidPoints    = errors.New("points delta must be zero or the cell value")
	ErrInvalidChoice    = errors.New("choice is out of range")
	ErrMatchComplete    = errors.New("match is already complete")
	ErrMatchNotComplete = errors.New("match is not complete")

	// Snapshot errors
	ErrInvalidSnapshot = errors.New("invalid match snapshot")

	// Match registry errors
	ErrMatchNotFound   = errors.New("match not found")
	ErrSaveNotFound    = errors.New("save not found")
	ErrInvalidSaveName = errors.New("save name must not be empty")
)
