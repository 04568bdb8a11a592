package netclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound message types
const (
	MsgRoomJoined   = "ROOM_JOINED"
	MsgPlayerJoined = "PLAYER_JOINED"
	MsgPlayerLeft   = "PLAYER_LEFT"
	MsgGameStarted  = "GAME_STARTED"
	MsgScoreUpdated = "SCORE_UPDATED"
	MsgError        = "ERROR"
)

// Outbound message types
const (
	MsgCreateRoom   = "CREATE_ROOM"
	MsgJoinRoom     = "JOIN_ROOM"
	MsgLeaveRoom    = "LEAVE_ROOM"
	MsgStartGame    = "START_GAME"
	MsgSubmitAnswer = "SUBMIT_ANSWER"
)

var errEmptyMessage = errors.New("empty message")

// header is the part every message shares
type header struct {
	Type string `json:"type"`
}

type roomJoined struct {
	RoomID string `json:"roomId"`
}

type playerJoined struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
}

type playerLeft struct {
	PlayerID string `json:"playerId"`
}

type scoreUpdated struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

type serverError struct {
	Message string `json:"message"`
}

// CreateRoom asks the server for a new room
type CreateRoom struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Private bool   `json:"private"`
}

// RoomRequest is a join, leave or start for one room
type RoomRequest struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
}

// SubmitAnswer reports whether the local player answered correctly
type SubmitAnswer struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Correct bool   `json:"correct"`
}

// Room is one entry of the public room listing
type Room struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Players int    `json:"players"`
	Private bool   `json:"private"`
}

func decodeType(b []byte) (string, error) {
	if len(b) == 0 {
		return "", errEmptyMessage
	}
	var h header
	if err := json.Unmarshal(b, &h); err != nil {
		return "", err
	}
	if h.Type == "" {
		return "", fmt.Errorf("message has no type")
	}
	return h.Type, nil
}

func decodeAs[T any](b []byte) (T, error) {
	var out T
	err := json.Unmarshal(b, &out)
	return out, err
}

// dispatch decodes one server message and hands it to the listener.
// Unknown types are ignored.
func dispatch(b []byte, l Listener) error {
	typ, err := decodeType(b)
	if err != nil {
		return err
	}

	switch typ {
	case MsgRoomJoined:
		m, err := decodeAs[roomJoined](b)
		if err != nil {
			return err
		}
		l.OnRoomJoined(m.RoomID)
	case MsgPlayerJoined:
		m, err := decodeAs[playerJoined](b)
		if err != nil {
			return err
		}
		l.OnPlayerJoined(m.PlayerID, m.Name)
	case MsgPlayerLeft:
		m, err := decodeAs[playerLeft](b)
		if err != nil {
			return err
		}
		l.OnPlayerLeft(m.PlayerID)
	case MsgGameStarted:
		l.OnGameStarted()
	case MsgScoreUpdated:
		m, err := decodeAs[scoreUpdated](b)
		if err != nil {
			return err
		}
		l.OnScoreUpdated(m.PlayerID, m.Score)
	case MsgError:
		m, err := decodeAs[serverError](b)
		if err != nil {
			return err
		}
		l.OnError(m.Message)
	}
	return nil
}
