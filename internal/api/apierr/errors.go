package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/jeopardy-go2/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnknownCategory     = "UNKNOWN_CATEGORY"
	CodeInvalidValue        = "INVALID_VALUE"
	CodeInvalidName         = "INVALID_NAME"
	CodeDuplicateName       = "DUPLICATE_NAME"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeInvalidCell         = "INVALID_CELL"
	CodeCellAnswered        = "CELL_ANSWERED"
	CodeQuestionActive      = "QUESTION_ACTIVE"
	CodeNoActiveQuestion    = "NO_ACTIVE_QUESTION"
	CodeInvalidChoice       = "INVALID_CHOICE"
	CodeMatchComplete       = "MATCH_COMPLETE"
	CodeMatchNotComplete    = "MATCH_NOT_COMPLETE"
	CodeInvalidSnapshot     = "INVALID_SNAPSHOT"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeSaveNotFound        = "SAVE_NOT_FOUND"
	CodeInvalidSaveName     = "INVALID_SAVE_NAME"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusFor returns the HTTP status an error would be written with
func StatusFor(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Request errors
	case errors.Is(err, model.ErrUnknownCategory):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownCategory, "Unknown category"}}
	case errors.Is(err, model.ErrInvalidValue):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidValue, "Value must be 200, 400, 600, 800 or 1000"}}
	case errors.Is(err, model.ErrInvalidName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidName, "Player names must not be empty"}}
	case errors.Is(err, model.ErrDuplicateName):
		return &httpError{http.StatusBadRequest, APIError{CodeDuplicateName, "Player names must be unique"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusBadRequest, APIError{CodeInsufficientPlayers, "Not enough players to start"}}
	case errors.Is(err, model.ErrInvalidCell):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCell, "Cell is not on the board"}}
	case errors.Is(err, model.ErrInvalidChoice):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidChoice, "Choice is out of range"}}
	case errors.Is(err, model.ErrInvalidSaveName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSaveName, "Save name must not be empty"}}

	// Turn errors
	case errors.Is(err, model.ErrCellAnswered):
		return &httpError{http.StatusConflict, APIError{CodeCellAnswered, "Cell has already been answered"}}
	case errors.Is(err, model.ErrQuestionActive):
		return &httpError{http.StatusConflict, APIError{CodeQuestionActive, "A question is already active"}}
	case errors.Is(err, model.ErrNoActiveQuestion):
		return &httpError{http.StatusConflict, APIError{CodeNoActiveQuestion, "No question is active"}}
	case errors.Is(err, model.ErrMatchComplete):
		return &httpError{http.StatusConflict, APIError{CodeMatchComplete, "Match is already complete"}}
	case errors.Is(err, model.ErrMatchNotComplete):
		return &httpError{http.StatusConflict, APIError{CodeMatchNotComplete, "Match is not complete"}}

	// Persistence errors
	case errors.Is(err, model.ErrInvalidSnapshot):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeInvalidSnapshot, "Save could not be restored"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrSaveNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSaveNotFound, "Save not found"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
