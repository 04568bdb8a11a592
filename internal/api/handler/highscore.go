package handler

import (
	"net/http"

	"github.com/mcoot/jeopardy-go2/internal/api/response"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
)

// HighScoreHandler handles the high score endpoints
type HighScoreHandler struct {
	matchController match.ControllerInterface
}

// NewHighScoreHandler creates a new high score handler
func NewHighScoreHandler(matchController match.ControllerInterface) *HighScoreHandler {
	return &HighScoreHandler{matchController: matchController}
}

// Get handles GET /api/v1/highscore
func (h *HighScoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	hs, err := h.matchController.HighScore(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.HighScoreFromModel(hs))
}

// Reset handles DELETE /api/v1/highscore
func (h *HighScoreHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.matchController.ResetHighScore(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
