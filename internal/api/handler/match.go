package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/jeopardy-go2/internal/api/request"
	"github.com/mcoot/jeopardy-go2/internal/api/response"
	"github.com/mcoot/jeopardy-go2/internal/model"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
)

// MatchHandler handles live match endpoints
type MatchHandler struct {
	matchController match.ControllerInterface
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController match.ControllerInterface) *MatchHandler {
	return &MatchHandler{matchController: matchController}
}

// Create handles POST /api/v1/matches
func (h *MatchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	view, err := h.matchController.CreateMatch(r.Context(), req.Players)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromView(view))
}

// Get handles GET /api/v1/matches/{id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.matchController.GetMatch(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}

// End handles DELETE /api/v1/matches/{id}
func (h *MatchHandler) End(w http.ResponseWriter, r *http.Request) {
	if err := h.matchController.EndMatch(r.Context(), mux.Vars(r)["id"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Select handles POST /api/v1/matches/{id}/select
func (h *MatchHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req request.SelectCellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	category, err := model.ParseCategory(req.Category)
	if err != nil {
		WriteError(w, err)
		return
	}

	view, err := h.matchController.SelectCell(r.Context(), mux.Vars(r)["id"], category, req.Value)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}

// Answer handles POST /api/v1/matches/{id}/answer
func (h *MatchHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Choice == nil {
		WriteError(w, NewInvalidRequestError("choice is required"))
		return
	}

	view, err := h.matchController.SubmitAnswer(r.Context(), mux.Vars(r)["id"], *req.Choice)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}

// PlayAgain handles POST /api/v1/matches/{id}/play-again
func (h *MatchHandler) PlayAgain(w http.ResponseWriter, r *http.Request) {
	view, err := h.matchController.PlayAgain(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}

// Save handles POST /api/v1/matches/{id}/save
func (h *MatchHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req request.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	view, err := h.matchController.SaveMatch(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}

// Restore handles POST /api/v1/matches/{id}/restore
func (h *MatchHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req request.SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	view, err := h.matchController.RestoreMatch(r.Context(), mux.Vars(r)["id"], req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromView(view))
}
