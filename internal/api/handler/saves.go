package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/jeopardy-go2/internal/api/response"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
)

// SavesHandler handles saved match endpoints
type SavesHandler struct {
	matchController match.ControllerInterface
}

// NewSavesHandler creates a new saves handler
func NewSavesHandler(matchController match.ControllerInterface) *SavesHandler {
	return &SavesHandler{matchController: matchController}
}

// List handles GET /api/v1/saves
func (h *SavesHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.matchController.ListSaves(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	response.JSON(w, http.StatusOK, response.Saves{Saves: names})
}

// Load handles POST /api/v1/saves/{name}/load
func (h *SavesHandler) Load(w http.ResponseWriter, r *http.Request) {
	view, err := h.matchController.LoadMatch(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromView(view))
}

// Delete handles DELETE /api/v1/saves/{name}
func (h *SavesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.matchController.DeleteSave(r.Context(), mux.Vars(r)["name"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
