package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/jeopardy-go2/internal/api/handler"
	"github.com/mcoot/jeopardy-go2/internal/api/middleware"
	"github.com/mcoot/jeopardy-go2/internal/services/match"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger          *slog.Logger
	MatchController match.ControllerInterface
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	matchHandler := handler.NewMatchHandler(cfg.MatchController)
	savesHandler := handler.NewSavesHandler(cfg.MatchController)
	highScoreHandler := handler.NewHighScoreHandler(cfg.MatchController)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Match routes
	matches := api.PathPrefix("/matches").Subrouter()
	matches.HandleFunc("", matchHandler.Create).Methods(http.MethodPost)
	matches.HandleFunc("/{id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{id}", matchHandler.End).Methods(http.MethodDelete)
	matches.HandleFunc("/{id}/select", matchHandler.Select).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/answer", matchHandler.Answer).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/play-again", matchHandler.PlayAgain).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/save", matchHandler.Save).Methods(http.MethodPost)
	matches.HandleFunc("/{id}/restore", matchHandler.Restore).Methods(http.MethodPost)

	// Save routes
	api.HandleFunc("/saves", savesHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/saves/{name}/load", savesHandler.Load).Methods(http.MethodPost)
	api.HandleFunc("/saves/{name}", savesHandler.Delete).Methods(http.MethodDelete)

	// High score routes
	api.HandleFunc("/highscore", highScoreHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/highscore", highScoreHandler.Reset).Methods(http.MethodDelete)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
