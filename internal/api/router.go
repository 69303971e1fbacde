package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/dragonword-go/internal/api/handler"
	"github.com/mcoot/dragonword-go/internal/middleware"
	"github.com/mcoot/dragonword-go/internal/realtime"
	"github.com/mcoot/dragonword-go/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Controller  *game.Controller
	HubManager  *realtime.HubManager
	Broadcaster *realtime.Broadcaster
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	sessionHandler := handler.NewSessionHandler(cfg.Controller, cfg.HubManager, cfg.Broadcaster)
	gameplayHandler := handler.NewGameplayHandler(cfg.Controller, cfg.Broadcaster)
	wsHandler := handler.NewWSHandler(cfg.Controller, cfg.HubManager, cfg.Logger)

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session lifecycle routes
	api.HandleFunc("/games", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/join", sessionHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/leave", sessionHandler.Leave).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/state", sessionHandler.State).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/timer", sessionHandler.GetTimer).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}/timer", sessionHandler.SetTimer).Methods(http.MethodPut)

	// Gameplay routes
	api.HandleFunc("/games/{id}/start", gameplayHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/voting/start", gameplayHandler.StartVoting).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/vote", gameplayHandler.Vote).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}/guess", gameplayHandler.Guess).Methods(http.MethodPost)

	// Realtime state feed
	api.HandleFunc("/games/{id}/ws", wsHandler.Connect).Methods(http.MethodGet)

	// Operational routes
	api.HandleFunc("/stats", sessionHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
