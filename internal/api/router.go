package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vkaradzhov/belot-server/internal/api/handler"
	apimiddleware "github.com/vkaradzhov/belot-server/internal/api/middleware"
	"github.com/vkaradzhov/belot-server/internal/middleware"
	"github.com/vkaradzhov/belot-server/internal/services/auth"
	"github.com/vkaradzhov/belot-server/internal/services/session"
	"github.com/vkaradzhov/belot-server/internal/transport/sse"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	AuthService       *auth.Service
	SessionController *session.Controller
	Hub               *sse.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	tableHandler := handler.NewTableHandler(cfg.SessionController)
	eventsHandler := handler.NewEventsHandler(cfg.Hub)

	authMiddleware := apimiddleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimiddleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Table routes (all require auth)
	table := api.PathPrefix("/table").Subrouter()
	table.Use(authMiddleware)
	table.HandleFunc("", tableHandler.Get).Methods(http.MethodGet)
	table.HandleFunc("/join", tableHandler.Join).Methods(http.MethodPost)
	table.HandleFunc("/leave", tableHandler.Leave).Methods(http.MethodPost)
	table.HandleFunc("/hand", tableHandler.GetHand).Methods(http.MethodGet)
	table.HandleFunc("/hands/history", tableHandler.GetHistory).Methods(http.MethodGet)
	table.HandleFunc("/bid", tableHandler.Bid).Methods(http.MethodPost)
	table.HandleFunc("/contra", tableHandler.Contra).Methods(http.MethodPost)
	table.HandleFunc("/contra/pass", tableHandler.ContraPass).Methods(http.MethodPost)
	table.HandleFunc("/rekontra", tableHandler.Rekontra).Methods(http.MethodPost)
	table.HandleFunc("/rekontra/pass", tableHandler.RekontraPass).Methods(http.MethodPost)
	table.HandleFunc("/play", tableHandler.Play).Methods(http.MethodPost)

	// Event stream (auth via header or token query parameter)
	events := api.PathPrefix("/events").Subrouter()
	events.Use(authMiddleware)
	events.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
