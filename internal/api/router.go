package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"worldmark/internal/api/handler"
	"worldmark/internal/api/middleware"
	"worldmark/internal/geo"
	"worldmark/internal/palette"
	"worldmark/internal/services/auth"
	"worldmark/internal/services/mapview"
	"worldmark/internal/services/participants"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	ParticipantsService *participants.Service
	MapviewService      *mapview.Service
	Countries           *geo.Catalog
	Colours             *palette.Catalog
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	participantHandler := handler.NewParticipantHandler(cfg.ParticipantsService)
	visitsHandler := handler.NewVisitsHandler(cfg.ParticipantsService)
	mapHandler := handler.NewMapHandler(cfg.ParticipantsService, cfg.MapviewService, cfg.Countries)
	paletteHandler := handler.NewPaletteHandler(cfg.Colours)
	userHandler := handler.NewUserHandler(cfg.AuthService)

	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// The map page fetches its styled payload from here.
	api.HandleFunc("/map", mapHandler.Map).Methods(http.MethodGet)

	v1 := api.PathPrefix("/v1").Subrouter()

	// Participant routes (unauthenticated, like the page itself)
	v1.HandleFunc("/participants", participantHandler.List).Methods(http.MethodGet)
	v1.HandleFunc("/participants", participantHandler.Create).Methods(http.MethodPost)
	v1.HandleFunc("/participants/{id}", participantHandler.Get).Methods(http.MethodGet)
	v1.HandleFunc("/participants/{id}", participantHandler.Delete).Methods(http.MethodDelete)
	v1.HandleFunc("/participants/{id}/colour", participantHandler.Recolour).Methods(http.MethodPatch)
	v1.HandleFunc("/participants/{id}/stats", mapHandler.Stats).Methods(http.MethodGet)

	// Visit routes
	v1.HandleFunc("/participants/{id}/visits", visitsHandler.Append).Methods(http.MethodPost)
	v1.HandleFunc("/participants/{id}/visits", visitsHandler.Replace).Methods(http.MethodPut)
	v1.HandleFunc("/participants/{id}/visits", visitsHandler.Clear).Methods(http.MethodDelete)

	// Map routes
	v1.HandleFunc("/map", mapHandler.Map).Methods(http.MethodGet)
	v1.HandleFunc("/map/styles", mapHandler.Styles).Methods(http.MethodGet)
	v1.HandleFunc("/map/legend", mapHandler.Legend).Methods(http.MethodGet)
	v1.HandleFunc("/map/overlaps", mapHandler.Overlaps).Methods(http.MethodGet)
	v1.HandleFunc("/countries", mapHandler.Countries).Methods(http.MethodGet)

	// Palette routes
	v1.HandleFunc("/palettes", paletteHandler.List).Methods(http.MethodGet)
	v1.HandleFunc("/palettes/{name}", paletteHandler.Get).Methods(http.MethodGet)
	v1.HandleFunc("/colours", paletteHandler.Colours).Methods(http.MethodGet)

	// User routes (no auth required for registering/logging in)
	v1.HandleFunc("/users/register", userHandler.Register).Methods(http.MethodPost)
	v1.HandleFunc("/users/login", userHandler.Login).Methods(http.MethodPost)

	// Protected user routes
	usersProtected := v1.PathPrefix("/users").Subrouter()
	usersProtected.Use(authMiddleware)
	usersProtected.HandleFunc("/me", userHandler.GetMe).Methods(http.MethodGet)
	usersProtected.HandleFunc("/logout", userHandler.Logout).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	v1.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
