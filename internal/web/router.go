package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"worldmark/internal/dependencies/random"
	"worldmark/internal/geo"
	"worldmark/internal/palette"
	"worldmark/internal/services/auth"
	"worldmark/internal/services/mapview"
	"worldmark/internal/services/participants"
	"worldmark/internal/visitstore"
	"worldmark/internal/web/handler"
	"worldmark/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger              *slog.Logger
	AuthService         *auth.Service
	ParticipantsService *participants.Service
	MapviewService      *mapview.Service
	Countries           *geo.Catalog
	Colours             *palette.Catalog
	Store               visitstore.Store
	StorePath           string // empty when the store is not file-backed
	Random              random.Random
	StaticDir           string // path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	homeHandler := handler.NewHomeHandler(
		cfg.ParticipantsService,
		cfg.MapviewService,
		cfg.Countries,
		cfg.Colours,
		cfg.Random,
		cfg.Logger,
	)
	participantHandler := handler.NewParticipantHandler(cfg.ParticipantsService, cfg.Logger)
	storeFileHandler := handler.NewStoreFileHandler(cfg.Store, cfg.StorePath, cfg.Logger)
	authHandler := handler.NewAuthHandler(cfg.AuthService)

	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// The map, legend and editor panels work without logging in.
	pages := r.NewRoute().Subrouter()
	pages.Use(flashMiddleware)
	pages.Use(optionalAuthMiddleware)

	pages.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	pages.HandleFunc("/participants", participantHandler.Create).Methods(http.MethodPost)
	pages.HandleFunc("/participants/{id}/delete", participantHandler.Delete).Methods(http.MethodPost)
	pages.HandleFunc("/participants/{id}/visits", participantHandler.SetVisits).Methods(http.MethodPost)
	pages.HandleFunc("/participants/{id}/visits/clear", participantHandler.ClearVisits).Methods(http.MethodPost)

	pages.HandleFunc("/store/new", storeFileHandler.New).Methods(http.MethodPost)
	pages.HandleFunc("/store/download", storeFileHandler.Download).Methods(http.MethodGet)
	pages.HandleFunc("/store/upload", storeFileHandler.Upload).Methods(http.MethodPost)

	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.Use(flashMiddleware)
	authRoutes.Use(optionalAuthMiddleware)
	authRoutes.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	authRoutes.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	authRoutes.HandleFunc("/register", authHandler.RegisterPage).Methods(http.MethodGet)
	authRoutes.HandleFunc("/register", authHandler.Register).Methods(http.MethodPost)
	authRoutes.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	return r
}
