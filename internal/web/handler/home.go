package handler

import (
	"log/slog"
	"net/http"

	"worldmark/internal/geo"
	"worldmark/internal/model"
	"worldmark/internal/palette"
	"worldmark/internal/services/mapview"
	"worldmark/internal/services/participants"
	"worldmark/internal/web/middleware"
	"worldmark/internal/web/templates/layout"
	"worldmark/internal/web/templates/pages"

	"worldmark/internal/dependencies/random"
)

// HomeHandler renders the map page
type HomeHandler struct {
	participants *participants.Service
	mapview      *mapview.Service
	countries    *geo.Catalog
	colours      *palette.Catalog
	random       random.Random
	logger       *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(
	participantsService *participants.Service,
	mapviewService *mapview.Service,
	countries *geo.Catalog,
	colours *palette.Catalog,
	rnd random.Random,
	logger *slog.Logger,
) *HomeHandler {
	return &HomeHandler{
		participants: participantsService,
		mapview:      mapviewService,
		countries:    countries,
		colours:      colours,
		random:       rnd,
		logger:       logger,
	}
}

// Home renders the map page with legend, stats and editor panels
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	flash := middleware.GetFlash(r.Context())

	all, err := h.participants.List(r.Context())
	if err != nil {
		h.logger.Error("list participants", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	byID := make(map[model.ParticipantID]*model.Participant, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}

	selected := model.ParticipantID(r.URL.Query().Get("participant"))
	if _, ok := byID[selected]; !ok {
		selected = ""
	}
	// A logged-in user defaults to their own participant when it exists.
	if selected == "" && username != "" {
		if _, ok := byID[model.ParticipantID(username)]; ok {
			selected = model.ParticipantID(username)
		}
	}

	colours := h.colours.AllColours()
	defaultIndex := 0
	if len(colours) > 0 {
		defaultIndex = h.random.Intn(len(colours))
	}

	data := pages.HomeData{
		PageData: layout.PageData{
			Title:    "World map",
			Username: username,
			Flash:    flash,
		},
		Legend:             h.mapview.Legend(byID),
		Selected:           selected,
		Overlaps:           h.mapview.Overlaps(byID),
		Countries:          h.countries.Countries(),
		Visited:            map[model.CountryCode]struct{}{},
		Colours:            colours,
		DefaultColourIndex: defaultIndex,
	}
	if p, ok := byID[selected]; ok {
		data.Stats = h.mapview.StatsFor(p)
		data.Visited = p.VisitedSet()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Home(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
