package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"worldmark/internal/api/response"
	"worldmark/internal/geo"
	"worldmark/internal/model"
	"worldmark/internal/services/mapview"
	"worldmark/internal/services/participants"
)

// MapHandler handles map payload and styling endpoints
type MapHandler struct {
	participants *participants.Service
	mapview      *mapview.Service
	countries    *geo.Catalog
}

// NewMapHandler creates a new map handler
func NewMapHandler(
	participantsService *participants.Service,
	mapviewService *mapview.Service,
	countries *geo.Catalog,
) *MapHandler {
	return &MapHandler{
		participants: participantsService,
		mapview:      mapviewService,
		countries:    countries,
	}
}

// Map handles GET /api/map. The payload is the boundary
// FeatureCollection with the computed fill and stroke folded into each
// feature's properties, ready for the client-side renderer.
func (h *MapHandler) Map(w http.ResponseWriter, r *http.Request) {
	byID, err := h.participantsByID(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	features := h.countries.Features()
	payload := response.MapPayload{
		Type:     "FeatureCollection",
		Features: make([]response.MapFeature, 0, len(features)),
	}
	for _, f := range features {
		code := geo.CodeOf(f)
		style := mapview.Style(code, h.countries.Name(code), byID)

		props := make(map[string]any, len(f.Properties)+4)
		for k, v := range f.Properties {
			props[k] = v
		}
		props["fill"] = style.FillColour
		props["stroke"] = style.StrokeColour
		if len(style.Owners) > 0 {
			owners := make([]string, len(style.Owners))
			for i, id := range style.Owners {
				owners[i] = string(id)
			}
			props["owners"] = owners
		}

		payload.Features = append(payload.Features, response.MapFeature{
			Type:       f.Type,
			Properties: props,
			Geometry:   f.Geometry,
		})
	}

	response.JSON(w, http.StatusOK, payload)
}

// Styles handles GET /api/v1/map/styles
func (h *MapHandler) Styles(w http.ResponseWriter, r *http.Request) {
	byID, err := h.participantsByID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.mapview.Styles(byID))
}

// Legend handles GET /api/v1/map/legend
func (h *MapHandler) Legend(w http.ResponseWriter, r *http.Request) {
	byID, err := h.participantsByID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, h.mapview.Legend(byID))
}

// Overlaps handles GET /api/v1/map/overlaps
func (h *MapHandler) Overlaps(w http.ResponseWriter, r *http.Request) {
	byID, err := h.participantsByID(r)
	if err != nil {
		WriteError(w, err)
		return
	}
	overlaps := h.mapview.Overlaps(byID)
	if overlaps == nil {
		overlaps = []mapview.Overlap{}
	}
	response.JSON(w, http.StatusOK, overlaps)
}

// Stats handles GET /api/v1/participants/{id}/stats
func (h *MapHandler) Stats(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	p, err := h.participants.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.mapview.StatsFor(p))
}

// Countries handles GET /api/v1/countries
func (h *MapHandler) Countries(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.countries.Countries())
}

func (h *MapHandler) participantsByID(r *http.Request) (map[model.ParticipantID]*model.Participant, error) {
	all, err := h.participants.List(r.Context())
	if err != nil {
		return nil, err
	}
	byID := make(map[model.ParticipantID]*model.Participant, len(all))
	for _, p := range all {
		byID[p.ID] = p
	}
	return byID, nil
}
