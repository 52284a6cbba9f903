package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"worldmark/internal/api/request"
	"worldmark/internal/api/response"
	"worldmark/internal/model"
	"worldmark/internal/services/participants"
)

// ParticipantHandler handles participant endpoints
type ParticipantHandler struct {
	participants *participants.Service
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(participantsService *participants.Service) *ParticipantHandler {
	return &ParticipantHandler{
		participants: participantsService,
	}
}

// List handles GET /api/v1/participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	all, err := h.participants.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Participant, 0, len(all))
	for _, p := range all {
		out = append(out, response.ParticipantFromModel(p))
	}
	response.JSON(w, http.StatusOK, out)
}

// Create handles POST /api/v1/participants
func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	p, err := h.participants.Create(r.Context(), model.ParticipantID(req.ID), req.Colour)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ParticipantFromModel(p))
}

// Get handles GET /api/v1/participants/{id}
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	p, err := h.participants.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantFromModel(p))
}

// Recolour handles PATCH /api/v1/participants/{id}/colour
func (h *ParticipantHandler) Recolour(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	var req request.RecolourRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if err := h.participants.Recolour(r.Context(), id, req.Colour); err != nil {
		WriteError(w, err)
		return
	}

	p, err := h.participants.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ParticipantFromModel(p))
}

// Delete handles DELETE /api/v1/participants/{id}
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	if err := h.participants.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
