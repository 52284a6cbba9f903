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

// VisitsHandler handles visit endpoints
type VisitsHandler struct {
	participants *participants.Service
}

// NewVisitsHandler creates a new visits handler
func NewVisitsHandler(participantsService *participants.Service) *VisitsHandler {
	return &VisitsHandler{
		participants: participantsService,
	}
}

// Append handles POST /api/v1/participants/{id}/visits
func (h *VisitsHandler) Append(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	codes, ok := h.decodeCodes(w, r)
	if !ok {
		return
	}

	if err := h.participants.AppendVisits(r.Context(), id, codes); err != nil {
		WriteError(w, err)
		return
	}

	h.writeParticipant(w, r, id)
}

// Replace handles PUT /api/v1/participants/{id}/visits
func (h *VisitsHandler) Replace(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	codes, ok := h.decodeCodes(w, r)
	if !ok {
		return
	}

	if err := h.participants.SetVisits(r.Context(), id, codes); err != nil {
		WriteError(w, err)
		return
	}

	h.writeParticipant(w, r, id)
}

// Clear handles DELETE /api/v1/participants/{id}/visits
func (h *VisitsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	if err := h.participants.ClearVisits(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func (h *VisitsHandler) decodeCodes(w http.ResponseWriter, r *http.Request) ([]model.CountryCode, bool) {
	var req request.VisitsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return nil, false
	}

	codes := make([]model.CountryCode, 0, len(req.Codes))
	for _, code := range req.Codes {
		codes = append(codes, model.CountryCode(code))
	}
	return codes, true
}

func (h *VisitsHandler) writeParticipant(w http.ResponseWriter, r *http.Request, id model.ParticipantID) {
	p, err := h.participants.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ParticipantFromModel(p))
}
