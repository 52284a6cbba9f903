package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"

	"worldmark/internal/model"
	"worldmark/internal/services/participants"
	"worldmark/internal/web/middleware"
)

// ParticipantHandler handles participant management form actions
type ParticipantHandler struct {
	participants *participants.Service
	logger       *slog.Logger
}

// NewParticipantHandler creates a new ParticipantHandler
func NewParticipantHandler(participantsService *participants.Service, logger *slog.Logger) *ParticipantHandler {
	return &ParticipantHandler{
		participants: participantsService,
		logger:       logger,
	}
}

// Create handles the add-participant form
func (h *ParticipantHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id := model.ParticipantID(strings.TrimSpace(r.FormValue("id")))
	colour := r.FormValue("colour")

	p, err := h.participants.Create(r.Context(), id, colour)
	switch {
	case errors.Is(err, model.ErrParticipantExists):
		middleware.SetFlash(w, "error", "Participant '"+string(id)+"' already exists")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, model.ErrMalformedColour), errors.Is(err, model.ErrEmptyParticipantID):
		middleware.SetFlash(w, "error", "Name and a valid colour are required")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case err != nil:
		h.logger.Error("create participant", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not add participant")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Added participant "+string(p.ID))
	http.Redirect(w, r, "/?participant="+url.QueryEscape(string(p.ID)), http.StatusSeeOther)
}

// Delete handles the delete-participant form
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	if err := h.participants.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete participant", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not delete participant")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Deleted participant "+string(id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SetVisits replaces the participant's visited countries with the
// checked codes. Clear-then-append under the hood, not atomic.
func (h *ParticipantHandler) SetVisits(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	codes := make([]model.CountryCode, 0, len(r.Form["codes"]))
	for _, code := range r.Form["codes"] {
		codes = append(codes, model.CountryCode(code))
	}

	err := h.participants.SetVisits(r.Context(), id, codes)
	switch {
	case errors.Is(err, model.ErrParticipantNotFound):
		middleware.SetFlash(w, "error", "Unknown participant")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	case errors.Is(err, model.ErrMalformedCountryCode):
		middleware.SetFlash(w, "error", "Invalid country code in selection")
		http.Redirect(w, r, "/?participant="+url.QueryEscape(string(id)), http.StatusSeeOther)
		return
	case err != nil:
		h.logger.Error("set visits", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not save visits")
		http.Redirect(w, r, "/?participant="+url.QueryEscape(string(id)), http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Saved visited countries for "+string(id))
	http.Redirect(w, r, "/?participant="+url.QueryEscape(string(id)), http.StatusSeeOther)
}

// ClearVisits empties the participant's visited countries
func (h *ParticipantHandler) ClearVisits(w http.ResponseWriter, r *http.Request) {
	id := model.ParticipantID(mux.Vars(r)["id"])

	if err := h.participants.ClearVisits(r.Context(), id); err != nil {
		h.logger.Error("clear visits", slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not clear visits")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	middleware.SetFlash(w, "success", "Cleared visited countries for "+string(id))
	http.Redirect(w, r, "/?participant="+url.QueryEscape(string(id)), http.StatusSeeOther)
}
