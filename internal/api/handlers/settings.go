package handlers

import (
	"net/http"
	"respawn-map-service/internal/api/dto"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/services"
)

type SettingsHandler struct {
	Settings *services.CoordSettings
}

// Get resolves the effective settings; pre and exp query values act as
// unsaved form input.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Resolve(r.Context(), settingsFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "resolve settings", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SettingsResponse{Precision: s.Precision, Exponent: s.Exponent})
}

// Put persists the fields that parse and returns the resolved settings.
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := domain.SettingsInput{Precision: formValue(req.Precision), Exponent: formValue(req.Exponent)}
	if err := h.Settings.Persist(r.Context(), in); err != nil {
		writeServiceError(w, r, "persist settings", err)
		return
	}

	s, err := h.Settings.Resolve(r.Context(), domain.SettingsInput{})
	if err != nil {
		writeServiceError(w, r, "resolve settings", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SettingsResponse{Precision: s.Precision, Exponent: s.Exponent})
}
