package handlers

import (
	"net/http"
	"respawn-map-service/internal/api/dto"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/services"
)

type LocateHandler struct {
	Geo       *services.Geolocator
	Sync      *services.ViewSynchronizer
	PublicURL string
}

// Locate recenters on the device position and renders the view there.
func (h *LocateHandler) Locate(w http.ResponseWriter, r *http.Request) {
	pos, err := h.Geo.Locate(r.Context())
	if err != nil {
		writeServiceError(w, r, "locate", err)
		return
	}

	page, err := pageFromRequest(h.PublicURL, r)
	if err != nil {
		writeServiceError(w, r, "locate", err)
		return
	}

	ev := domain.MapEvent{Kind: domain.MapMoveEnd, Center: pos}
	view, _, err := h.Sync.HandleMapEvent(r.Context(), page, ev, settingsFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "locate", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LocateResponse{
		Center: toLatLng(pos),
		Zoom:   services.LocateZoom,
		View:   toViewResponse(view, page.URL().String()),
	})
}
