package handlers

import (
	"net/http"
	"respawn-map-service/internal/adapters/location"
	"respawn-map-service/internal/api/dto"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/services"
)

// ViewHandler renders the coordinate display for the client's map center.
type ViewHandler struct {
	Sync      *services.ViewSynchronizer
	PublicURL string
}

// Start loads persisted state and renders the first view.
func (h *ViewHandler) Start(w http.ResponseWriter, r *http.Request) {
	page, center, ok := h.pageAndCenter(w, r)
	if !ok {
		return
	}

	view, err := h.Sync.Start(r.Context(), page, center, settingsFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "start view", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toViewResponse(view, page.URL().String()))
}

// Move handles a map event. Only event=moveend (the default) re-renders;
// event=move is acknowledged with 204.
func (h *ViewHandler) Move(w http.ResponseWriter, r *http.Request) {
	kind := domain.MapMoveEnd
	switch r.URL.Query().Get("event") {
	case "", "moveend":
	case "move":
		kind = domain.MapMove
	default:
		writeError(w, r, http.StatusBadRequest, "event must be move or moveend")
		return
	}

	page, center, ok := h.pageAndCenter(w, r)
	if !ok {
		return
	}

	view, rendered, err := h.Sync.HandleMapEvent(r.Context(), page, domain.MapEvent{Kind: kind, Center: center}, settingsFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "update view", err)
		return
	}
	if !rendered {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, r, http.StatusOK, toViewResponse(view, page.URL().String()))
}

// Share returns the share-intent link for the current view.
func (h *ViewHandler) Share(w http.ResponseWriter, r *http.Request) {
	page, center, ok := h.pageAndCenter(w, r)
	if !ok {
		return
	}

	link, err := h.Sync.Share(r.Context(), page, center, settingsFromRequest(r))
	if err != nil {
		writeServiceError(w, r, "share view", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ShareResponse{ShareURL: link, URL: page.URL().String()})
}

// CenterForm returns the map center formatted for the entry form.
func (h *ViewHandler) CenterForm(w http.ResponseWriter, r *http.Request) {
	center, err := centerFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	lat, lng := services.CenterFormValues(center)
	writeJSON(w, r, http.StatusOK, dto.CenterFormResponse{Lat: lat, Lng: lng})
}

func (h *ViewHandler) pageAndCenter(w http.ResponseWriter, r *http.Request) (*location.Page, domain.LatLng, bool) {
	center, err := centerFromRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return nil, domain.LatLng{}, false
	}

	page, err := pageFromRequest(h.PublicURL, r)
	if err != nil {
		writeServiceError(w, r, "read page url", err)
		return nil, domain.LatLng{}, false
	}
	return page, center, true
}
