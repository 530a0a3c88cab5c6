package handlers

import (
	"context"
	"net/http"
	"respawn-map-service/internal/adapters/location"
	"respawn-map-service/internal/api/dto"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/services"

	"github.com/samber/lo"
)

// RespawnHandler exposes the respawn list and its selection.
// Every mutation answers with the updated list and the replaced page URL.
type RespawnHandler struct {
	Sync      *services.ViewSynchronizer
	PublicURL string
}

func (h *RespawnHandler) List(w http.ResponseWriter, r *http.Request) {
	res, err := h.listResponse(r.Context(), "")
	if err != nil {
		writeServiceError(w, r, "list respawns", err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// Save adds the entry when a new one is pending, otherwise overwrites the
// selected entry.
func (h *RespawnHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.RespawnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := domain.NewRespawnPoint(req.Name, formValue(req.Lat), formValue(req.Lng))
	if err != nil {
		writeServiceError(w, r, "save respawn", err)
		return
	}

	h.mutate(w, r, "save respawn", func(ctx context.Context, page *location.Page) error {
		return h.Sync.SaveEntry(ctx, page, p)
	})
}

// New starts composing an entry that is not yet part of the list.
func (h *RespawnHandler) New(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "new respawn", func(ctx context.Context, page *location.Page) error {
		return h.Sync.BeginNew(ctx, page)
	})
}

func (h *RespawnHandler) Update(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "idx must be an integer")
		return
	}

	var req dto.RespawnRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := domain.NewRespawnPoint(req.Name, formValue(req.Lat), formValue(req.Lng))
	if err != nil {
		writeServiceError(w, r, "update respawn", err)
		return
	}

	h.mutate(w, r, "update respawn", func(ctx context.Context, page *location.Page) error {
		return h.Sync.UpdateEntry(ctx, page, idx, p)
	})
}

func (h *RespawnHandler) Delete(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "idx must be an integer")
		return
	}

	h.mutate(w, r, "delete respawn", func(ctx context.Context, page *location.Page) error {
		return h.Sync.DeleteEntry(ctx, page, idx)
	})
}

func (h *RespawnHandler) Select(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "idx must be an integer")
		return
	}

	h.mutate(w, r, "select respawn", func(ctx context.Context, page *location.Page) error {
		return h.Sync.SelectEntry(ctx, page, idx)
	})
}

func (h *RespawnHandler) mutate(w http.ResponseWriter, r *http.Request, op string, fn func(ctx context.Context, page *location.Page) error) {
	page, err := pageFromRequest(h.PublicURL, r)
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	if err := fn(r.Context(), page); err != nil {
		writeServiceError(w, r, op, err)
		return
	}

	res, err := h.listResponse(r.Context(), page.URL().String())
	if err != nil {
		writeServiceError(w, r, op, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *RespawnHandler) listResponse(ctx context.Context, pageURL string) (dto.ListRespawnsResponse, error) {
	list, selected, err := h.Sync.Respawns(ctx)
	if err != nil {
		return dto.ListRespawnsResponse{}, err
	}

	return dto.ListRespawnsResponse{
		Respawns: lo.Map(list, func(p domain.RespawnPoint, i int) dto.RespawnResponse {
			return dto.RespawnResponse{Index: i, Name: p.Name, Lat: p.Lat, Lng: p.Lng, Selected: i == selected}
		}),
		Selected:   selected,
		PendingNew: selected == len(list),
		URL:        pageURL,
	}, nil
}
