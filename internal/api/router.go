package api

import (
	"net/http"
	"respawn-map-service/internal/api/handlers"
	"respawn-map-service/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of storage adapters).
func NewRouter(sync *services.ViewSynchronizer, settings *services.CoordSettings, geo *services.Geolocator, publicURL string) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)

	view := &handlers.ViewHandler{Sync: sync, PublicURL: publicURL}
	respawns := &handlers.RespawnHandler{Sync: sync, PublicURL: publicURL}
	settingsHandler := &handlers.SettingsHandler{Settings: settings}
	locate := &handlers.LocateHandler{Geo: geo, Sync: sync, PublicURL: publicURL}

	r.Get("/health", handlers.Health)

	r.Post("/view/start", view.Start)
	r.Get("/view", view.Move)
	r.Get("/share", view.Share)
	r.Get("/center-form", view.CenterForm)

	r.Get("/respawns", respawns.List)
	r.Post("/respawns", respawns.Save)
	r.Post("/respawns/new", respawns.New)
	r.Put("/respawns/{idx}", respawns.Update)
	r.Delete("/respawns/{idx}", respawns.Delete)
	r.Post("/respawns/{idx}/select", respawns.Select)

	r.Get("/settings", settingsHandler.Get)
	r.Put("/settings", settingsHandler.Put)

	r.Post("/locate", locate.Locate)

	return r
}
