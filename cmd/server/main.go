package main

import (
	"context"
	"net/http"
	"respawn-map-service/internal/adapters/defaults"
	"respawn-map-service/internal/adapters/geolocation"
	"respawn-map-service/internal/api"
	"respawn-map-service/internal/config"
	"respawn-map-service/internal/platform/kv"
	"respawn-map-service/internal/platform/obs"
	"respawn-map-service/internal/ports"
	"respawn-map-service/internal/services"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires the configured storage backend and default-list source behind
// ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := obs.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatal().Err(err).Msg("logging setup failed")
	}
	if envErr != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	ctx := context.Background()
	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.KVBackend).Msg("open storage")
	}
	defer closeStore()

	settings := services.NewCoordSettings(store)
	respawns := services.NewRespawnStore(store, defaultSource(cfg))
	sync := services.NewViewSynchronizer(respawns, settings)
	if err := sync.Init(ctx); err != nil {
		log.Fatal().Err(err).Msg("load respawn state")
	}
	geo := services.NewGeolocator(locator(cfg))

	router := api.NewRouter(sync, settings, geo, cfg.PublicURL)

	log.Info().Str("addr", ":"+cfg.Port).Str("backend", cfg.KVBackend).Msg("Server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("server stopped")
	}
}

// defaultSource prefers a remote list, then a local file, then the bundled one.
func defaultSource(cfg config.Config) ports.DefaultListSource {
	switch {
	case cfg.DefaultsURL != "":
		return defaults.NewHTTPSource(cfg.DefaultsURL, cfg.DefaultsRetries)
	case cfg.DefaultsPath != "":
		return defaults.NewFileSource(cfg.DefaultsPath)
	default:
		return defaults.NewEmbeddedSource()
	}
}

// locator returns nil when no position is configured, which disables
// geolocation.
func locator(cfg config.Config) ports.Locator {
	if cfg.LocateLat == nil || cfg.LocateLng == nil {
		return nil
	}
	return geolocation.NewStaticLocator(*cfg.LocateLat, *cfg.LocateLng)
}
