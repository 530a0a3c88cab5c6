package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"respawn-map-service/internal/adapters/defaults"
	"respawn-map-service/internal/config"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/platform/kv"
	"respawn-map-service/internal/platform/obs"
	"respawn-map-service/internal/ports"
	"respawn-map-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/sanity-io/litter"
)

var (
	seedFlag = flag.String("seed", "", "replace the respawn list with the JSON array in this file")
	dumpFlag = flag.Bool("dump", false, "print the persisted state")
)

// persistedState is what -dump prints.
type persistedState struct {
	Backend   string
	Respawns  []domain.RespawnPoint
	Selected  int
	Settings  domain.CoordsSettings
	RawValues map[string]*string
}

func main() {
	flag.Parse()
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

	// Opening a SQL backend also initializes its schema.
	log.Info().Str("backend", cfg.KVBackend).Msg("Opening storage...")
	store, closeStore, err := kv.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open storage")
	}
	defer closeStore()
	log.Info().Msg("Storage ready.")

	if *seedFlag != "" {
		if err := seed(ctx, store, *seedFlag); err != nil {
			log.Error().Err(err).Msg("seeding failed")
			closeStore()
			os.Exit(1)
		}
	}

	if *dumpFlag {
		if err := dump(ctx, store, cfg.KVBackend); err != nil {
			log.Error().Err(err).Msg("dump failed")
			closeStore()
			os.Exit(1)
		}
	}
}

func seed(ctx context.Context, store ports.KeyValueStore, path string) error {
	log.Info().Str("path", path).Msg("Seeding respawn list...")

	list, err := defaults.NewFileSource(path).FetchDefaults(ctx)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := services.NewRespawnStore(store, nil).Save(ctx, list); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if err := store.Set(ctx, services.KeySelectedRespawn, "0"); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	log.Info().Int("count", len(list)).Msg("Seeding complete.")
	return nil
}

func dump(ctx context.Context, store ports.KeyValueStore, backend string) error {
	raw := make(map[string]*string)
	for _, key := range []string{
		services.KeyRespawnList,
		services.KeySelectedRespawn,
		services.KeyCoordPrecision,
		services.KeyCoordExponent,
	} {
		v, ok, err := store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		if ok {
			raw[key] = &v
		} else {
			raw[key] = nil
		}
	}

	st, err := services.NewRespawnStore(readOnly{store}, nil).Load(ctx)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	settings, err := services.NewCoordSettings(store).Resolve(ctx, domain.SettingsInput{})
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	litter.Dump(persistedState{
		Backend:   backend,
		Respawns:  st.List,
		Selected:  st.Selected,
		Settings:  settings,
		RawValues: raw,
	})
	return nil
}

// readOnly lets -dump reuse the load path without writing defaults back.
type readOnly struct {
	ports.KeyValueStore
}

func (readOnly) Set(ctx context.Context, key string, value string) error { return nil }
