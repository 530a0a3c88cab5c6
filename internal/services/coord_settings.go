package services

import (
	"context"
	"fmt"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/ports"
	"strconv"
	"strings"
)

// CoordSettings resolves display precision and exponent from form input,
// then persisted values, then defaults.
type CoordSettings struct {
	kv ports.KeyValueStore
}

func NewCoordSettings(kv ports.KeyValueStore) *CoordSettings {
	return &CoordSettings{kv: kv}
}

// Resolve each field independently: a parseable input wins, then a
// parseable persisted value, then the default.
func (s *CoordSettings) Resolve(ctx context.Context, in domain.SettingsInput) (domain.CoordsSettings, error) {
	out := domain.DefaultCoordsSettings()

	pre, ok := parsePrecision(in.Precision)
	if !ok {
		stored, found, err := s.stored(ctx, KeyCoordPrecision, parsePrecision)
		if err != nil {
			return out, err
		}
		pre, ok = stored, found
	}
	if ok {
		out.Precision = pre
	}

	exp, ok := parseExponent(in.Exponent)
	if !ok {
		stored, found, err := s.stored(ctx, KeyCoordExponent, parseExponent)
		if err != nil {
			return out, err
		}
		exp, ok = stored, found
	}
	if ok {
		out.Exponent = exp
	}

	return out, nil
}

// Persist stores the fields that parse. A field that does not parse leaves
// its persisted value untouched.
func (s *CoordSettings) Persist(ctx context.Context, in domain.SettingsInput) error {
	if pre, ok := parsePrecision(in.Precision); ok {
		if err := s.kv.Set(ctx, KeyCoordPrecision, strconv.Itoa(pre)); err != nil {
			return fmt.Errorf("persist settings: %s: %w", KeyCoordPrecision, err)
		}
	}
	if exp, ok := parseExponent(in.Exponent); ok {
		if err := s.kv.Set(ctx, KeyCoordExponent, strconv.Itoa(exp)); err != nil {
			return fmt.Errorf("persist settings: %s: %w", KeyCoordExponent, err)
		}
	}
	return nil
}

func (s *CoordSettings) stored(ctx context.Context, key string, parse func(string) (int, bool)) (int, bool, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return 0, false, fmt.Errorf("resolve settings: %s: %w", key, err)
	}
	if !ok {
		return 0, false, nil
	}
	v, ok := parse(raw)
	return v, ok, nil
}

func parsePrecision(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 || v > domain.MaxPrecision {
		return 0, false
	}
	return v, true
}

func parseExponent(raw string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < -domain.MaxExponent || v > domain.MaxExponent {
		return 0, false
	}
	return v, true
}
