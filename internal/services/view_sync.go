package services

import (
	"context"
	"fmt"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/platform/obs"
	"respawn-map-service/internal/ports"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ViewSynchronizer owns the respawn state and keeps the display text and
// page URL consistent with it. Every operation runs under one lock.
//
// The persisted state is loaded before the first operation touches it, so a
// mutation never flushes an unloaded list over the stored one.
type ViewSynchronizer struct {
	mu       sync.Mutex
	store    *RespawnStore
	settings *CoordSettings
	state    *domain.RespawnState
	loaded   bool
}

func NewViewSynchronizer(store *RespawnStore, settings *CoordSettings) *ViewSynchronizer {
	return &ViewSynchronizer{
		store:    store,
		settings: settings,
		state:    &domain.RespawnState{List: []domain.RespawnPoint{}},
	}
}

// Init loads the persisted state. Calling it again is a no-op.
func (v *ViewSynchronizer) Init(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.ensureLoaded(ctx)
}

// Start reloads persisted state, applies a respawn point referenced by the
// page URL, and renders the view at center.
func (v *ViewSynchronizer) Start(ctx context.Context, page ports.PageLocation, center domain.LatLng, in domain.SettingsInput) (view domain.View, err error) {
	defer obs.Time(ctx, "view_start")(&err)

	st, err := v.store.Load(ctx)
	if err != nil {
		return domain.View{}, fmt.Errorf("start view: %w", err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	v.state, v.loaded = st, true
	if err := v.selectFromPage(ctx, page); err != nil {
		return domain.View{}, fmt.Errorf("start view: %w", err)
	}
	v.syncRespawnParams(page)

	return v.update(ctx, page, center, in)
}

// HandleMapEvent re-renders on completed gestures. Intermediate frames are
// ignored and reported with ok=false.
func (v *ViewSynchronizer) HandleMapEvent(ctx context.Context, page ports.PageLocation, ev domain.MapEvent, in domain.SettingsInput) (view domain.View, ok bool, err error) {
	if ev.Kind != domain.MapMoveEnd {
		return domain.View{}, false, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return domain.View{}, false, err
	}

	view, err = v.update(ctx, page, ev.Center, in)
	if err != nil {
		return domain.View{}, false, err
	}
	return view, true, nil
}

// Respawns returns a copy of the list and the current selection.
func (v *ViewSynchronizer) Respawns(ctx context.Context) ([]domain.RespawnPoint, int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return nil, 0, err
	}
	return v.state.Snapshot(), v.state.Selected, nil
}

// SaveEntry adds p when a new entry is pending, else overwrites the selection.
func (v *ViewSynchronizer) SaveEntry(ctx context.Context, page ports.PageLocation, p domain.RespawnPoint) error {
	return v.mutate(ctx, page, func(st *domain.RespawnState) error {
		return v.store.SaveEntry(ctx, st, p)
	})
}

func (v *ViewSynchronizer) UpdateEntry(ctx context.Context, page ports.PageLocation, idx int, p domain.RespawnPoint) error {
	return v.mutate(ctx, page, func(st *domain.RespawnState) error {
		return v.store.Update(ctx, st, idx, p)
	})
}

func (v *ViewSynchronizer) DeleteEntry(ctx context.Context, page ports.PageLocation, idx int) error {
	return v.mutate(ctx, page, func(st *domain.RespawnState) error {
		return v.store.Delete(ctx, st, idx)
	})
}

func (v *ViewSynchronizer) SelectEntry(ctx context.Context, page ports.PageLocation, idx int) error {
	return v.mutate(ctx, page, func(st *domain.RespawnState) error {
		return v.store.Select(ctx, st, idx)
	})
}

// BeginNew starts composing an entry that is not yet in the list. The page
// URL keeps the previous respawn point until the entry is saved.
func (v *ViewSynchronizer) BeginNew(ctx context.Context, page ports.PageLocation) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return err
	}
	v.store.BeginNew(v.state)
	v.syncRespawnParams(page)
	return nil
}

// Share renders the view at center and returns the share-intent URL for it.
func (v *ViewSynchronizer) Share(ctx context.Context, page ports.PageLocation, center domain.LatLng, in domain.SettingsInput) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return "", err
	}

	view, err := v.update(ctx, page, center, in)
	if err != nil {
		return "", err
	}

	u := page.URL()
	return BuildShareURL(u.String(), view.Text, u.Query().Get(ParamRespawnName)), nil
}

func (v *ViewSynchronizer) mutate(ctx context.Context, page ports.PageLocation, fn func(st *domain.RespawnState) error) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := fn(v.state); err != nil {
		return err
	}
	v.syncRespawnParams(page)
	return nil
}

// Caller must hold v.mu.
func (v *ViewSynchronizer) ensureLoaded(ctx context.Context) error {
	if v.loaded {
		return nil
	}

	st, err := v.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load view state: %w", err)
	}
	v.state, v.loaded = st, true
	return nil
}

// selectFromPage selects the point named by respawnName, respawnLat and
// respawnLon, appending it when the list has no match. All three must be
// present.
func (v *ViewSynchronizer) selectFromPage(ctx context.Context, page ports.PageLocation) error {
	q := page.URL().Query()
	name := q.Get(ParamRespawnName)
	rawLat, rawLng := q.Get(ParamRespawnLat), q.Get(ParamRespawnLon)
	if name == "" || rawLat == "" || rawLng == "" {
		return nil
	}

	ref, ok := parseLatLng(rawLat, rawLng)
	if !ok {
		log.Warn().Str("respawn_lat", rawLat).Str("respawn_lon", rawLng).Msg("ignoring unparseable respawn in page url")
		return nil
	}
	return v.store.SelectByIdentity(ctx, v.state, name, ref.Lat, ref.Lng)
}

// syncRespawnParams writes the selected point into the page URL. A pending
// new entry leaves the URL as is.
func (v *ViewSynchronizer) syncRespawnParams(page ports.PageLocation) {
	p, ok := v.state.Current()
	if !ok {
		return
	}

	u := page.URL()
	q := u.Query()
	q.Set(ParamRespawnName, p.Name)
	q.Set(ParamRespawnLat, strconv.FormatFloat(p.Lat, 'f', -1, 64))
	q.Set(ParamRespawnLon, strconv.FormatFloat(p.Lng, 'f', -1, 64))
	u.RawQuery = q.Encode()
	page.Replace(u)
}

// resolveRespawn prefers coordinates in the page URL over the selection.
func (v *ViewSynchronizer) resolveRespawn(page ports.PageLocation) (domain.LatLng, bool) {
	q := page.URL().Query()
	if ref, ok := parseLatLng(q.Get(ParamRespawnLat), q.Get(ParamRespawnLon)); ok {
		return ref, true
	}

	p, ok := v.state.Current()
	if !ok {
		return domain.LatLng{}, false
	}
	v.syncRespawnParams(page)
	return p.Coordinates(), true
}

func (v *ViewSynchronizer) update(ctx context.Context, page ports.PageLocation, center domain.LatLng, in domain.SettingsInput) (domain.View, error) {
	view := domain.View{Mode: domain.ModeAbsolute, Text: center.String(), Center: center}

	if ref, ok := v.resolveRespawn(page); ok {
		settings, err := v.settings.Resolve(ctx, in)
		if err != nil {
			return domain.View{}, fmt.Errorf("update view: %w", err)
		}

		delta := CalculateCoords(center.Lat, center.Lng, ref.Lat, ref.Lng, settings.Precision, settings.Exponent)
		dist, err := DistanceFromOriginText(delta.DY, delta.DX)
		if err != nil {
			return domain.View{}, fmt.Errorf("update view: %w", err)
		}

		view.Mode = domain.ModeRelative
		view.Respawn = &ref
		view.Delta = &delta
		view.DistanceKm = dist
		view.Text = RelativeText(dist, delta)
	}

	u := page.URL()
	q := u.Query()
	q.Set(ParamLat, strconv.FormatFloat(center.Lat, 'f', 6, 64))
	q.Set(ParamLon, strconv.FormatFloat(center.Lng, 'f', 6, 64))
	u.RawQuery = q.Encode()
	page.Replace(u)

	return view, nil
}

// RelativeText formats the relative-mode display.
func RelativeText(distanceKm float64, d domain.Delta) string {
	return fmt.Sprintf("%.2f [km] (%s, %s)", distanceKm, d.DY, d.DX)
}

// CenterFormValues returns the map center as entry-form field values.
func CenterFormValues(center domain.LatLng) (lat, lng string) {
	return strconv.FormatFloat(center.Lat, 'f', 6, 64), strconv.FormatFloat(center.Lng, 'f', 6, 64)
}

func parseLatLng(rawLat, rawLng string) (domain.LatLng, bool) {
	if rawLat == "" || rawLng == "" {
		return domain.LatLng{}, false
	}
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(rawLat), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(rawLng), 64)
	if errLat != nil || errLng != nil {
		return domain.LatLng{}, false
	}

	c := domain.LatLng{Lat: lat, Lng: lng}
	return c, c.Valid()
}
