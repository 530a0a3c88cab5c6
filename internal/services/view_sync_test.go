package services

import (
	"context"
	"respawn-map-service/internal/adapters/kvstore"
	"respawn-map-service/internal/adapters/location"
	"respawn-map-service/internal/domain"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSync(t *testing.T, seed map[string]string, defaults []domain.RespawnPoint) (*ViewSynchronizer, *kvstore.MemoryStore) {
	t.Helper()
	kv := kvstore.NewMemoryStore(seed)
	store := NewRespawnStore(kv, &fakeDefaults{list: defaults})
	return NewViewSynchronizer(store, NewCoordSettings(kv)), kv
}

func respawnsOf(t *testing.T, v *ViewSynchronizer) ([]domain.RespawnPoint, int) {
	t.Helper()
	list, selected, err := v.Respawns(context.Background())
	require.NoError(t, err)
	return list, selected
}

func newPage(t *testing.T, raw string) *location.Page {
	t.Helper()
	p, err := location.NewPage(raw)
	require.NoError(t, err)
	return p
}

func TestViewStartAbsoluteWithEmptyList(t *testing.T) {
	v, _ := newSync(t, nil, nil)
	page := newPage(t, "http://localhost:8080/")

	view, err := v.Start(context.Background(), page, domain.LatLng{Lat: 35.6812362, Lng: 139.7671248}, domain.SettingsInput{})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeAbsolute, view.Mode)
	assert.Equal(t, "(35.681236, 139.767125)", view.Text)
	assert.Nil(t, view.Respawn)

	q := page.URL().Query()
	assert.Equal(t, "35.681236", q.Get(ParamLat))
	assert.Equal(t, "139.767125", q.Get(ParamLon))
	assert.False(t, q.Has(ParamRespawnName))
}

func TestViewStartRelativeToSelection(t *testing.T) {
	v, _ := newSync(t, nil, []domain.RespawnPoint{{Name: "A", Lat: 1.0, Lng: 2.0}})
	page := newPage(t, "http://localhost:8080/")

	view, err := v.Start(context.Background(), page, domain.LatLng{Lat: 1.23456, Lng: 2.34567}, domain.SettingsInput{})
	require.NoError(t, err)

	require.NotNil(t, view.Delta)
	assert.Equal(t, domain.ModeRelative, view.Mode)
	assert.Equal(t, domain.Delta{DY: "0.234", DX: "0.345"}, *view.Delta)
	assert.InDelta(t, DistanceFromOrigin(0.234, 0.345), view.DistanceKm, 1e-9)
	assert.True(t, strings.HasSuffix(view.Text, " [km] (0.234, 0.345)"), view.Text)

	q := page.URL().Query()
	assert.Equal(t, "A", q.Get(ParamRespawnName))
	assert.Equal(t, "1", q.Get(ParamRespawnLat))
	assert.Equal(t, "2", q.Get(ParamRespawnLon))
	assert.Equal(t, "1.234560", q.Get(ParamLat))
}

func TestViewStartURLRespawnTakesPriorityAndIsPersisted(t *testing.T) {
	ctx := context.Background()
	v, kv := newSync(t, map[string]string{KeySelectedRespawn: "0"}, []domain.RespawnPoint{{Name: "A", Lat: 10, Lng: 20}})
	page := newPage(t, "http://localhost:8080/?respawnName=Spot&respawnLat=1&respawnLon=2")

	view, err := v.Start(ctx, page, domain.LatLng{Lat: 1.5, Lng: 2.5}, domain.SettingsInput{Precision: "1"})
	require.NoError(t, err)

	assert.Equal(t, domain.Delta{DY: "0.5", DX: "0.5"}, *view.Delta)

	list, selected := respawnsOf(t, v)
	require.Len(t, list, 2)
	assert.Equal(t, domain.RespawnPoint{Name: "Spot", Lat: 1, Lng: 2}, list[1])
	assert.Equal(t, 1, selected)

	reloaded, err := NewRespawnStore(kv, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, list, reloaded.List)
	assert.Equal(t, 1, reloaded.Selected)
}

func TestViewStartURLRespawnMatchesExisting(t *testing.T) {
	v, _ := newSync(t, nil, []domain.RespawnPoint{{Name: "A", Lat: 10, Lng: 20}, {Name: "B", Lat: 1, Lng: 2}})
	page := newPage(t, "http://localhost:8080/?respawnName=B&respawnLat=1.0&respawnLon=2.00")

	_, err := v.Start(context.Background(), page, domain.LatLng{Lat: 1, Lng: 2}, domain.SettingsInput{})
	require.NoError(t, err)

	list, selected := respawnsOf(t, v)
	assert.Len(t, list, 2)
	assert.Equal(t, 1, selected)
}

func TestViewURLCoordinatesOverrideSelection(t *testing.T) {
	v, _ := newSync(t, nil, []domain.RespawnPoint{{Name: "A", Lat: 10, Lng: 20}})
	page := newPage(t, "http://localhost:8080/?respawnLat=1&respawnLon=2")
	ctx := context.Background()

	_, err := v.Start(ctx, page, domain.LatLng{Lat: 3, Lng: 4}, domain.SettingsInput{})
	require.NoError(t, err)

	// Start rewrites respawn params from the selection, so set them again.
	u := page.URL()
	q := u.Query()
	q.Set(ParamRespawnLat, "1")
	q.Set(ParamRespawnLon, "2")
	u.RawQuery = q.Encode()
	page.Replace(u)

	view, ok, err := v.HandleMapEvent(ctx, page, domain.MapEvent{Kind: domain.MapMoveEnd, Center: domain.LatLng{Lat: 3, Lng: 4}}, domain.SettingsInput{})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.LatLng{Lat: 1, Lng: 2}, *view.Respawn)
	assert.Equal(t, domain.Delta{DY: "2", DX: "2"}, *view.Delta)
}

func TestViewIgnoresIntermediateMoves(t *testing.T) {
	v, _ := newSync(t, nil, nil)
	page := newPage(t, "http://localhost:8080/")
	ctx := context.Background()

	_, ok, err := v.HandleMapEvent(ctx, page, domain.MapEvent{Kind: domain.MapMove, Center: domain.LatLng{Lat: 1, Lng: 1}}, domain.SettingsInput{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, page.Replacements())

	view, ok, err := v.HandleMapEvent(ctx, page, domain.MapEvent{Kind: domain.MapMoveEnd, Center: domain.LatLng{Lat: 1, Lng: 1}}, domain.SettingsInput{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "(1.000000, 1.000000)", view.Text)
	assert.Equal(t, 1, page.Replacements())
}

func TestViewMutationsResyncURL(t *testing.T) {
	ctx := context.Background()
	v, _ := newSync(t, nil, []domain.RespawnPoint{{Name: "A", Lat: 10, Lng: 20}, {Name: "B", Lat: 11, Lng: 21}})
	page := newPage(t, "http://localhost:8080/")

	_, err := v.Start(ctx, page, domain.LatLng{}, domain.SettingsInput{})
	require.NoError(t, err)

	require.NoError(t, v.SelectEntry(ctx, page, 1))
	assert.Equal(t, "B", page.URL().Query().Get(ParamRespawnName))

	require.NoError(t, v.SaveEntry(ctx, page, domain.RespawnPoint{Name: "B2", Lat: 5, Lng: 6}))
	q := page.URL().Query()
	assert.Equal(t, "B2", q.Get(ParamRespawnName))
	assert.Equal(t, "5", q.Get(ParamRespawnLat))

	require.NoError(t, v.BeginNew(ctx, page))
	assert.Equal(t, "B2", page.URL().Query().Get(ParamRespawnName), "pending entry leaves url")

	require.NoError(t, v.SaveEntry(ctx, page, domain.RespawnPoint{Name: "C", Lat: 7.25, Lng: 8}))
	list, selected := respawnsOf(t, v)
	assert.Len(t, list, 3)
	assert.Equal(t, 2, selected)
	assert.Equal(t, "7.25", page.URL().Query().Get(ParamRespawnLat))

	require.NoError(t, v.DeleteEntry(ctx, page, 2))
	_, selected = respawnsOf(t, v)
	assert.Equal(t, 1, selected)
	assert.Equal(t, "B2", page.URL().Query().Get(ParamRespawnName))

	require.NoError(t, v.DeleteEntry(ctx, page, 0))
	assert.ErrorIs(t, v.DeleteEntry(ctx, page, 0), domain.ErrLastRespawnPoint)

	err = v.UpdateEntry(ctx, page, 0, domain.RespawnPoint{Name: "Z", Lat: 1, Lng: 1})
	require.NoError(t, err)
	assert.Equal(t, "Z", page.URL().Query().Get(ParamRespawnName))
}

func TestViewShare(t *testing.T) {
	v, _ := newSync(t, nil, []domain.RespawnPoint{{Name: "Home", Lat: 0, Lng: 0}})
	page := newPage(t, "http://localhost:8080/")
	ctx := context.Background()

	_, err := v.Start(ctx, page, domain.LatLng{}, domain.SettingsInput{})
	require.NoError(t, err)

	link, err := v.Share(ctx, page, domain.LatLng{Lat: 0.5, Lng: 0}, domain.SettingsInput{Precision: "1"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "http://twitter.com/share?url=http%3A%2F%2Flocalhost%3A8080%2F%3F"), link)
	assert.True(t, strings.HasSuffix(link, "%20from%20Home"), link)
	assert.Contains(t, link, EncodeURIComponent("55.60 [km] (0.5, 0)"))
}

func TestCenterFormValues(t *testing.T) {
	lat, lng := CenterFormValues(domain.LatLng{Lat: 35.6812362, Lng: -0.1})
	assert.Equal(t, "35.681236", lat)
	assert.Equal(t, "-0.100000", lng)
}

func seededSync(t *testing.T) (*ViewSynchronizer, *kvstore.MemoryStore) {
	t.Helper()
	v, kv := newSync(t, nil, []domain.RespawnPoint{{Name: "D", Lat: 0, Lng: 0}})
	require.NoError(t, NewRespawnStore(kv, nil).Save(context.Background(), []domain.RespawnPoint{
		{Name: "A", Lat: 10, Lng: 20},
		{Name: "B", Lat: 11, Lng: 21},
	}))
	return v, kv
}

func TestViewMutationBeforeStartKeepsPersistedList(t *testing.T) {
	ctx := context.Background()
	v, kv := seededSync(t)
	page := newPage(t, "http://localhost:8080/")

	require.NoError(t, v.BeginNew(ctx, page))
	require.NoError(t, v.SaveEntry(ctx, page, domain.RespawnPoint{Name: "X", Lat: 1, Lng: 2}))

	reloaded, err := NewRespawnStore(kv, nil).Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.RespawnPoint{
		{Name: "A", Lat: 10, Lng: 20},
		{Name: "B", Lat: 11, Lng: 21},
		{Name: "X", Lat: 1, Lng: 2},
	}, reloaded.List)
	assert.Equal(t, 2, reloaded.Selected)
}

func TestViewSelectBeforeStartKeepsPersistedList(t *testing.T) {
	ctx := context.Background()
	v, kv := seededSync(t)
	page := newPage(t, "http://localhost:8080/")

	require.NoError(t, v.SelectEntry(ctx, page, 1))
	assert.Equal(t, "B", page.URL().Query().Get(ParamRespawnName))

	reloaded, err := NewRespawnStore(kv, nil).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, reloaded.List, 2)
	assert.Equal(t, 1, reloaded.Selected)
}

func TestViewInitLoadsPersistedState(t *testing.T) {
	v, _ := seededSync(t)

	require.NoError(t, v.Init(context.Background()))
	require.NoError(t, v.Init(context.Background()))

	list, selected := respawnsOf(t, v)
	assert.Equal(t, []string{"A", "B"}, []string{list[0].Name, list[1].Name})
	assert.Equal(t, 0, selected)
}
