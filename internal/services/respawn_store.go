package services

import (
	"context"
	"fmt"
	"respawn-map-service/internal/domain"
	"respawn-map-service/internal/ports"
	"slices"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// RespawnStore performs CRUD over the respawn list held in a RespawnState
// and flushes every mutation to the key-value store immediately.
type RespawnStore struct {
	kv       ports.KeyValueStore
	defaults ports.DefaultListSource
	loads    singleflight.Group
}

func NewRespawnStore(kv ports.KeyValueStore, defaults ports.DefaultListSource) *RespawnStore {
	return &RespawnStore{kv: kv, defaults: defaults}
}

// Load reads the persisted list and selection.
//
// When no list is persisted the default list is fetched and persisted; a
// failed fetch yields an empty list. A persisted list that cannot be decoded
// is treated as absent. Concurrent calls share one read.
func (s *RespawnStore) Load(ctx context.Context) (*domain.RespawnState, error) {
	v, err, _ := s.loads.Do("load", func() (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}

	shared := v.(*domain.RespawnState)
	return &domain.RespawnState{List: shared.Snapshot(), Selected: shared.Selected}, nil
}

func (s *RespawnStore) load(ctx context.Context) (*domain.RespawnState, error) {
	list, ok, err := s.readList(ctx)
	if err != nil {
		return nil, fmt.Errorf("load respawn list: %w", err)
	}

	if !ok {
		list = s.fetchDefaults(ctx)
		if err := s.Save(ctx, list); err != nil {
			return nil, fmt.Errorf("load respawn list: persist defaults: %w", err)
		}
	}

	selected, err := s.readSelected(ctx, len(list))
	if err != nil {
		return nil, fmt.Errorf("load respawn list: %w", err)
	}

	return &domain.RespawnState{List: list, Selected: selected}, nil
}

func (s *RespawnStore) readList(ctx context.Context) ([]domain.RespawnPoint, bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyRespawnList)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", KeyRespawnList, err)
	}
	if !ok {
		return nil, false, nil
	}

	var list []domain.RespawnPoint
	if err := sonic.UnmarshalString(raw, &list); err != nil {
		log.Warn().Err(err).Str("key", KeyRespawnList).Msg("discarding unreadable respawn list")
		return nil, false, nil
	}
	for i, p := range list {
		if err := p.Validate(); err != nil {
			log.Warn().Int("index", i).Str("key", KeyRespawnList).Msg("discarding respawn list with invalid entry")
			return nil, false, nil
		}
	}

	if list == nil {
		list = []domain.RespawnPoint{}
	}
	return list, true, nil
}

func (s *RespawnStore) readSelected(ctx context.Context, n int) (int, error) {
	raw, ok, err := s.kv.Get(ctx, KeySelectedRespawn)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", KeySelectedRespawn, err)
	}
	if !ok {
		return 0, nil
	}

	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || idx >= n {
		return 0, nil
	}
	return idx, nil
}

func (s *RespawnStore) fetchDefaults(ctx context.Context) []domain.RespawnPoint {
	if s.defaults == nil {
		return []domain.RespawnPoint{}
	}

	list, err := s.defaults.FetchDefaults(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("default respawn list unavailable, starting empty")
		return []domain.RespawnPoint{}
	}
	if list == nil {
		list = []domain.RespawnPoint{}
	}
	return list
}

// Save serializes the full list and overwrites the persisted copy.
func (s *RespawnStore) Save(ctx context.Context, list []domain.RespawnPoint) error {
	if list == nil {
		list = []domain.RespawnPoint{}
	}

	raw, err := sonic.MarshalString(list)
	if err != nil {
		return fmt.Errorf("save respawn list: encode: %w", err)
	}
	if err := s.kv.Set(ctx, KeyRespawnList, raw); err != nil {
		return fmt.Errorf("save respawn list: %w", err)
	}
	return nil
}

func (s *RespawnStore) saveSelected(ctx context.Context, idx int) error {
	if err := s.kv.Set(ctx, KeySelectedRespawn, strconv.Itoa(idx)); err != nil {
		return fmt.Errorf("save selected respawn: %w", err)
	}
	return nil
}

func (s *RespawnStore) flush(ctx context.Context, st *domain.RespawnState) error {
	if err := s.Save(ctx, st.List); err != nil {
		return err
	}
	return s.saveSelected(ctx, st.Selected)
}

// Add appends p and selects it.
func (s *RespawnStore) Add(ctx context.Context, st *domain.RespawnState, p domain.RespawnPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}

	st.List = append(st.List, p)
	st.Selected = len(st.List) - 1
	return s.flush(ctx, st)
}

// Update overwrites the entry at idx.
func (s *RespawnStore) Update(ctx context.Context, st *domain.RespawnState, idx int, p domain.RespawnPoint) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if idx < 0 || idx >= len(st.List) {
		return fmt.Errorf("update respawn %d: %w", idx, domain.ErrIndexOutOfRange)
	}

	st.List[idx] = p
	return s.Save(ctx, st.List)
}

// SaveEntry appends p when the selection is pending-new, otherwise it
// overwrites the selected entry.
func (s *RespawnStore) SaveEntry(ctx context.Context, st *domain.RespawnState, p domain.RespawnPoint) error {
	if _, ok := st.Current(); !ok {
		return s.Add(ctx, st, p)
	}
	return s.Update(ctx, st, st.Selected, p)
}

// BeginNew moves the selection to the pending-new sentinel. Nothing is
// persisted until the entry is saved.
func (s *RespawnStore) BeginNew(st *domain.RespawnState) {
	st.Selected = len(st.List)
}

// Delete removes the entry at idx. The last remaining entry cannot be
// deleted. A selection past the end is clamped to the new last entry.
func (s *RespawnStore) Delete(ctx context.Context, st *domain.RespawnState, idx int) error {
	if idx < 0 || idx >= len(st.List) {
		return fmt.Errorf("delete respawn %d: %w", idx, domain.ErrIndexOutOfRange)
	}
	if len(st.List) <= 1 {
		return domain.ErrLastRespawnPoint
	}

	st.List = slices.Delete(st.List, idx, idx+1)
	if st.Selected >= len(st.List) {
		st.Selected = len(st.List) - 1
	}
	return s.flush(ctx, st)
}

// Select makes idx the active respawn point.
func (s *RespawnStore) Select(ctx context.Context, st *domain.RespawnState, idx int) error {
	if idx < 0 || idx >= len(st.List) {
		return fmt.Errorf("select respawn %d: %w", idx, domain.ErrIndexOutOfRange)
	}

	st.Selected = idx
	return s.saveSelected(ctx, idx)
}

// SelectByIdentity selects the entry matching name and coordinates,
// appending a new entry when none matches.
func (s *RespawnStore) SelectByIdentity(ctx context.Context, st *domain.RespawnState, name string, lat, lng float64) error {
	if idx := FindByIdentity(st.List, name, lat, lng); idx >= 0 {
		return s.Select(ctx, st, idx)
	}
	return s.Add(ctx, st, domain.RespawnPoint{Name: name, Lat: lat, Lng: lng})
}

// FindByIdentity returns the index of the first entry with this exact name
// and numerically equal coordinates, or -1.
func FindByIdentity(list []domain.RespawnPoint, name string, lat, lng float64) int {
	_, idx, ok := lo.FindIndexOf(list, func(p domain.RespawnPoint) bool {
		return p.Matches(name, lat, lng)
	})
	if !ok {
		return -1
	}
	return idx
}
