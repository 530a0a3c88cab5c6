package services

import (
	"context"
	"respawn-map-service/internal/adapters/kvstore"
	"respawn-map-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoordSettingsResolve(t *testing.T) {
	cases := []struct {
		name   string
		stored map[string]string
		in     domain.SettingsInput
		want   domain.CoordsSettings
	}{
		{
			name: "defaults",
			want: domain.CoordsSettings{Precision: 3, Exponent: 0},
		},
		{
			name:   "persisted",
			stored: map[string]string{KeyCoordPrecision: "5", KeyCoordExponent: "-2"},
			want:   domain.CoordsSettings{Precision: 5, Exponent: -2},
		},
		{
			name:   "persisted zero precision",
			stored: map[string]string{KeyCoordPrecision: "0"},
			want:   domain.CoordsSettings{Precision: 0, Exponent: 0},
		},
		{
			name:   "input wins",
			stored: map[string]string{KeyCoordPrecision: "5", KeyCoordExponent: "1"},
			in:     domain.SettingsInput{Precision: "2", Exponent: "3"},
			want:   domain.CoordsSettings{Precision: 2, Exponent: 3},
		},
		{
			name:   "fields resolve independently",
			stored: map[string]string{KeyCoordExponent: "4"},
			in:     domain.SettingsInput{Precision: "1", Exponent: "x"},
			want:   domain.CoordsSettings{Precision: 1, Exponent: 4},
		},
		{
			name:   "bad persisted value ignored",
			stored: map[string]string{KeyCoordPrecision: "many", KeyCoordExponent: "999"},
			want:   domain.CoordsSettings{Precision: 3, Exponent: 0},
		},
		{
			name: "negative precision rejected",
			in:   domain.SettingsInput{Precision: "-1"},
			want: domain.CoordsSettings{Precision: 3, Exponent: 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewCoordSettings(kvstore.NewMemoryStore(tc.stored))
			got, err := s.Resolve(context.Background(), tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoordSettingsPersistOnlyParsedFields(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore(map[string]string{KeyCoordPrecision: "4", KeyCoordExponent: "2"})
	s := NewCoordSettings(kv)

	require.NoError(t, s.Persist(ctx, domain.SettingsInput{Precision: "abc", Exponent: " -1 "}))

	pre, _, _ := kv.Get(ctx, KeyCoordPrecision)
	exp, _, _ := kv.Get(ctx, KeyCoordExponent)
	assert.Equal(t, "4", pre)
	assert.Equal(t, "-1", exp)

	got, err := s.Resolve(ctx, domain.SettingsInput{})
	require.NoError(t, err)
	assert.Equal(t, domain.CoordsSettings{Precision: 4, Exponent: -1}, got)
}
