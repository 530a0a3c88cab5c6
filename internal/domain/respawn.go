package domain

import (
	"errors"
	"strconv"
	"strings"
)

// Name given to a respawn point saved with an empty name.
const DefaultRespawnName = "No name"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrLastRespawnPoint   = errors.New("at least one respawn point must remain")
	ErrIndexOutOfRange    = errors.New("respawn index out of range")
)

// A named reference coordinate used as the origin for relative display.
// Duplicate names and coordinates are allowed.
type RespawnPoint struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// NewRespawnPoint builds a point from raw form input.
// The name is trimmed and defaults to DefaultRespawnName; lat and lng must
// parse as finite numbers.
func NewRespawnPoint(name, lat, lng string) (RespawnPoint, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultRespawnName
	}

	la, errLat := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	ln, errLng := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if errLat != nil || errLng != nil {
		return RespawnPoint{}, ErrInvalidCoordinates
	}

	p := RespawnPoint{Name: name, Lat: la, Lng: ln}
	if err := p.Validate(); err != nil {
		return RespawnPoint{}, err
	}
	return p, nil
}

func (p RespawnPoint) Validate() error {
	if !p.Coordinates().Valid() {
		return ErrInvalidCoordinates
	}
	return nil
}

func (p RespawnPoint) Coordinates() LatLng { return LatLng{Lat: p.Lat, Lng: p.Lng} }

// Report whether p has exactly this name and numerically equal coordinates.
func (p RespawnPoint) Matches(name string, lat, lng float64) bool {
	return p.Name == name && p.Lat == lat && p.Lng == lng
}

// RespawnState is the in-memory copy of the respawn list and its selection.
//
// Selected is either a valid index into List or len(List), which marks an
// entry being composed that is not yet a member of the list.
type RespawnState struct {
	List     []RespawnPoint
	Selected int
}

// Report whether the selection is the pending-new sentinel.
func (s *RespawnState) PendingNew() bool {
	return s.Selected == len(s.List)
}

// Return the selected point, if the selection refers to a list member.
func (s *RespawnState) Current() (RespawnPoint, bool) {
	if s.Selected < 0 || s.Selected >= len(s.List) {
		return RespawnPoint{}, false
	}
	return s.List[s.Selected], true
}

// Return a copy of the list that callers may keep.
func (s *RespawnState) Snapshot() []RespawnPoint {
	out := make([]RespawnPoint, len(s.List))
	copy(out, s.List)
	return out
}
