package domain

type DisplayMode string

const (
	ModeAbsolute DisplayMode = "absolute"
	ModeRelative DisplayMode = "relative"
)

// Formatted offset of the map center from a respawn point.
type Delta struct {
	DY string
	DX string
}

// View is the rendered result of one synchronization pass.
type View struct {
	Mode       DisplayMode
	Text       string
	Center     LatLng
	Respawn    *LatLng
	Delta      *Delta
	DistanceKm float64
}

type MapEventKind int

const (
	// Intermediate frame of a drag or zoom.
	MapMove MapEventKind = iota
	// Pan or zoom gesture completed.
	MapMoveEnd
)

// Event reported by the map component.
type MapEvent struct {
	Kind   MapEventKind
	Center LatLng
}

// Initial map view when the page carries no center.
var DefaultCenter = LatLng{Lat: 35.681236, Lng: 139.767125}
