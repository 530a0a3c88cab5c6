package dto

type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type DeltaResponse struct {
	DY string `json:"dy"`
	DX string `json:"dx"`
}

type ViewResponse struct {
	Mode       string         `json:"mode"`
	Text       string         `json:"text"`
	Center     LatLng         `json:"center"`
	Respawn    *LatLng        `json:"respawn,omitempty"`
	Delta      *DeltaResponse `json:"delta,omitempty"`
	DistanceKm *float64       `json:"distance_km,omitempty"`
	URL        string         `json:"url"`
}

type ShareResponse struct {
	ShareURL string `json:"share_url"`
	URL      string `json:"url"`
}

type LocateResponse struct {
	Center LatLng       `json:"center"`
	Zoom   int          `json:"zoom"`
	View   ViewResponse `json:"view"`
}
