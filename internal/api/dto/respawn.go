package dto

// Lat and Lng accept a JSON number or the raw text typed into the form.
type RespawnRequest struct {
	Name string `json:"name"`
	Lat  any    `json:"lat"`
	Lng  any    `json:"lng"`
}

type RespawnResponse struct {
	Index    int     `json:"index"`
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Selected bool    `json:"selected"`
}

type ListRespawnsResponse struct {
	Respawns   []RespawnResponse `json:"respawns"`
	Selected   int               `json:"selected"`
	PendingNew bool              `json:"pending_new"`
	URL        string            `json:"url,omitempty"`
}

// Entry form values filled from the map center.
type CenterFormResponse struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}
