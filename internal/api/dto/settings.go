package dto

type SettingsRequest struct {
	Precision any `json:"precision"`
	Exponent  any `json:"exponent"`
}

type SettingsResponse struct {
	Precision int `json:"precision"`
	Exponent  int `json:"exponent"`
}
