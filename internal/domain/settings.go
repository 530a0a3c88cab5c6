package domain

const (
	DefaultPrecision = 3
	DefaultExponent  = 0

	// Largest precision accepted; fixed-decimal formatting is not meaningful
	// beyond this.
	MaxPrecision = 100

	// Largest exponent magnitude; 10^exp overflows float64 beyond it.
	MaxExponent = 308
)

// Display truncation digits and power-of-ten scale.
type CoordsSettings struct {
	Precision int `json:"precision"`
	Exponent  int `json:"exponent"`
}

func DefaultCoordsSettings() CoordsSettings {
	return CoordsSettings{Precision: DefaultPrecision, Exponent: DefaultExponent}
}

// Raw, possibly empty or malformed, settings as typed into the form.
type SettingsInput struct {
	Precision string
	Exponent  string
}
