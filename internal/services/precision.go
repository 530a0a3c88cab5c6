package services

import (
	"math"
	"respawn-map-service/internal/domain"
	"strconv"
	"strings"
)

// TruncateToPrecision cuts value toward zero at precision fractional digits.
// It never rounds up.
func TruncateToPrecision(value float64, precision int) float64 {
	factor := math.Pow10(precision)
	return math.Trunc(value*factor) / factor
}

// CalculateCoords returns the offset of (lat, lon) from (refLat, refLon).
//
// All four inputs are truncated to precision digits first, the raw deltas are
// scaled by 10^exponent, and the result is formatted with precision decimals
// before trailing zeros are trimmed.
func CalculateCoords(lat, lon, refLat, refLon float64, precision, exponent int) domain.Delta {
	lat = TruncateToPrecision(lat, precision)
	lon = TruncateToPrecision(lon, precision)
	refLat = TruncateToPrecision(refLat, precision)
	refLon = TruncateToPrecision(refLon, precision)

	scale := math.Pow10(exponent)
	return domain.Delta{
		DY: formatDelta((lat-refLat)*scale, precision),
		DX: formatDelta((lon-refLon)*scale, precision),
	}
}

// formatDelta renders v with precision decimals and trims trailing zeros and
// a dangling decimal point. Integer parts are never trimmed.
func formatDelta(v float64, precision int) string {
	s := formatFixed(v, precision)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	return s
}

// Enough fractional digits to print any float64 exactly.
const exactFracDigits = 1075

// formatFixed rounds the exact binary value of v to precision decimals with
// ties away from zero, as JavaScript's toFixed does. A negative value that
// rounds to zero keeps its sign; negative zero does not.
func formatFixed(v float64, precision int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) || precision < 0 || precision >= exactFracDigits {
		return strconv.FormatFloat(v, 'f', precision, 64)
	}

	exact := strconv.FormatFloat(math.Abs(v), 'f', exactFracDigits, 64)
	dot := strings.IndexByte(exact, '.')
	digits := []byte(exact[:dot] + exact[dot+1:dot+1+precision])

	if exact[dot+1+precision] >= '5' {
		i := len(digits) - 1
		for ; i >= 0 && digits[i] == '9'; i-- {
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
		} else {
			digits[i]++
		}
	}

	n := len(digits) - precision
	s := string(digits[:n])
	if precision > 0 {
		s += "." + string(digits[n:])
	}
	if v < 0 {
		s = "-" + s
	}
	return s
}
