package format

import "math"

// NoData is an optional per-band sentinel marking pixels without a measurement.
//
// The zero value means the band has no sentinel and every pixel counts.
type NoData struct {
	Value float64
	Valid bool
}

// NoDataValue returns a NoData with sentinel v. v may be NaN.
func NoDataValue(v float64) NoData {
	return NoData{Value: v, Valid: true}
}

// Matches reports whether v is the sentinel.
//
// A NaN sentinel matches only NaN pixels; any other sentinel matches by
// ordinary equality, so a NaN pixel never matches it.
func (n NoData) Matches(v float64) bool {
	if !n.Valid {
		return false
	}
	if math.IsNaN(n.Value) {
		return math.IsNaN(v)
	}

	return v == n.Value
}
