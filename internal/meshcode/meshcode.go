// Package meshcode encodes latitude/longitude pairs into the standard
// regional mesh codes (JIS X 0410) used to address PLATEAU tiles.
package meshcode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Bounds of the region the catalog covers.
const (
	MinLatitude  = 20.0
	MaxLatitude  = 46.0
	MinLongitude = 122.0
	MaxLongitude = 154.0
	MinLevel     = 1
	MaxLevel     = 5

	// DefaultLevel is used by callers that do not ask for a specific level.
	DefaultLevel = 2

	// longitudeOrigin is subtracted before the first-level longitude code.
	longitudeOrigin = 100.0
)

// axis describes how one coordinate is subdivided at a level.
type axis struct {
	scale float64 // converts the carried remainder into this level's unit
	unit  float64 // width of one sub-cell, in the scaled unit
	cell  float64 // width of one sub-cell, in degrees
	count int     // number of sub-cells along the axis
}

// rule is one subdivision stage. Quadrant stages emit a single 1-4 digit,
// the others emit one group per axis.
type rule struct {
	lat, lon axis
	width    int
	quadrant bool
}

// rules lists the five stages in order. Latitude remainders are carried
// in minutes then seconds, longitude in degrees, minutes then seconds.
var rules = [MaxLevel]rule{
	{ // ~80km
		lat:   axis{scale: 60, unit: 40, cell: 40.0 / 60, count: 100},
		lon:   axis{scale: 1, unit: 1, cell: 1, count: 100},
		width: 2,
	},
	{ // ~10km
		lat:   axis{scale: 1, unit: 5, cell: 5.0 / 60, count: 8},
		lon:   axis{scale: 60, unit: 7.5, cell: 7.5 / 60, count: 8},
		width: 1,
	},
	{ // ~1km
		lat:   axis{scale: 60, unit: 30, cell: 30.0 / 3600, count: 10},
		lon:   axis{scale: 60, unit: 45, cell: 45.0 / 3600, count: 10},
		width: 1,
	},
	{ // ~500m
		lat:      axis{scale: 1, unit: 15, cell: 15.0 / 3600, count: 2},
		lon:      axis{scale: 1, unit: 22.5, cell: 22.5 / 3600, count: 2},
		width:    1,
		quadrant: true,
	},
	{ // ~250m
		lat:      axis{scale: 1, unit: 7.5, cell: 7.5 / 3600, count: 2},
		lon:      axis{scale: 1, unit: 11.25, cell: 11.25 / 3600, count: 2},
		width:    1,
		quadrant: true,
	},
}

// remainder is the offset inside the current cell not yet consumed by a
// coarser level.
type remainder struct {
	lat, lon float64
}

// split returns the sub-cell index containing r and the offset left inside
// that sub-cell. The explicit conversion keeps the product rounded before
// the subtraction.
func (a axis) split(r float64) (int, float64) {
	scaled := float64(r * a.scale)
	idx := math.Floor(scaled / a.unit)
	return int(idx), scaled - idx*a.unit
}

// digitCount returns the code length produced by the first n levels.
func digitCount(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		if rules[i].quadrant {
			total++
		} else {
			total += 2 * rules[i].width
		}
	}
	return total
}

// Encode returns the mesh code of the given level for the point. Each
// level consumes the remainder left by the previous one; indices are
// always floored.
func Encode(latitude, longitude float64, level int) (string, error) {
	if err := validate(latitude, longitude, level); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(digitCount(level))

	acc := remainder{lat: latitude, lon: longitude - longitudeOrigin}
	for _, r := range rules[:level] {
		var latIdx, lonIdx int
		latIdx, acc.lat = r.lat.split(acc.lat)
		lonIdx, acc.lon = r.lon.split(acc.lon)

		if r.quadrant {
			sb.WriteString(strconv.Itoa(latIdx*2 + lonIdx + 1))
			continue
		}
		fmt.Fprintf(&sb, "%0*d%0*d", r.width, latIdx, r.width, lonIdx)
	}

	return sb.String(), nil
}

// EncodePoint is Encode for a GeoPoint.
func EncodePoint(p GeoPoint, level int) (string, error) {
	return Encode(p.Latitude, p.Longitude, level)
}

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func validate(latitude, longitude float64, level int) error {
	// Negated comparisons so that NaN is rejected too.
	if !(latitude >= MinLatitude && latitude <= MaxLatitude) {
		return &OutOfRangeError{Field: FieldLatitude, Value: latitude, Min: MinLatitude, Max: MaxLatitude}
	}
	if !(longitude >= MinLongitude && longitude <= MaxLongitude) {
		return &OutOfRangeError{Field: FieldLongitude, Value: longitude, Min: MinLongitude, Max: MaxLongitude}
	}
	if level < MinLevel || level > MaxLevel {
		return &OutOfRangeError{Field: FieldLevel, Value: float64(level), Min: MinLevel, Max: MaxLevel}
	}
	return nil
}
