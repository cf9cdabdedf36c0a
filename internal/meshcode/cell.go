package meshcode

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// SRID of the JGD2011 geographic CRS PLATEAU data is published in.
const SRID = 6668

// Cell is the rectangle addressed by a mesh code.
type Cell struct {
	Code  string  `json:"code"`
	Level int     `json:"level"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Center returns the midpoint of the cell.
func (c Cell) Center() GeoPoint {
	return GeoPoint{
		Latitude:  (c.South + c.North) / 2,
		Longitude: (c.West + c.East) / 2,
	}
}

// Polygon returns the cell outline as a closed counter-clockwise ring.
func (c Cell) Polygon() *geom.Polygon {
	flat := []float64{
		c.West, c.South,
		c.East, c.South,
		c.East, c.North,
		c.West, c.North,
		c.West, c.South,
	}
	return geom.NewPolygonFlat(geom.XY, flat, []int{len(flat)}).SetSRID(SRID)
}

// Decode parses a mesh code of any level back into its cell.
func Decode(code string) (Cell, error) {
	level := levelOf(len(code))
	if level == 0 {
		return Cell{}, fmt.Errorf("%w: %q has %d digits", ErrInvalidCode, code, len(code))
	}
	for _, ch := range code {
		if ch < '0' || ch > '9' {
			return Cell{}, fmt.Errorf("%w: %q contains non-digit %q", ErrInvalidCode, code, ch)
		}
	}

	cell := Cell{Code: code, Level: level, South: 0, West: longitudeOrigin}
	pos := 0
	var latSize, lonSize float64
	for i, r := range rules[:level] {
		var latIdx, lonIdx int
		if r.quadrant {
			q := int(code[pos] - '0')
			pos++
			if q < 1 || q > 4 {
				return Cell{}, fmt.Errorf("%w: %q level %d quadrant %d", ErrInvalidCode, code, i+1, q)
			}
			latIdx, lonIdx = (q-1)/2, (q-1)%2
		} else {
			latIdx = atoi(code[pos : pos+r.width])
			lonIdx = atoi(code[pos+r.width : pos+2*r.width])
			pos += 2 * r.width
			if latIdx >= r.lat.count || lonIdx >= r.lon.count {
				return Cell{}, fmt.Errorf("%w: %q level %d digits out of range", ErrInvalidCode, code, i+1)
			}
		}
		cell.South += float64(latIdx) * r.lat.cell
		cell.West += float64(lonIdx) * r.lon.cell
		latSize, lonSize = r.lat.cell, r.lon.cell
	}
	cell.North = cell.South + latSize
	cell.East = cell.West + lonSize

	if cell.North <= MinLatitude || cell.South > MaxLatitude || cell.East <= MinLongitude || cell.West > MaxLongitude {
		return Cell{}, fmt.Errorf("%w: %q lies outside the covered region", ErrInvalidCode, code)
	}
	return cell, nil
}

// CatalogCondition returns the third-level "m:" condition accepted by the
// CityGML catalog for a code of level 3 or finer.
func CatalogCondition(code string) (string, error) {
	cell, err := Decode(code)
	if err != nil {
		return "", err
	}
	if cell.Level < 3 {
		return "", fmt.Errorf("%w: catalog lookups need a level 3 or finer code, got %q", ErrInvalidCode, code)
	}
	return "m:" + code[:digitCount(3)], nil
}

func levelOf(digits int) int {
	for lv := MinLevel; lv <= MaxLevel; lv++ {
		if digitCount(lv) == digits {
			return lv
		}
	}
	return 0
}

func atoi(s string) int {
	n := 0
	for _, ch := range s {
		n = n*10 + int(ch-'0')
	}
	return n
}
