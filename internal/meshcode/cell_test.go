package meshcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"
)

func TestDecode(t *testing.T) {
	cell, err := Decode("5235")
	require.NoError(t, err)
	assert.Equal(t, 1, cell.Level)
	assert.InDelta(t, 34.666667, cell.South, 1e-6)
	assert.InDelta(t, 35.333333, cell.North, 1e-6)
	assert.InDelta(t, 135, cell.West, 1e-9)
	assert.InDelta(t, 136, cell.East, 1e-9)

	cell, err = Decode("53394611")
	require.NoError(t, err)
	assert.Equal(t, 3, cell.Level)
	assert.InDelta(t, 30.0/3600, cell.North-cell.South, 1e-9)
	assert.InDelta(t, 45.0/3600, cell.East-cell.West, 1e-9)
	assert.True(t, cell.South <= 35.681236 && 35.681236 < cell.North)
	assert.True(t, cell.West <= 139.767125 && 139.767125 < cell.East)
}

func TestDecode_RoundTrip(t *testing.T) {
	codes := []string{"5339", "533946", "53394611", "533946113", "5339461132", "3927255414", "6441428811"}
	for _, code := range codes {
		t.Run(code, func(t *testing.T) {
			cell, err := Decode(code)
			require.NoError(t, err)

			center := cell.Center()
			again, err := EncodePoint(center, cell.Level)
			require.NoError(t, err)
			assert.Equal(t, code, again)
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{name: "empty", code: ""},
		{name: "wrong length", code: "53394"},
		{name: "letters", code: "53a9"},
		{name: "second level digit above 7", code: "533986"},
		{name: "quadrant zero", code: "533946110"},
		{name: "quadrant five", code: "5339461135"},
		{name: "outside region", code: "0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.code)
			assert.ErrorIs(t, err, ErrInvalidCode)
		})
	}
}

func TestCell_Polygon(t *testing.T) {
	cell, err := Decode("533946")
	require.NoError(t, err)

	poly := cell.Polygon()
	assert.Equal(t, SRID, poly.SRID())
	assert.Equal(t, 1, poly.NumLinearRings())

	ring := poly.LinearRing(0)
	require.Equal(t, 5, ring.NumCoords())
	assert.Equal(t, ring.Coord(0), ring.Coord(4))
	assert.Equal(t, geom.Coord{cell.West, cell.South}, ring.Coord(0))
	assert.Equal(t, geom.Coord{cell.East, cell.North}, ring.Coord(2))
	assert.Greater(t, poly.Area(), 0.0)
}

func TestCatalogCondition(t *testing.T) {
	cond, err := CatalogCondition("53394611")
	require.NoError(t, err)
	assert.Equal(t, "m:53394611", cond)

	cond, err = CatalogCondition("5339461132")
	require.NoError(t, err)
	assert.Equal(t, "m:53394611", cond)

	_, err = CatalogCondition("533946")
	assert.ErrorIs(t, err, ErrInvalidCode)

	_, err = CatalogCondition("abc")
	assert.ErrorIs(t, err, ErrInvalidCode)
}
