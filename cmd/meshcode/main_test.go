package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "lat,lon\n35.681236,139.767125\n34.702485,135.495951\n"

	records, err := parseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []PointRecord{
		{Line: 2, Lat: 35.681236, Lon: 139.767125},
		{Line: 3, Lat: 34.702485, Lon: 135.495951},
	}, records)
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "short record", input: "lat,lon\n35.0\n"},
		{name: "bad latitude", input: "lat,lon\nnorth,139\n"},
		{name: "bad longitude", input: "lat,lon\n35,east\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestEncodeAll(t *testing.T) {
	records := []PointRecord{
		{Line: 2, Lat: 35.681236, Lon: 139.767125},
		{Line: 3, Lat: 10, Lon: 139},
		{Line: 4, Lat: 35, Lon: 135},
	}

	var buf bytes.Buffer
	failed, err := encodeAll(&buf, records, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	assert.Equal(t, "lat,lon,meshcode\n35.681236,139.767125,53394611\n10,139,\n35,135,52354000\n", buf.String())
}
