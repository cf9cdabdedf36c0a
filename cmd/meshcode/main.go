package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"plateau-gateway/internal/logger"
	"plateau-gateway/internal/meshcode"

	"github.com/rs/zerolog/log"
)

// PointRecord is one input row
type PointRecord struct {
	Line int
	Lat  float64
	Lon  float64
}

func main() {
	file := flag.String("file", "", "Path to a CSV file of lat,lon rows with a header")
	level := flag.Int("level", meshcode.DefaultLevel, "Mesh level 1-5")
	flag.Parse()

	logger.Setup("info", "console")

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: --file flag is required")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("cannot open file")
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse csv")
	}

	failed, err := encodeAll(os.Stdout, records, *level)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot write output")
	}
	log.Info().Int("records", len(records)).Int("failed", failed).Int("level", *level).Msg("encoding finished")
}

func parseCSV(r io.Reader) ([]PointRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []PointRecord
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) < 2 {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected at least 2 columns", line, len(record))
		}

		lat, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[0])
		}

		lon, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[1])
		}

		records = append(records, PointRecord{Line: line, Lat: lat, Lon: lon})
	}

	return records, nil
}

// encodeAll writes lat,lon,meshcode rows. Points outside the mesh region are
// logged, written with an empty code and counted as failed.
func encodeAll(w io.Writer, records []PointRecord, level int) (int, error) {
	out := csv.NewWriter(w)
	if err := out.Write([]string{"lat", "lon", "meshcode"}); err != nil {
		return 0, err
	}

	failed := 0
	for _, r := range records {
		code, err := meshcode.Encode(r.Lat, r.Lon, level)
		if err != nil {
			if !meshcode.IsOutOfRange(err) {
				return failed, err
			}
			log.Warn().Err(err).Int("line", r.Line).Msg("skipping point")
			failed++
		}
		row := []string{
			strconv.FormatFloat(r.Lat, 'f', -1, 64),
			strconv.FormatFloat(r.Lon, 'f', -1, 64),
			code,
		}
		if err := out.Write(row); err != nil {
			return failed, err
		}
	}

	out.Flush()
	return failed, out.Error()
}
