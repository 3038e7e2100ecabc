// Package ingest reads the flat CSV donation export and turns it into the
// ordered row sequence the aggregation pipeline consumes. Transport only:
// all field interpretation happens downstream in normalize/processor.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"lifeline/cluster"
	"lifeline/geocode"
	"lifeline/metrics"
	"lifeline/processor"
	"lifeline/store"
	"lifeline/types"
)

// ReadRows parses CSV content into raw rows, keyed by the header line.
// Malformed lines are skipped with a log line; they never abort the batch.
func ReadRows(r io.Reader) ([]types.RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var rows []types.RawRow
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("Skipping malformed csv line: %v", err)
			continue
		}
		row := make(types.RawRow, len(header))
		for i, v := range record {
			if i < len(header) && header[i] != "" {
				row[header[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadFile reads a CSV export from disk.
func ReadFile(path string) ([]types.RawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	return ReadRows(f)
}

// BuildSnapshot runs the full pipeline over a row sequence: aggregate,
// optionally fill missing coordinates, and wrap everything in an immutable
// snapshot ready to be swapped in.
func BuildSnapshot(rows []types.RawRow, opts cluster.Options) (*store.Snapshot, error) {
	start := time.Now()
	res, err := processor.Aggregate(rows)
	if err != nil {
		return nil, err
	}
	if filled := geocode.FillMissingCoordinates(res.Donors); filled > 0 {
		log.Printf("Geocoded coordinates for %d donors", filled)
	}
	snap := store.NewSnapshot(res, opts)

	metrics.DatasetBuildsTotal.Inc()
	metrics.DatasetBuildDurationMs.Observe(float64(time.Since(start).Milliseconds()))
	metrics.DonorsLoaded.Set(float64(len(snap.Donors)))
	metrics.RowsSkippedTotal.Add(float64(snap.Skipped))
	return snap, nil
}

// LoadSnapshot is BuildSnapshot fed from a CSV file on disk.
func LoadSnapshot(path string, opts cluster.Options) (*store.Snapshot, error) {
	rows, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(rows, opts)
}
