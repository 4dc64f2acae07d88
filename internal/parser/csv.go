package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"tripload/internal/models"
)

// TimestampLayout is the naive wall-clock format used by the trip files.
// There is no offset in the data; the timezone converter supplies one later.
const TimestampLayout = "2006-01-02 15:04:05"

// Source column names, matched case-sensitively against the header row.
const (
	ColPickupTime      = "tpep_pickup_datetime"
	ColDropoffTime     = "tpep_dropoff_datetime"
	ColPassengerCount  = "passenger_count"
	ColTripDistance    = "trip_distance"
	ColStoreAndFwdFlag = "store_and_fwd_flag"
	ColPULocationID    = "PULocationID"
	ColDOLocationID    = "DOLocationID"
	ColFareAmount      = "fare_amount"
	ColTipAmount       = "tip_amount"
)

var requiredColumns = []string{
	ColPickupTime,
	ColDropoffTime,
	ColPassengerCount,
	ColTripDistance,
	ColStoreAndFwdFlag,
	ColPULocationID,
	ColDOLocationID,
	ColFareAmount,
	ColTipAmount,
}

// Result is the output of parsing one trip file: the original header, the
// parsed records (fields nil where cells were missing or unreadable), and
// the number of structurally malformed rows that were skipped.
type Result struct {
	Header  []string
	Records []*models.TripRecord
	BadRows int
}

// ParseFile opens and parses a trip file. A missing or unreadable file is a
// structural failure for the whole run.
func ParseFile(filePath string) (*Result, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	result, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return result, nil
}

// Parse reads a header row and the data rows that follow. Columns are
// resolved by header name, not position; columns outside the known set are
// ignored. Rows the csv reader cannot make sense of are skipped and counted.
// Only the absence of the header, or of a required column, is fatal.
func Parse(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("input is empty, expected a header row")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{Header: header}
	line := 1
	for {
		line++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.BadRows++
			continue // skip corrupted rows, the run goes on
		}

		result.Records = append(result.Records, parseRow(row, columns, line))
	}

	return result, nil
}

// mapColumns resolves each required column name to its index in the header.
func mapColumns(header []string) (map[string]int, error) {
	indexes := make(map[string]int, len(header))
	for i, name := range header {
		indexes[name] = i
	}

	var missing []string
	columns := make(map[string]int, len(requiredColumns))
	for _, name := range requiredColumns {
		idx, ok := indexes[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		columns[name] = idx
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("header is missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

func parseRow(row []string, columns map[string]int, line int) *models.TripRecord {
	raw := make([]string, len(row))
	copy(raw, row)

	return &models.TripRecord{
		PickupTime:      cellTime(row, columns[ColPickupTime]),
		DropoffTime:     cellTime(row, columns[ColDropoffTime]),
		PassengerCount:  cellInt(row, columns[ColPassengerCount]),
		TripDistance:    cellNonNegFloat(row, columns[ColTripDistance]),
		StoreAndFwdFlag: cellString(row, columns[ColStoreAndFwdFlag]),
		PULocationID:    cellInt(row, columns[ColPULocationID]),
		DOLocationID:    cellInt(row, columns[ColDOLocationID]),
		FareAmount:      cellFloat(row, columns[ColFareAmount]),
		TipAmount:       cellFloat(row, columns[ColTipAmount]),
		Raw:             raw,
		Line:            line,
	}
}

// Cell helpers return nil for absent or unreadable values. A bad cell is a
// data-quality problem for the completeness filter to handle, never a row
// failure.

func cell(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	value := strings.TrimSpace(row[idx])
	if value == "" {
		return "", false
	}
	return value, true
}

func cellTime(row []string, idx int) *time.Time {
	value, ok := cell(row, idx)
	if !ok {
		return nil
	}
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func cellInt(row []string, idx int) *int {
	value, ok := cell(row, idx)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

func cellFloat(row []string, idx int) *float64 {
	value, ok := cell(row, idx)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &f
}

// cellNonNegFloat is for measures that cannot run backwards, like trip
// distance. Fares and tips stay plain floats: refunds and disputes make
// negative amounts legitimate there.
func cellNonNegFloat(row []string, idx int) *float64 {
	f := cellFloat(row, idx)
	if f == nil || *f < 0 {
		return nil
	}
	return f
}

func cellString(row []string, idx int) *string {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	if row[idx] == "" {
		return nil
	}
	value := row[idx]
	return &value
}
