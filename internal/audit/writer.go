// Package audit writes the duplicate rows of a run back out as CSV, in the
// same column shape as the source file, so they can be inspected offline.
package audit

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"tripload/internal/models"
)

// Write emits the header and the raw cells of each duplicate record. The
// records still carry their original pre-conversion values, which is what an
// audit of "what did we throw away" needs.
func Write(w io.Writer, header []string, duplicates []*models.TripRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write audit header: %w", err)
	}

	for _, record := range duplicates {
		if err := writer.Write(record.Raw); err != nil {
			return fmt.Errorf("failed to write audit row for line %d: %w", record.Line, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush audit file: %w", err)
	}

	return nil
}

// WriteFile writes the duplicates audit to a file path. An unwritable sink
// is a structural failure.
func WriteFile(path string, header []string, duplicates []*models.TripRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create audit file %s: %w", path, err)
	}
	defer file.Close()

	if err := Write(file, header, duplicates); err != nil {
		return err
	}

	return file.Close()
}
