// Package pipeline is the record-cleaning core: completeness filtering,
// flag normalization, first-occurrence deduplication and timezone
// conversion, composed in a fixed order over an ordered record sequence.
package pipeline

import (
	"log"

	"tripload/internal/models"
)

// Result is what one pipeline run produces: the cleaned UTC-normalized
// unique set bound for the database, the duplicate set (still local time,
// raw cells intact) bound for the audit file, and the per-stage counts.
type Result struct {
	Unique     []*models.TripRecord
	Duplicates []*models.TripRecord
	Report     models.RunReport
}

// Pipeline sequences the cleaning stages. Stage order is fixed: filter ->
// normalize -> dedup -> convert. Dedup keys are computed on local times, so
// conversion runs last and touches only the unique set.
type Pipeline struct {
	converter *Converter
}

// New builds a pipeline converting timestamps with the named source zone.
func New(zoneName string) (*Pipeline, error) {
	converter, err := NewConverter(zoneName)
	if err != nil {
		return nil, err
	}
	return &Pipeline{converter: converter}, nil
}

// Run cleans one parsed batch. badRows is the parser's malformed-row count,
// carried through into the report so the caller sees one summary.
func (p *Pipeline) Run(records []*models.TripRecord, badRows int) Result {
	complete, dropped := FilterComplete(records)
	NormalizeFlags(complete)
	unique, duplicates := Dedup(complete)
	p.converter.Convert(unique)

	report := models.RunReport{
		Parsed:            len(records),
		BadRows:           badRows,
		DroppedIncomplete: dropped,
		Duplicates:        len(duplicates),
		Unique:            len(unique),
	}

	log.Printf("Pipeline finished: %d parsed, %d bad rows, %d incomplete, %d duplicates, %d unique",
		report.Parsed, report.BadRows, report.DroppedIncomplete, report.Duplicates, report.Unique)

	return Result{
		Unique:     unique,
		Duplicates: duplicates,
		Report:     report,
	}
}

// Converter exposes the pipeline's timezone converter.
func (p *Pipeline) Converter() *Converter {
	return p.converter
}
