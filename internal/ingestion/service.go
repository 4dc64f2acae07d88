// Package ingestion wires one full load: checksum and ledger bookkeeping,
// parse, the cleaning pipeline, the full-refresh load, and the duplicates
// audit file.
package ingestion

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"tripload/internal/audit"
	"tripload/internal/database"
	"tripload/internal/models"
	"tripload/internal/parser"
	"tripload/internal/pipeline"
	"tripload/pkg/checksum"
)

type IngestionService struct {
	store         database.Store
	pipeline      *pipeline.Pipeline
	auditFilePath string
}

func NewIngestionService(store database.Store, pipe *pipeline.Pipeline, auditFilePath string) *IngestionService {
	return &IngestionService{
		store:         store,
		pipeline:      pipe,
		auditFilePath: auditFilePath,
	}
}

// Execute runs one full-refresh load of the given trip file. It either
// returns the final run report, or a structural error with nothing loaded;
// row-level defects only show up as counts in the report.
func (s *IngestionService) Execute(filePath string) (*models.RunReport, error) {
	startedAt := time.Now()

	fileChecksum, err := checksum.GetFileChecksum(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to checksum %s: %w", filePath, err)
	}

	runID, err := s.store.InsertRunRecord(filePath, fileChecksum, startedAt)
	if err != nil {
		return nil, err
	}

	parsed, err := parser.ParseFile(filePath)
	if err != nil {
		s.markFatal(runID)
		return nil, err
	}

	result := s.pipeline.Run(parsed.Records, parsed.BadRows)

	// Audit sink is checked before the load so an unwritable sink aborts the
	// run with the trips table untouched.
	log.Printf("Writing %d duplicate rows to %s", len(result.Duplicates), s.auditFilePath)
	if err := audit.WriteFile(s.auditFilePath, parsed.Header, result.Duplicates); err != nil {
		s.markFatal(runID)
		return nil, err
	}

	if err := s.store.ReplaceTrips(result.Unique); err != nil {
		s.markFatal(runID)
		return nil, err
	}

	report := result.Report
	report.SourceChecksum = fileChecksum
	report.Duration = time.Since(startedAt)

	if err := s.store.UpdateRunStatus(runID, database.RUN_STATUS_DONE, report); err != nil {
		return nil, err
	}

	return &report, nil
}

// markFatal is best-effort: the structural error that got us here is the
// one the caller needs to see.
func (s *IngestionService) markFatal(runID uuid.UUID) {
	if err := s.store.UpdateRunStatus(runID, database.RUN_STATUS_FATAL, models.RunReport{}); err != nil {
		log.Printf("Failed to mark run %s as fatal: %v", runID, err)
	}
}
