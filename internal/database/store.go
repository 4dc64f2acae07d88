package database

import (
	"time"

	"github.com/google/uuid"

	"tripload/internal/models"
)

const (
	RUN_STATUS_PROCESSING = "PROCESSING"
	RUN_STATUS_DONE       = "DONE"
	RUN_STATUS_FATAL      = "FATAL"
)

// Store is the persistence boundary of the loader. The cleaning core never
// sees it; only the ingestion service and the read API do.
type Store interface {
	CreateSchema() error
	ReplaceTrips(trips []*models.TripRecord) error
	InsertRunRecord(fileName string, checksum string, startedAt time.Time) (uuid.UUID, error)
	UpdateRunStatus(runID uuid.UUID, status string, report models.RunReport) error
	ZoneStats(puLocationID int, since time.Time) (*models.ZoneStats, error)
}
