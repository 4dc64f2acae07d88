package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tripload/internal/models"
)

func ConnectDB(connStr string) (*pgxpool.Pool, error) {
	dbpool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	return dbpool, nil
}

// DefaultBatchSize is the COPY batch size used when the caller does not
// configure one.
const DefaultBatchSize = 50000

type PostgresStore struct {
	dbpool    *pgxpool.Pool
	ctx       context.Context
	batchSize int
}

func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, batchSize int) *PostgresStore {
	// A non-positive batch size would stall the load loop in ReplaceTrips.
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PostgresStore{dbpool: pool, ctx: ctx, batchSize: batchSize}
}

func (s *PostgresStore) CreateSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS trips (
			id BIGSERIAL PRIMARY KEY,
			pickup_time TIMESTAMPTZ NOT NULL,
			dropoff_time TIMESTAMPTZ NOT NULL,
			passenger_count INTEGER NOT NULL,
			trip_distance NUMERIC(10, 2) NOT NULL,
			store_and_fwd_flag VARCHAR(10) NOT NULL DEFAULT '',
			pu_location_id INTEGER NOT NULL,
			do_location_id INTEGER NOT NULL,
			fare_amount NUMERIC(10, 2) NOT NULL,
			tip_amount NUMERIC(10, 2) NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_trips_pu_location ON trips (pu_location_id, pickup_time) INCLUDE (fare_amount, tip_amount);`,
		`CREATE TABLE IF NOT EXISTS load_runs (
			id UUID PRIMARY KEY,
			file_name VARCHAR(255) NOT NULL,
			checksum VARCHAR(64),
			status VARCHAR(50) NOT NULL CHECK (status IN ('PROCESSING', 'DONE', 'FATAL')),
			counts jsonb,
			started_at TIMESTAMPTZ NOT NULL,
			finished_at TIMESTAMPTZ
		);`,
	}

	for _, query := range queries {
		if _, err := s.dbpool.Exec(s.ctx, query); err != nil {
			return fmt.Errorf("error creating schema: %v", err)
		}
	}

	return nil
}

// ReplaceTrips truncates the trips table and bulk-loads the given records in
// a single transaction. Either the table ends up holding exactly this batch,
// or it is left untouched.
func (s *PostgresStore) ReplaceTrips(trips []*models.TripRecord) error {
	tx, err := s.dbpool.Begin(s.ctx)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %v", err)
	}
	defer tx.Rollback(s.ctx)

	log.Println("Truncating trips table for full refresh...")
	if _, err := tx.Exec(s.ctx, `TRUNCATE trips;`); err != nil {
		return fmt.Errorf("error truncating trips table: %v", err)
	}

	for start := 0; start < len(trips); start += s.batchSize {
		end := start + s.batchSize
		if end > len(trips) {
			end = len(trips)
		}

		log.Printf("Bulk loading trips %d-%d of %d", start+1, end, len(trips))
		if err := s.copyTrips(tx, trips[start:end]); err != nil {
			return fmt.Errorf("unable to copy trips %d-%d: %v", start+1, end, err)
		}
	}

	return tx.Commit(s.ctx)
}

func (s *PostgresStore) copyTrips(tx pgx.Tx, trips []*models.TripRecord) error {
	// The column order here must match the `trips` table.
	columnNames := []string{
		"pickup_time", "dropoff_time", "passenger_count", "trip_distance",
		"store_and_fwd_flag", "pu_location_id", "do_location_id", "fare_amount", "tip_amount",
	}

	copySource := pgx.CopyFromSlice(len(trips), func(i int) ([]interface{}, error) {
		trip := trips[i]
		flag := ""
		if trip.StoreAndFwdFlag != nil {
			flag = *trip.StoreAndFwdFlag
		}
		return []interface{}{*trip.PickupTime, *trip.DropoffTime, *trip.PassengerCount, *trip.TripDistance,
				flag, *trip.PULocationID, *trip.DOLocationID, *trip.FareAmount, *trip.TipAmount},
			nil
	})

	_, err := tx.CopyFrom(
		s.ctx,
		pgx.Identifier{"trips"},
		columnNames,
		copySource,
	)

	return err
}

func (s *PostgresStore) InsertRunRecord(fileName string, checksum string, startedAt time.Time) (uuid.UUID, error) {
	query := `
	INSERT INTO load_runs (id, file_name, checksum, status, started_at)
	VALUES ($1, $2, $3, $4, $5);`

	runID := uuid.New()
	_, err := s.dbpool.Exec(s.ctx, query, runID, fileName, checksum, RUN_STATUS_PROCESSING, startedAt)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error inserting load run record: %v", err)
	}

	return runID, nil
}

func (s *PostgresStore) UpdateRunStatus(runID uuid.UUID, status string, report models.RunReport) error {
	counts, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("error marshaling run report: %v", err)
	}

	query := `
	UPDATE load_runs
	SET status = $1,
		counts = $2,
		finished_at = $3
	WHERE id = $4;`

	_, err = s.dbpool.Exec(s.ctx, query, status, counts, time.Now(), runID)
	if err != nil {
		return fmt.Errorf("error updating load run status: %v", err)
	}

	return nil
}

// ZoneStats aggregates the loaded trips for one pickup zone since the given
// instant, for the read API.
func (s *PostgresStore) ZoneStats(puLocationID int, since time.Time) (*models.ZoneStats, error) {
	stats := &models.ZoneStats{PULocationID: puLocationID}

	query := `
	SELECT
		COUNT(*) AS trip_count,
		COALESCE(SUM(fare_amount), 0) AS total_fares,
		COALESCE(AVG(tip_amount), 0) AS mean_tip
	FROM trips
	WHERE pu_location_id = $1 AND pickup_time >= $2;`

	err := s.dbpool.QueryRow(s.ctx, query, puLocationID, since).Scan(&stats.TripCount, &stats.TotalFares, &stats.MeanTip)
	if err != nil {
		return nil, fmt.Errorf("error querying zone stats: %w", err)
	}

	return stats, nil
}
