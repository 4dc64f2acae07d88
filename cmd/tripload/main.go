package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tripload/internal/config"
	"tripload/internal/database"
	"tripload/internal/ingestion"
	"tripload/internal/pipeline"
)

func setup() (string, *ingestion.IngestionService, func(), error) {
	if len(os.Args) < 2 {
		return "", nil, nil, fmt.Errorf("please provide the trip CSV path as a command-line argument")
	}
	filePath := os.Args[1]

	cfg, err := config.New()
	if err != nil {
		return "", nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	pipe, err := pipeline.New(cfg.SourceTimezone)
	if err != nil {
		return "", nil, nil, err
	}

	dbpool, err := database.ConnectDB(cfg.DatabaseURL)
	if err != nil {
		return "", nil, nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	ctx := context.Background()
	store := database.NewPostgresStore(ctx, dbpool, cfg.DBBatchSize)

	if err := store.CreateSchema(); err != nil {
		dbpool.Close()
		return "", nil, nil, fmt.Errorf("failed to create schema: %w", err)
	}

	handler := ingestion.NewIngestionService(store, pipe, cfg.AuditFilePath)

	cleanupFunc := func() {
		dbpool.Close()
	}

	return filePath, handler, cleanupFunc, nil
}

func cleanup(cleanupFunc func()) {
	log.Println("Cleaning up resources...")
	cleanupFunc()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}
	startTime := time.Now()

	filePath, handler, cleanupFunc, err := setup()
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup(cleanupFunc)

	log.Printf("Starting full-refresh load of %s...", filePath)
	report, err := handler.Execute(filePath)
	if err != nil {
		log.Fatalf("Error during load: %v\n", err)
	}

	log.Printf("Load finished: %d unique trips loaded, %d duplicates audited, %d incomplete dropped, %d bad rows skipped",
		report.Unique, report.Duplicates, report.DroppedIncomplete, report.BadRows)
	log.Printf("Execution time: %s\n", time.Since(startTime))
}
