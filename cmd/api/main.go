package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"tripload/internal/database"
	"tripload/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	dbpool, err := database.ConnectDB(connStr)
	if err != nil {
		log.Fatalf("Failed to connect to the database: %v", err)
	}
	defer dbpool.Close()

	ctx := context.Background()
	store := database.NewPostgresStore(ctx, dbpool, database.DefaultBatchSize)

	router := server.SetupRoutes(server.NewZoneService(store))

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", port), router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
