package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	sqlstore "silverradar/internal/storage/sqlite"
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	store, err := sqlstore.Open(os.Getenv("SQLITE_PATH"))
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Printf("migrated schema at %s", store.Path())
}
