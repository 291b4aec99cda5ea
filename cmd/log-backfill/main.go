package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/habibiefaried/fountain-relay/internal/storage"
)

func main() {
	path := flag.String("file", "fountain.log", "log file to import")
	dryRun := flag.Bool("dry-run", false, "parse the file and report, without writing to the database")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer f.Close()

	var ps *storage.PostgresStorage
	if !*dryRun {
		dbURL := os.Getenv("DB_URL")
		if dbURL == "" {
			log.Fatal("DB_URL environment variable is required")
		}
		ps, err = storage.NewPostgresStorage(dbURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer ps.Close()
	}

	total := 0
	err = storage.ReadEntries(f, func(lineNo int, e storage.Entry) error {
		total++
		if ps == nil {
			return nil
		}
		e.ID = storage.BackfillID(lineNo, e)
		if err := ps.Append(e); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Backfill failed after %d entries: %v", total, err)
	}

	if *dryRun {
		log.Printf("Dry run: %d entries parsed from %s", total, *path)
		return
	}

	count, err := ps.Count()
	if err != nil {
		log.Printf("Warning: could not count rows: %v", err)
	}
	log.Printf("Backfill complete: %d entries read from %s, %d rows in fountain_log", total, *path, count)
}
