package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goverdict/adapters/postgres"
	"goverdict/domain/core"
	"goverdict/internal/migration"
	"goverdict/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate <database_url> [verdict_export_dir]")
	}

	databaseURL := os.Args[1]

	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	runner := migration.NewRunner()
	if err := runner.Run(ctx, db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Printf("Schema at version %s", runner.Version())

	if len(os.Args) < 3 {
		return
	}

	exportDir := os.Args[2]
	files, err := findVerdictFiles(exportDir)
	if err != nil {
		log.Fatalf("Failed to find verdict files: %v", err)
	}
	log.Printf("Found %d verdict files to import from %s", len(files), exportDir)

	repo := postgres.NewVerdictRepository(db)
	imported, skipped := 0, 0
	for _, file := range files {
		record, err := loadVerdictFromFile(file)
		if err != nil {
			log.Printf("Failed to load verdict from %s: %v", file, err)
			skipped++
			continue
		}

		if err := repo.Save(ctx, record); err != nil {
			log.Printf("Failed to import %s: %v", file, err)
			skipped++
			continue
		}
		imported++
	}

	log.Printf("Import complete: %d imported, %d skipped", imported, skipped)

	counts, err := repo.CountByTier(ctx)
	if err != nil {
		log.Printf("Failed to count stored verdicts: %v", err)
		return
	}
	for tier, n := range counts {
		log.Printf("  %s: %d", tier, n)
	}
}

// findVerdictFiles returns every .json file under dir
func findVerdictFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// loadVerdictFromFile reads an exported verdict record. Records without an
// ID or timestamp get fresh ones.
func loadVerdictFromFile(path string) (*models.VerdictRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record models.VerdictRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, err
	}
	if record.Verdict.Verdict == "" {
		return nil, core.NewValidationError("verdict", "missing tier")
	}

	if core.ID(record.ID).IsEmpty() {
		record.ID = core.NewVerdictID()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	if record.Mode == "" {
		record.Mode = models.ModeFull
	}
	if record.Fingerprint == "" {
		fp, err := core.ComputeInputFingerprint(string(record.Mode), record.Input)
		if err != nil {
			return nil, err
		}
		record.Fingerprint = fp
	}
	return &record, nil
}
