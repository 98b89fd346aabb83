package migration

import (
	"context"

	"goverdict/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.1.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order. Every step is
// idempotent so Run is safe on every boot.
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createVerdictsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create verdicts table")
	}

	if err := r.addVerdictColumns(ctx, db); err != nil {
		return errors.Wrap(err, "failed to add verdicts columns")
	}

	if err := r.createVerdictRedFlagsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create verdict_red_flags table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

func (r *MigrationRunner) createVerdictsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS verdicts (
			id UUID PRIMARY KEY,
			job_id VARCHAR(128),
			mode VARCHAR(16) NOT NULL DEFAULT 'full',
			fingerprint CHAR(64) NOT NULL,
			input JSONB NOT NULL,
			verdict JSONB NOT NULL,
			overall_score DECIMAL(3,1) NOT NULL,
			tier VARCHAR(32) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

// addVerdictColumns brings tables created before threshold hashing up to date
func (r *MigrationRunner) addVerdictColumns(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		DO $$
		BEGIN
			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'verdicts' AND column_name = 'config_hash'
			) THEN
				ALTER TABLE verdicts ADD COLUMN config_hash CHAR(64) NOT NULL DEFAULT '';
			END IF;

			IF NOT EXISTS (
				SELECT 1 FROM information_schema.columns
				WHERE table_name = 'verdicts' AND column_name = 'confidence'
			) THEN
				ALTER TABLE verdicts ADD COLUMN confidence VARCHAR(16);
			END IF;
		END $$;
	`)
	return err
}

func (r *MigrationRunner) createVerdictRedFlagsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS verdict_red_flags (
			verdict_id UUID NOT NULL REFERENCES verdicts(id) ON DELETE CASCADE,
			position SMALLINT NOT NULL,
			severity VARCHAR(8) NOT NULL,
			title VARCHAR(128) NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (verdict_id, position)
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_verdicts_job_id ON verdicts(job_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_verdicts_fingerprint ON verdicts(fingerprint, config_hash)`,
		`CREATE INDEX IF NOT EXISTS idx_verdicts_tier ON verdicts(tier)`,
		`CREATE INDEX IF NOT EXISTS idx_verdict_red_flags_title ON verdict_red_flags(title)`,
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
