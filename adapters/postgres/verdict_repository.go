package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"goverdict/domain/core"
	"goverdict/domain/verdict"
	"goverdict/internal/errors"
	"goverdict/models"

	"github.com/jmoiron/sqlx"
)

// verdictRow mirrors the verdicts table
type verdictRow struct {
	ID          string         `db:"id"`
	JobID       sql.NullString `db:"job_id"`
	Mode        string         `db:"mode"`
	Fingerprint string         `db:"fingerprint"`
	ConfigHash  string         `db:"config_hash"`
	Input       []byte         `db:"input"`
	Verdict     []byte         `db:"verdict"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (row *verdictRow) toRecord() (*models.VerdictRecord, error) {
	record := &models.VerdictRecord{
		ID:          core.VerdictID(row.ID),
		JobID:       row.JobID.String,
		Mode:        models.EvaluationMode(row.Mode),
		Fingerprint: core.InputFingerprint(row.Fingerprint),
		ConfigHash:  core.ConfigHash(row.ConfigHash),
		CreatedAt:   row.CreatedAt,
	}
	if err := json.Unmarshal(row.Input, &record.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict input: %w", err)
	}
	if err := json.Unmarshal(row.Verdict, &record.Verdict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict: %w", err)
	}
	return record, nil
}

// VerdictRepository stores verdicts in PostgreSQL. The full verdict is kept
// as JSONB; score, tier and red flags are also broken out for querying.
type VerdictRepository struct {
	db *sqlx.DB
}

// NewVerdictRepository creates a new verdict repository
func NewVerdictRepository(db *sqlx.DB) *VerdictRepository {
	return &VerdictRepository{db: db}
}

// Save inserts the verdict and its red flags in one transaction
func (r *VerdictRepository) Save(ctx context.Context, record *models.VerdictRecord) error {
	inputJSON, err := json.Marshal(record.Input)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict input: %w", err)
	}
	verdictJSON, err := json.Marshal(record.Verdict)
	if err != nil {
		return fmt.Errorf("failed to marshal verdict: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO verdicts (
			id, job_id, mode, fingerprint, config_hash, input, verdict,
			overall_score, tier, confidence, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		record.ID.String(),
		sql.NullString{String: record.JobID, Valid: record.JobID != ""},
		string(record.Mode),
		record.Fingerprint.String(),
		record.ConfigHash.String(),
		inputJSON,
		verdictJSON,
		record.Verdict.OverallScore,
		string(record.Verdict.Verdict),
		string(record.Verdict.Confidence),
		record.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("failed to insert verdict", err)
	}

	for i, flag := range record.Verdict.RedFlags {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO verdict_red_flags (verdict_id, position, severity, title, message)
			VALUES ($1, $2, $3, $4, $5)`,
			record.ID.String(), i, string(flag.Severity), flag.Title, flag.Message,
		)
		if err != nil {
			return errors.DatabaseError("failed to insert red flag", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("failed to commit verdict", err)
	}
	return nil
}

// Get retrieves a verdict by ID
func (r *VerdictRepository) Get(ctx context.Context, id core.VerdictID) (*models.VerdictRecord, error) {
	var row verdictRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, job_id, mode, fingerprint, config_hash, input, verdict, created_at
		FROM verdicts
		WHERE id = $1`, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, core.ErrVerdictNotFound
		}
		return nil, errors.DatabaseError("failed to get verdict", err)
	}
	return row.toRecord()
}

// ListByJob returns a job's verdicts, newest first
func (r *VerdictRepository) ListByJob(ctx context.Context, jobID string, limit int) ([]*models.VerdictRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows []verdictRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, job_id, mode, fingerprint, config_hash, input, verdict, created_at
		FROM verdicts
		WHERE job_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, jobID, limit)
	if err != nil {
		return nil, errors.DatabaseError("failed to list verdicts", err)
	}

	records := make([]*models.VerdictRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// CountByTier reports how many stored verdicts landed in each tier
func (r *VerdictRepository) CountByTier(ctx context.Context) (map[verdict.Tier]int, error) {
	var rows []struct {
		Tier  string `db:"tier"`
		Count int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, `SELECT tier, COUNT(*) AS count FROM verdicts GROUP BY tier`); err != nil {
		return nil, errors.DatabaseError("failed to count verdicts", err)
	}

	counts := make(map[verdict.Tier]int, len(rows))
	for _, row := range rows {
		counts[verdict.Tier(row.Tier)] = row.Count
	}
	return counts, nil
}
