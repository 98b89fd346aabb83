package ports

import (
	"context"

	"goverdict/domain/core"
	"goverdict/models"
)

// VerdictRepository defines the interface for verdict persistence
type VerdictRepository interface {
	// Save stores a verdict record
	Save(ctx context.Context, record *models.VerdictRecord) error

	// Get retrieves a verdict by ID, returning core.ErrVerdictNotFound when absent
	Get(ctx context.Context, id core.VerdictID) (*models.VerdictRecord, error)

	// ListByJob returns the verdicts recorded for a research job, newest first
	ListByJob(ctx context.Context, jobID string, limit int) ([]*models.VerdictRecord, error)
}
