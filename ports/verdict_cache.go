package ports

import (
	"context"

	"goverdict/domain/core"
	"goverdict/models"
)

// VerdictCache stores computed verdicts keyed by input fingerprint and
// threshold set. A miss returns (nil, nil).
type VerdictCache interface {
	Get(ctx context.Context, fp core.InputFingerprint, cfg core.ConfigHash) (*models.VerdictRecord, error)
	Set(ctx context.Context, record *models.VerdictRecord) error
}
