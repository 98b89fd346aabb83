package ports

import "goverdict/models"

// VerdictPublisher notifies listeners that a verdict was recorded for a job.
// Implementations must not block the caller.
type VerdictPublisher interface {
	PublishVerdict(record *models.VerdictRecord)
}
