package api

import (
	"time"

	"goverdict/domain/verdict"
	"goverdict/models"
	"goverdict/ports"
)

// EventVerdict is the SSE event type for a recorded verdict
const EventVerdict = "verdict"

// VerdictEvent is streamed to clients watching a job
type VerdictEvent struct {
	JobID        string       `json:"job_id"`
	EventType    string       `json:"event_type"`
	VerdictID    string       `json:"verdict_id"`
	Tier         verdict.Tier `json:"tier"`
	Label        string       `json:"label"`
	OverallScore float64      `json:"overall_score"`
	RedFlags     []string     `json:"red_flags,omitempty"`
	Cached       bool         `json:"cached"`
	Timestamp    time.Time    `json:"timestamp"`
}

// SSEVerdictPublisher adapts the SSEHub to ports.VerdictPublisher
type SSEVerdictPublisher struct {
	hub *SSEHub
}

var _ ports.VerdictPublisher = (*SSEVerdictPublisher)(nil)

// NewSSEVerdictPublisher creates a publisher that broadcasts through hub
func NewSSEVerdictPublisher(hub *SSEHub) *SSEVerdictPublisher {
	return &SSEVerdictPublisher{hub: hub}
}

// PublishVerdict broadcasts a summary of record to the record's job
func (p *SSEVerdictPublisher) PublishVerdict(record *models.VerdictRecord) {
	event := VerdictEvent{
		JobID:        record.JobID,
		EventType:    EventVerdict,
		VerdictID:    record.ID.String(),
		Tier:         record.Verdict.Verdict,
		Label:        record.Verdict.VerdictLabel,
		OverallScore: record.Verdict.OverallScore,
		Cached:       record.Cached,
		Timestamp:    record.CreatedAt,
	}
	for _, f := range record.Verdict.RedFlags {
		event.RedFlags = append(event.RedFlags, f.Title)
	}
	p.hub.Broadcast(event)
}
