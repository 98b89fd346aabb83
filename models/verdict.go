package models

import (
	"time"

	"goverdict/domain/core"
	"goverdict/domain/verdict"
)

// EvaluationMode selects the scoring entry point
type EvaluationMode string

const (
	ModeFull EvaluationMode = "full"
	// ModeMVP scores pain and competition only; any other dimension in
	// the input is ignored.
	ModeMVP EvaluationMode = "mvp"
)

// EvaluationRequest asks for one verdict. JobID ties the verdict to the
// research job whose dimension scores it fuses.
type EvaluationRequest struct {
	JobID string         `json:"job_id,omitempty" validate:"omitempty,max=128"`
	Mode  EvaluationMode `json:"mode,omitempty" validate:"omitempty,oneof=full mvp"`
	Input verdict.Input  `json:"input"`
}

// Normalized returns the request with defaults filled in and, in MVP mode,
// with non-MVP dimensions dropped
func (r EvaluationRequest) Normalized() EvaluationRequest {
	if r.Mode == "" {
		r.Mode = ModeFull
	}
	if r.Mode == ModeMVP {
		r.Input = verdict.Input{Pain: r.Input.Pain, Competition: r.Input.Competition}
	}
	return r
}

// VerdictRecord is a persisted verdict together with what produced it
type VerdictRecord struct {
	ID          core.VerdictID           `json:"id"`
	JobID       string                   `json:"job_id,omitempty"`
	Mode        EvaluationMode           `json:"mode"`
	Fingerprint core.InputFingerprint    `json:"fingerprint"`
	ConfigHash  core.ConfigHash          `json:"config_hash"`
	Input       verdict.Input            `json:"input"`
	Verdict     verdict.ViabilityVerdict `json:"verdict"`
	CreatedAt   time.Time                `json:"created_at"`
	// Cached is set when the verdict was served from the cache
	Cached bool `json:"cached"`
}

// BatchItemResult is the outcome of one request in a batch. Exactly one of
// Record and Error is set.
type BatchItemResult struct {
	Index  int            `json:"index"`
	Record *VerdictRecord `json:"record,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// BatchSummary counts batch outcomes by verdict tier
type BatchSummary struct {
	Total     int                  `json:"total"`
	Succeeded int                  `json:"succeeded"`
	Failed    int                  `json:"failed"`
	ByTier    map[verdict.Tier]int `json:"by_tier"`
}

// BatchResult is returned by batch evaluation in request order
type BatchResult struct {
	ID      core.BatchID      `json:"id"`
	Items   []BatchItemResult `json:"items"`
	Summary BatchSummary      `json:"summary"`
}

// Summarize fills Summary from Items
func (b *BatchResult) Summarize() {
	s := BatchSummary{Total: len(b.Items), ByTier: make(map[verdict.Tier]int)}
	for _, item := range b.Items {
		if item.Record == nil {
			s.Failed++
			continue
		}
		s.Succeeded++
		s.ByTier[item.Record.Verdict.Verdict]++
	}
	b.Summary = s
}
