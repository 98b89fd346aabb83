package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	VerdictID ID
	JobID     ID
	BatchID   ID
)

func NewVerdictID() VerdictID { return VerdictID(NewID()) }
func NewBatchID() BatchID     { return BatchID(NewID()) }

func (id VerdictID) String() string { return ID(id).String() }
func (id JobID) String() string     { return ID(id).String() }
func (id BatchID) String() string   { return ID(id).String() }

// ParseVerdictID parses a string into VerdictID. Verdict IDs are always UUIDs.
func ParseVerdictID(s string) (VerdictID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: verdict ID cannot be empty", ErrInvalidInput)
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("%w: verdict ID %q is not a UUID", ErrInvalidInput, s)
	}
	return VerdictID(s), nil
}

// ParseJobID parses a string into JobID. Job IDs come from the research
// pipeline and are opaque.
func ParseJobID(s string) (JobID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("%w: job ID cannot be empty", ErrInvalidInput)
	}
	return JobID(s), nil
}
