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
	// Falls back to v4 if v7 is not available (for compatibility)
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
	SituationID ID
	CandidateID ID
	RunID       ID
	NodeID      ID
)

// String conversions for domain IDs
func (id SituationID) String() string { return ID(id).String() }
func (id CandidateID) String() string { return ID(id).String() }
func (id RunID) String() string       { return ID(id).String() }
func (id NodeID) String() string      { return ID(id).String() }

// ParseSituationID parses a string into SituationID
func ParseSituationID(s string) (SituationID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("situation ID cannot be empty")
	}
	return SituationID(s), nil
}

// ParseCandidateID parses a string into CandidateID
func ParseCandidateID(s string) (CandidateID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("candidate ID cannot be empty")
	}
	return CandidateID(s), nil
}

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}
