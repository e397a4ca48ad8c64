package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound          = errors.New("resource not found")
	ErrSituationNotFound = fmt.Errorf("%w: situation", ErrNotFound)
	ErrCandidateNotFound = fmt.Errorf("%w: candidate", ErrNotFound)
	ErrRunNotFound       = fmt.Errorf("%w: run", ErrNotFound)

	// Validation errors
	ErrInvalidCandidate = errors.New("invalid candidate")
	ErrInvalidSituation = errors.New("invalid situation")
	ErrUnknownCOAType   = errors.New("unknown course-of-action type")
	ErrEmptyPool        = errors.New("empty candidate pool")

	// Collaborator errors
	ErrGraphUnavailable = errors.New("knowledge graph unavailable")
	ErrTableUnavailable = errors.New("tabular source unavailable")

	// Exclusion outcomes (not failures; consumed as signals by the pipeline)
	ErrCivilianHarm  = errors.New("candidate excluded: unacceptable civilian impact")
	ErrTimeExceeded  = errors.New("candidate excluded: time budget exceeded")
	ErrNoneSurviving = errors.New("no candidates survived evaluation")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsExclusion(err error) bool {
	return errors.Is(err, ErrCivilianHarm) || errors.Is(err, ErrTimeExceeded)
}

func IsCollaboratorError(err error) bool {
	return errors.Is(err, ErrGraphUnavailable) || errors.Is(err, ErrTableUnavailable)
}
