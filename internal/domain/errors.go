package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the sentinel every ValidationError unwraps to.
var ErrValidation = errors.New("validation failed")

// ValidationError reports input the caller must correct. It is never retryable.
type ValidationError struct {
	Field    string `json:"field"`
	EntityID string `json:"entity_id,omitempty"`
	Message  string `json:"message"`
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(field, entityID, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, EntityID: entityID, Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.EntityID != "" {
		return fmt.Sprintf("%s (%s): %s", e.Field, e.EntityID, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// WarningKind classifies a ConsistencyWarning.
type WarningKind string

const (
	WarningDanglingReference WarningKind = "dangling_reference"
	WarningOneSidedRelation  WarningKind = "one_sided_relation"
	WarningPercentMismatch   WarningKind = "percent_mismatch"
	WarningOverAllocated     WarningKind = "over_allocated"
	WarningDuplicateID       WarningKind = "duplicate_id"
	WarningInvalidDate       WarningKind = "invalid_date"
)

// ConsistencyWarning is a non-fatal reference problem found while evaluating a snapshot.
// The offending entry is skipped and surfaced here for cleanup.
type ConsistencyWarning struct {
	Kind          WarningKind `json:"kind"`
	EntityID      string      `json:"entity_id"`
	CounterpartID string      `json:"counterpart_id,omitempty"`
	Message       string      `json:"message"`
}

func (w ConsistencyWarning) String() string {
	return fmt.Sprintf("[%s] %s", w.Kind, w.Message)
}
