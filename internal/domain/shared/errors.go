// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base error kinds that can be used for error checking with errors.Is().
// These map one-to-one onto the failure categories surfaced at the API
// boundary: validation, not-found, upload, store.
var (
	// ErrValidation indicates missing or invalid required fields.
	// The caller is at fault and no side effect has occurred.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a referenced enrollment, topic, subject, or
	// learner does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrUpload indicates the media gateway failed. No curriculum row is
	// persisted when this error is returned.
	ErrUpload = errors.New("media upload failed")

	// ErrStore indicates a store connection or query failure. It
	// distinguishes nothing further and is surfaced as-is.
	ErrStore = errors.New("store error")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "curriculum", "enrollment", "learner"
	Op      string // Operation that failed, e.g., "AssignTopics"
	Kind    error  // Base error kind for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching against both kind and cause.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Curriculum domain errors
var (
	ErrSubjectNotFound     = NewDomainError("curriculum", "GetSubject", ErrNotFound, "subject not found")
	ErrTopicNotFound       = NewDomainError("curriculum", "GetTopic", ErrNotFound, "topic not found")
	ErrTitleRequired       = NewDomainError("curriculum", "Validate", ErrValidation, "title is required")
	ErrDescriptionRequired = NewDomainError("curriculum", "Validate", ErrValidation, "description is required")
	ErrSubjectRequired     = NewDomainError("curriculum", "Validate", ErrValidation, "subject_id is required")
)

// Learner domain errors
var (
	ErrLearnerNotFound = NewDomainError("learner", "Get", ErrNotFound, "learner not found")
	ErrNameRequired    = NewDomainError("learner", "Validate", ErrValidation, "name is required")
	ErrEmailRequired   = NewDomainError("learner", "Validate", ErrValidation, "email is required")
)

// Enrollment domain errors
var (
	ErrEnrollmentNotFound = NewDomainError("enrollment", "UpdateProgress", ErrNotFound, "learner is not enrolled in this topic")
	ErrLearnerRequired    = NewDomainError("enrollment", "Validate", ErrValidation, "learner_id is required")
	ErrTopicRequired      = NewDomainError("enrollment", "Validate", ErrValidation, "topic_id is required")
	ErrSelectionsRequired = NewDomainError("enrollment", "Validate", ErrValidation, "at least one selection is required")
	ErrProgressRequired   = NewDomainError("enrollment", "Validate", ErrValidation, "progress is required")
)

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUpload checks if the error came from the media gateway.
func IsUpload(err error) bool {
	return errors.Is(err, ErrUpload)
}

// IsStore checks if the error came from the relational store.
func IsStore(err error) bool {
	return errors.Is(err, ErrStore)
}
