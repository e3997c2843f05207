package extract

import (
	"errors"
	"fmt"
)

// ErrorType categorizes extraction pipeline failures
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota

	// ErrorTypeDocumentUnavailable means the source document cannot be
	// opened or read at all. Fatal for the loader that owns it.
	ErrorTypeDocumentUnavailable

	// ErrorTypeNoCandidatePages means a topic's keywords matched no
	// pages. Informational; the topic's dataset is simply empty.
	ErrorTypeNoCandidatePages

	// ErrorTypeExtractionEmpty means every rule in a run produced zero
	// usable datasets. Must be surfaced distinctly from a
	// successful-but-empty result.
	ErrorTypeExtractionEmpty

	// ErrorTypeSchemaViolation means a reconciled dataset is missing a
	// required column. Never auto-repaired.
	ErrorTypeSchemaViolation
)

// String returns the wire representation of the error type
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeDocumentUnavailable:
		return "DOCUMENT_UNAVAILABLE"
	case ErrorTypeNoCandidatePages:
		return "NO_CANDIDATE_PAGES"
	case ErrorTypeExtractionEmpty:
		return "EXTRACTION_EMPTY"
	case ErrorTypeSchemaViolation:
		return "SCHEMA_VIOLATION"
	default:
		return "UNKNOWN"
	}
}

// Fatal reports whether an error of this type aborts the whole load
func (et ErrorType) Fatal() bool {
	return et == ErrorTypeDocumentUnavailable
}

// ExtractError is a typed extraction failure with context
type ExtractError struct {
	Type           ErrorType `json:"type"`
	Message        string    `json:"message"`
	Source         string    `json:"source,omitempty"` // file path or loader name
	Topic          string    `json:"topic,omitempty"`
	MissingColumns []string  `json:"missing_columns,omitempty"`
	Err            error     `json:"-"`
}

// Error implements the error interface
func (e *ExtractError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type.String(), e.Message)
	if e.Topic != "" {
		msg = fmt.Sprintf("%s (topic: %s)", msg, e.Topic)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the underlying cause
func (e *ExtractError) Unwrap() error {
	return e.Err
}

// NewDocumentUnavailable builds a fatal document-open failure
func NewDocumentUnavailable(source string, err error) *ExtractError {
	return &ExtractError{
		Type:    ErrorTypeDocumentUnavailable,
		Message: "document cannot be opened",
		Source:  source,
		Err:     err,
	}
}

// NewExtractionEmpty signals that a run produced zero usable datasets
func NewExtractionEmpty(source string) *ExtractError {
	return &ExtractError{
		Type:    ErrorTypeExtractionEmpty,
		Message: "extraction produced no datasets",
		Source:  source,
	}
}

// NewSchemaViolation reports required columns absent from a dataset
func NewSchemaViolation(topic string, missing []string) *ExtractError {
	return &ExtractError{
		Type:           ErrorTypeSchemaViolation,
		Message:        "dataset is missing required columns",
		Topic:          topic,
		MissingColumns: missing,
	}
}

// IsType reports whether err is an ExtractError of the given type
func IsType(err error, et ErrorType) bool {
	var ee *ExtractError
	if errors.As(err, &ee) {
		return ee.Type == et
	}
	return false
}
