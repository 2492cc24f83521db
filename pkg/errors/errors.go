package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeFetch represents transport or HTTP-level failures
	ErrorTypeFetch ErrorType = "fetch"
	// ErrorTypeNormalization represents failures turning raw fragments into a record
	ErrorTypeNormalization ErrorType = "normalization"
	// ErrorTypeStore represents persistence errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeNotify represents notification dispatch errors
	ErrorTypeNotify ErrorType = "notify"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// PipelineError represents an error scoped to one source or one record
type PipelineError struct {
	Type    ErrorType
	Source  string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Source, e.Message)
}

// Unwrap returns the underlying error
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// IsTerminal reports whether the error aborts the whole run rather than
// just the source or record it belongs to.
func (e *PipelineError) IsTerminal() bool {
	switch e.Type {
	case ErrorTypeNotify, ErrorTypeConfiguration:
		return true
	default:
		return false
	}
}

// New creates a new PipelineError
func New(errType ErrorType, source, message string, err error) *PipelineError {
	return &PipelineError{
		Type:    errType,
		Source:  source,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewFetch creates a new fetch error
func NewFetch(source, message string, err error) *PipelineError {
	return New(ErrorTypeFetch, source, message, err)
}

// NewNormalization creates a new normalization error
func NewNormalization(source, message string) *PipelineError {
	return New(ErrorTypeNormalization, source, message, nil)
}

// NewStore creates a new store error
func NewStore(source, message string, err error) *PipelineError {
	return New(ErrorTypeStore, source, message, err)
}

// NewNotify creates a new notify error
func NewNotify(message string, err error) *PipelineError {
	return New(ErrorTypeNotify, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *PipelineError {
	return New(ErrorTypeConfiguration, "", message, err)
}
