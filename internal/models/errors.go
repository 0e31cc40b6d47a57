package models

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an analysis failure so the HTTP layer can map it
// to a status code without inspecting message text.
type ErrorKind int

const (
	ErrKindValidation ErrorKind = iota
	ErrKindRepositoryNotFound
	ErrKindRateLimited
	ErrKindInsufficientHistory
	ErrKindUpstreamData
	ErrKindUpstream
)

// AnalysisError is the error type surfaced by every pipeline stage.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err)
	}
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status this failure maps to.
func (e *AnalysisError) StatusCode() int {
	switch e.Kind {
	case ErrKindValidation, ErrKindInsufficientHistory:
		return http.StatusBadRequest
	case ErrKindRepositoryNotFound:
		return http.StatusNotFound
	case ErrKindRateLimited:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError reports a malformed or non-matching repository URL.
func NewValidationError(message string) *AnalysisError {
	return &AnalysisError{Kind: ErrKindValidation, Message: message}
}

// NewRepositoryNotFoundError reports an upstream 404 on the commit list.
func NewRepositoryNotFoundError() *AnalysisError {
	return &AnalysisError{Kind: ErrKindRepositoryNotFound, Message: "repository not found"}
}

// NewRateLimitedError reports an upstream 403-class response.
func NewRateLimitedError() *AnalysisError {
	return &AnalysisError{Kind: ErrKindRateLimited, Message: "rate limit exceeded"}
}

// NewInsufficientHistoryError reports fewer than two raw commits upstream.
func NewInsufficientHistoryError() *AnalysisError {
	return &AnalysisError{Kind: ErrKindInsufficientHistory, Message: "needs at least two commits"}
}

// NewUpstreamDataError reports a commit detail that failed structural validation.
func NewUpstreamDataError(err error) *AnalysisError {
	return &AnalysisError{Kind: ErrKindUpstreamData, Message: "invalid data structure", Err: err}
}

// NewUpstreamError reports any other non-success upstream response.
func NewUpstreamError(status string, err error) *AnalysisError {
	return &AnalysisError{Kind: ErrKindUpstream, Message: fmt.Sprintf("upstream request failed: %s", status), Err: err}
}

// AsAnalysisError extracts an AnalysisError from an error chain.
func AsAnalysisError(err error) (*AnalysisError, bool) {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr, true
	}
	return nil, false
}
