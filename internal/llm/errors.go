package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorKind classifies generation failures. None are retried.
type ErrorKind string

// Generation failure kinds
const (
	KindRateLimited   ErrorKind = "rate_limited"
	KindConfiguration ErrorKind = "configuration"
	KindMalformed     ErrorKind = "malformed"
	KindUpstream      ErrorKind = "upstream"
)

// GenerationError wraps a failed generation call.
type GenerationError struct {
	Kind ErrorKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Message is the caller-facing description of the failure.
func (e *GenerationError) Message() string {
	switch e.Kind {
	case KindRateLimited:
		return "text generation rate limit exceeded, try again in a few seconds"
	case KindConfiguration:
		return "text generation is not configured correctly"
	case KindMalformed:
		return "text generation returned an invalid response"
	default:
		return "text generation failed"
	}
}

// ClassifyError wraps err in a GenerationError of the matching kind.
// Errors that already carry a kind are returned unchanged.
func ClassifyError(err error) *GenerationError {
	if err == nil {
		return nil
	}

	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}

	return &GenerationError{Kind: kindOf(err), Err: err}
}

func kindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrMissingAPIKey):
		return KindConfiguration
	case errors.Is(err, errEmptyResponse):
		return KindMalformed
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return KindUpstream
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return KindRateLimited
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusBadRequest, http.StatusNotFound:
			return KindConfiguration
		}
		return KindUpstream
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted:
			return KindRateLimited
		case codes.Unauthenticated, codes.PermissionDenied, codes.InvalidArgument, codes.NotFound:
			return KindConfiguration
		}
	}

	return KindUpstream
}
