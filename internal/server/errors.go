// Package server provides the HTTP API consumed by the browser extension.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/proposal-assistant/internal/analysis"
	"github.com/jonathan/proposal-assistant/internal/llm"
)

// ErrBadRequest indicates a body that could not be decoded.
type ErrBadRequest struct {
	Err error
}

func (e *ErrBadRequest) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

func (e *ErrBadRequest) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *analysis.ErrValidation
		deniedErr     *analysis.ErrAccessDenied
		genErr        *llm.GenerationError
		badReqErr     *ErrBadRequest
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &badReqErr):
		return http.StatusBadRequest
	case errors.As(err, &deniedErr):
		return http.StatusForbidden
	case errors.As(err, &genErr):
		switch genErr.Kind {
		case llm.KindRateLimited:
			return http.StatusTooManyRequests
		case llm.KindConfiguration:
			return http.StatusServiceUnavailable
		default:
			return http.StatusBadGateway
		}
	default:
		return http.StatusInternalServerError
	}
}

// errorBody builds the JSON body for err. Internal errors are not echoed.
func (s *Server) errorBody(err error) map[string]any {
	var (
		validationErr *analysis.ErrValidation
		deniedErr     *analysis.ErrAccessDenied
		genErr        *llm.GenerationError
		badReqErr     *ErrBadRequest
	)
	switch {
	case errors.As(err, &validationErr):
		return map[string]any{
			"error": validationErr.Error(),
			"field": validationErr.Field,
		}
	case errors.As(err, &badReqErr):
		return map[string]any{"error": badReqErr.Error()}
	case errors.As(err, &deniedErr):
		body := map[string]any{
			"error": "trial limit reached",
			"code":  deniedErr.Code(),
			"limit": deniedErr.Limit,
		}
		if s.upgradeURL != "" {
			body["upgradeUrl"] = s.upgradeURL
		}
		return body
	case errors.As(err, &genErr):
		return map[string]any{
			"error": genErr.Message(),
			"kind":  string(genErr.Kind),
		}
	default:
		return map[string]any{"error": "internal server error"}
	}
}
