package analysis

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/proposal-assistant/internal/access"
)

// CodeLimitReached is the machine-readable code for an exhausted trial.
const CodeLimitReached = "LIMIT_REACHED"

// ErrValidation represents a rejected request field.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// ErrAccessDenied is returned when the entitlement check refuses the user.
type ErrAccessDenied struct {
	Reason access.Reason
	Limit  int
}

func (e *ErrAccessDenied) Error() string {
	return fmt.Sprintf("access denied (%s): trial limit of %d analyses reached", e.Reason, e.Limit)
}

// Code returns the machine-readable reason code.
func (e *ErrAccessDenied) Code() string {
	return CodeLimitReached
}

// newValidationError converts a validator failure into an ErrValidation
// naming the first offending field.
func newValidationError(prefix string, err error) *ErrValidation {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ErrValidation{Field: prefix, Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Field()
	if prefix != "" {
		field = prefix + "." + field
	}

	var msg string
	switch fe.Tag() {
	case "required":
		msg = "is required"
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s]", fe.Param())
	case "gte":
		msg = fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		msg = fmt.Sprintf("must be at most %s", fe.Param())
	default:
		msg = fmt.Sprintf("failed %q check", fe.Tag())
	}
	return &ErrValidation{Field: field, Message: msg}
}
