// Package validation validates seed records and load entries using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/listenupapp/bookindex/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns an invalid argument error listing
// every failing field.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err, "validation failed")
	}
	return nil
}

// ValidateAt validates the entry found at position i of a batch. The returned
// error names the position in both its message and its details.
func (v *Validator) ValidateAt(i int, s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err, fmt.Sprintf("invalid entry at position %d", i), "position", i)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error, msg string, extra ...any) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return domainerrors.Wrap(err, domainerrors.CodeInvalidArgument, msg)
	}

	details := make(map[string]any, len(validationErrs)+len(extra)/2)
	for _, e := range validationErrs {
		details[e.Field()] = friendlyMessage(e)
	}
	for i := 0; i+1 < len(extra); i += 2 {
		details[fmt.Sprint(extra[i])] = extra[i+1]
	}

	return domainerrors.InvalidArgumentWithDetails(msg, details)
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s entries", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
