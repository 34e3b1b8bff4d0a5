package reject

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors is the 400 response body shape for validation failures:
// {"field": ["message", ...]}.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// FieldErrorsFromBinding translates gin binding failures (validator tags)
// into the per-field error map. Non-validator errors map to a generic
// body error so handlers always return the same shape.
func FieldErrorsFromBinding(err error) FieldErrors {
	fieldErrors := FieldErrors{}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		fieldErrors.Add("body", "Malformed request payload.")
		return fieldErrors
	}

	for _, fieldError := range validationErrors {
		fieldErrors.Add(strings.ToLower(fieldError.Field()), messageForTag(fieldError))
	}
	return fieldErrors
}

func messageForTag(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required."
	case "gte":
		return "Must be greater than or equal to " + fieldError.Param() + "."
	case "lte":
		return "Must be less than or equal to " + fieldError.Param() + "."
	case "gt":
		return "Must be greater than " + fieldError.Param() + "."
	case "max":
		return "Ensure this field has no more than " + fieldError.Param() + " characters."
	default:
		return "Invalid value."
	}
}
