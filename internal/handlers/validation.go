package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/cpghub/cpghub-api/internal/validation"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return errors
}

// fieldErrors converts the additive cross-field validation result to the
// response format. Binding failures and cross-field failures are merged so a
// submission reports every broken field at once.
func fieldErrors(errs validation.Errors) []ValidationError {
	out := make([]ValidationError, 0, len(errs))
	for _, fe := range errs {
		out = append(out, ValidationError{Field: fe.Field, Message: fe.Message})
	}
	return out
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fe.Field() + " must have at least " + fe.Param() + " entries or characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param()
	case "oneof":
		return fe.Field() + " must be one of: " + fe.Param()
	case "website":
		return "Invalid website URL"
	case "linkedin":
		return "Must be a LinkedIn profile, company or school URL"
	case "categorytext":
		return fe.Field() + " entries must be at least 3 characters of letters, digits and basic punctuation"
	case "url":
		return "Invalid URL format"
	default:
		return fe.Field() + " is invalid"
	}
}
