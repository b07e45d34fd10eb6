package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single field-level validation issue, returned to clients
// in 400 bodies.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors converts a binding/validation error into user-facing
// field-level issues without leaking internal Go struct names.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}

	var issues []FieldError
	for _, fe := range validationErrors {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s is required", field)})
		case "email":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s must be a valid email address", field)})
		case "min":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s must be at least %s", field, fe.Param())})
		case "max":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s must be at most %s", field, fe.Param())})
		case "oneof":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s must be one of: %s", field, fe.Param())})
		case "url", "https", "startswith":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s must be a valid https URL", field)})
		case "gte":
			issues = append(issues, FieldError{field, fmt.Sprintf("%s must be at least %s", field, fe.Param())})
		default:
			issues = append(issues, FieldError{field, fmt.Sprintf("%s is invalid", field)})
		}
	}

	if len(issues) == 0 {
		return []FieldError{{Field: "body", Message: "Invalid request body"}}
	}
	return issues
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
