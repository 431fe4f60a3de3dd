package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/huddlehq/huddle/pkg/schedsdk"
)

// validate is shared across handlers; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeValid decodes a JSON request body into dst and runs struct
// validation. A non-nil return is ready to write to the client.
func decodeValid(r *http.Request, dst any) *schedsdk.APIError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return schedsdk.NewAPIError(
			http.StatusBadRequest,
			schedsdk.ErrorCodeInvalidRequest,
			"Invalid JSON body",
		)
	}

	return validateStruct(dst)
}

// validateStruct runs struct validation on an already-decoded request.
func validateStruct(dst any) *schedsdk.APIError {
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return schedsdk.NewAPIError(
				http.StatusBadRequest,
				schedsdk.ErrorCodeValidationFailed,
				validationMessage(verrs[0]),
			)
		}
		return schedsdk.NewAPIError(
			http.StatusBadRequest,
			schedsdk.ErrorCodeValidationFailed,
			"Request validation failed",
		)
	}

	return nil
}

// validationMessage turns the first failed validation into something a
// client can act on without knowing validator tag names.
func validationMessage(fe validator.FieldError) string {
	field := snakeCase(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "gtfield":
		return fmt.Sprintf("%s must be after %s", field, snakeCase(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// snakeCase converts a Go field name to its JSON wire name, keeping
// initialism runs together so OwnerID becomes owner_id.
func snakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if r >= 'A' && r <= 'Z' {
			prevLower := i > 0 && runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if i > 0 && (prevLower || nextLower) {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
