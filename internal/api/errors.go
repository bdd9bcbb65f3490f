package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/chorely-api/internal/api/shared"
	"github.com/phrazzld/chorely-api/internal/domain"
	"github.com/phrazzld/chorely-api/internal/generation"
	"github.com/phrazzld/chorely-api/internal/service"
	"github.com/phrazzld/chorely-api/internal/store"
)

// clientErrors are sentinels whose own text is safe to show to clients.
var clientErrors = []error{
	domain.ErrTaskNameEmpty,
	domain.ErrTaskInvalidMinutes,
	domain.ErrTaskInvalidWeekday,
	domain.ErrTaskInvalidMonthDay,
	domain.ErrInvalidFrequency,
	domain.ErrInvalidDate,
	service.ErrInvalidRange,
	generation.ErrEmptyRoom,
}

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	case isClientError(err),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, generation.ErrContentBlocked):
		return http.StatusUnprocessableEntity

	case errors.Is(err, service.ErrSuggestionsDisabled),
		errors.Is(err, generation.ErrTransientFailure):
		return http.StatusServiceUnavailable

	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return capitalize(sentinel.Error())
		}
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrDuplicate):
		return "Task already exists"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"
	case errors.Is(err, service.ErrSuggestionsDisabled):
		return "Task suggestions are not configured"
	case errors.Is(err, generation.ErrContentBlocked):
		return "The suggestion request was blocked by content filters"
	case errors.Is(err, generation.ErrTransientFailure):
		return "The suggestion provider is temporarily unavailable"
	case errors.Is(err, generation.ErrInvalidResponse),
		errors.Is(err, generation.ErrGenerationFailed):
		return "The suggestion provider returned an unusable response"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the status and safe message for err. defaultMsg
// replaces the generic message of unmapped (500) errors when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, defaultMsg string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && defaultMsg != "" {
		message = defaultMsg
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		if err != nil && isClientError(err) {
			return GetSafeErrorMessage(err)
		}
		return "Validation error"
	}

	fe := verrs[0]
	return fmt.Sprintf("Invalid %s: %s", fe.Field(), validationTagMessage(fe.Tag()))
}

func isClientError(err error) bool {
	for _, sentinel := range clientErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min", "gt", "gte":
		return "too small"
	case "max", "lt", "lte":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
