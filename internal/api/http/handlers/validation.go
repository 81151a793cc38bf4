package handlers

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	apperrors "github.com/calendarapp/calendar-service/pkg/util/errorutil"
)

const msgInvalidPayload = "Datos invalidos"

// validatePayload runs a request's ozzo rules and converts field failures to
// {field: {msg}} details.
func validatePayload(v validation.Validatable) error {
	err := v.Validate()
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewInternalError(err)
	}
	details := make(map[string]any, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		details[field] = map[string]string{"msg": fieldErr.Error()}
	}
	return apperrors.NewValidationError(msgInvalidPayload, details)
}
