package validator

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var seatLabelRgx = regexp.MustCompile(`^[A-Z]{1,2}[0-9]{1,3}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("seat_label", validateSeatLabel)

	return validator
}

// Seat labels are a row prefix followed by a seat number, e.g. "A12" or "AB3".
func validateSeatLabel(fl validator.FieldLevel) bool {
	return seatLabelRgx.MatchString(fl.Field().String())
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "seat_label":
		return "must be a seat label such as A12"
	default:
		return "is invalid"
	}
}
