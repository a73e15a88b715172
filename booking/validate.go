package booking

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"busx-cli/model"
)

var validate = validator.New()

// FieldError describes a single rejected form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates the rejected fields of one form submission.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "invalid form"
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return strings.Join(parts, "; ")
}

// AsValidationError unwraps a *ValidationError if err carries one.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

type passengerForm struct {
	Contact    model.ContactInfo `validate:"required"`
	Passengers []model.Passenger `validate:"min=1,max=5,dive"`
}

// ValidatePassengerForm checks the contact record and every passenger
// record against the booking rules (valid email, 10-digit phone, names of
// at least two characters, 11-digit national id, known gender). Field-level
// failures come back as a *ValidationError; the submission is never fatal.
func ValidatePassengerForm(contact model.ContactInfo, passengers []model.Passenger) error {
	err := validate.Struct(passengerForm{Contact: contact, Passengers: passengers})
	if err == nil {
		return nil
	}

	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range invalid {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Namespace(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

// ValidateSaleRequest verifies the purchase preconditions locally before
// any remote call: trip id, seats, contact and passengers must all be
// present and well formed.
func ValidateSaleRequest(req model.TicketSaleRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range invalid {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Namespace(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return "email address is not valid"
	case "len":
		return fmt.Sprintf("%s must be exactly %s digits", name, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", name)
	case "min":
		if fe.Kind().String() == "slice" {
			return fmt.Sprintf("at least %s %s required", fe.Param(), strings.ToLower(name))
		}
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("at most %s %s allowed", fe.Param(), strings.ToLower(name))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is not valid", name)
	}
}
