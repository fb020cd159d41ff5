package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"lagerbok/pkg/logger"
	"lagerbok/pkg/model"

	"github.com/go-playground/validator/v10"
)

var (
	// Accepts local digit strings and international +47 style numbers.
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ]{4,19}$`)
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type BookingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewBookingValidator(log *logger.Logger) *BookingValidator {
	log.Info("Booking validator initialized successfully")

	return &BookingValidator{
		validate: validator.New(),
		logger:   log,
	}
}

// ValidateCommit checks the whole commit request before any write happens.
// A failure here must leave the database untouched.
func (v *BookingValidator) ValidateCommit(storageID int64, slotIDs []int64, booking *model.Booking) error {
	if err := v.Validate(booking); err != nil {
		return err
	}

	if storageID <= 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "StorageID",
				Message: "storage_id must be a positive integer",
			},
		}
	}

	if len(slotIDs) == 0 {
		return ValidationErrors{
			ValidationError{
				Field:   "SlotIDs",
				Message: "at least one slot must be selected",
			},
		}
	}

	seen := make(map[int64]struct{}, len(slotIDs))
	for _, id := range slotIDs {
		if id <= 0 {
			return ValidationErrors{
				ValidationError{
					Field:   "SlotIDs",
					Message: "slot ids must be positive integers",
				},
			}
		}
		if _, dup := seen[id]; dup {
			return ValidationErrors{
				ValidationError{
					Field:   "SlotIDs",
					Message: fmt.Sprintf("slot id %d appears more than once", id),
				},
			}
		}
		seen[id] = struct{}{}
	}

	return nil
}

func (v *BookingValidator) Validate(booking *model.Booking) error {
	if err := v.validate.Struct(booking); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	// Single-day bookings are legal, so equal dates pass.
	if booking.EndDate.Before(booking.StartDate) {
		return ValidationErrors{
			ValidationError{
				Field:   "EndDate",
				Message: "end_date must not be before start_date",
			},
		}
	}

	if !phoneRegex.MatchString(booking.CompanyTlf) {
		return ValidationErrors{
			ValidationError{
				Field:   "CompanyTlf",
				Message: "company_tlf must be a valid phone number",
			},
		}
	}

	return nil
}

func (v *BookingValidator) translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
