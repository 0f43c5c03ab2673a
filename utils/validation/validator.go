package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sahilchouksey/event-registration-api/model"
)

var (
	// EventNameRegex allows letters, digits, whitespace and - _ . , &
	EventNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s\-_.,&]*$`)

	// PersonNameRegex allows letters, digits, whitespace and . -
	PersonNameRegex = regexp.MustCompile(`^[a-zA-Z0-9\s.\-]*$`)

	// InstitutionRegex allows letters, digits, whitespace and . - , & '
	InstitutionRegex = regexp.MustCompile(`^[a-zA-Z0-9\s.\-,&']*$`)
)

var (
	ErrWindowStartAfterEnd  = errors.New("registration end date must be on or after the start date")
	ErrWindowEndAfterEvent  = errors.New("registration must close on or before the event date")
	ErrInvalidCalendarDates = errors.New("dates must use the YYYY-MM-DD format")
)

// Validator wraps the go-playground validator
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with the domain tags registered
func NewValidator() *Validator {
	validate := validator.New()

	// Errors report the JSON field name
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	validate.RegisterValidation("eventname", matches(EventNameRegex))
	validate.RegisterValidation("personname", matches(PersonNameRegex))
	validate.RegisterValidation("institution", matches(InstitutionRegex))
	validate.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.Category(fl.Field().String()).IsValid()
	})

	return &Validator{
		validate: validate,
	}
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	}
}

// ValidateStruct validates a struct using struct tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationErrors converts validation errors to a user-friendly format
func FormatValidationErrors(err error) map[string]string {
	messages := make(map[string]string)

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return messages
	}

	for _, e := range validationErrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			messages[field] = fmt.Sprintf("%s is required", field)
		case "email":
			messages[field] = "Please enter a valid email address"
		case "max":
			messages[field] = fmt.Sprintf("%s must be at most %s characters", field, e.Param())
		case "datetime":
			messages[field] = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
		case "eventname":
			messages[field] = "Event name contains invalid characters. Only letters, numbers, spaces, hyphens, underscores, periods, commas, and ampersands are allowed."
		case "personname":
			messages[field] = "Full name contains invalid characters. Only letters, numbers, spaces, periods, and hyphens are allowed."
		case "institution":
			messages[field] = fmt.Sprintf("%s contains invalid characters. Only letters, numbers, spaces, periods, hyphens, commas, apostrophes, and ampersands are allowed.", field)
		case "category":
			messages[field] = "Unknown event category"
		default:
			messages[field] = fmt.Sprintf("%s is invalid", field)
		}
	}

	return messages
}

// ValidateEventWindow checks start <= end <= eventDate on YYYY-MM-DD dates
func ValidateEventWindow(start, end, eventDate string) error {
	startDay, err1 := time.Parse(model.DateLayout, start)
	endDay, err2 := time.Parse(model.DateLayout, end)
	eventDay, err3 := time.Parse(model.DateLayout, eventDate)
	if err1 != nil || err2 != nil || err3 != nil {
		return ErrInvalidCalendarDates
	}

	if startDay.After(endDay) {
		return ErrWindowStartAfterEnd
	}
	if endDay.After(eventDay) {
		return ErrWindowEndAfterEvent
	}
	return nil
}

// SanitizeString removes potentially dangerous characters
func SanitizeString(s string) string {
	// Remove null bytes
	s = strings.ReplaceAll(s, "\x00", "")
	// Trim whitespace
	s = strings.TrimSpace(s)
	return s
}
