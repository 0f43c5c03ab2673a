package services

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	// ErrEventHasRegistrations is returned when deleting an event that registrations still reference
	ErrEventHasRegistrations = errors.New("event has registrations and cannot be deleted")
	// ErrDuplicateRegistration is returned when the email is already registered for the event date
	ErrDuplicateRegistration = errors.New("email already registered for an event on this date")
	// ErrInvalidRegistration is returned when the selected event is not open for registration
	// or does not match the selected category and date
	ErrInvalidRegistration = errors.New("selected event is not available for registration")
)
