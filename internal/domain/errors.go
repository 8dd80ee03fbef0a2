package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFlightNotFound    = errors.New("flight not found")
	ErrPassengerNotFound = errors.New("passenger not found")

	ErrFlightNumberTaken        = errors.New("flight with this number already exists")
	ErrPassengerAlreadyOnFlight = errors.New("passenger is already on the flight")
	ErrPassengerNotOnFlight     = errors.New("passenger is not on the flight")
	ErrFlightFull               = errors.New("flight is full")
	ErrPassengerHasFlights      = errors.New("passenger is assigned to flights")
)

// ValidationError reports a single field constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// IsNotFound reports whether err is one of the missing-entity errors.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrFlightNotFound) || errors.Is(err, ErrPassengerNotFound)
}

// IsConflict reports whether err rejects the request because of the
// current state of the store.
func IsConflict(err error) bool {
	return errors.Is(err, ErrFlightNumberTaken) ||
		errors.Is(err, ErrPassengerAlreadyOnFlight) ||
		errors.Is(err, ErrPassengerNotOnFlight) ||
		errors.Is(err, ErrFlightFull) ||
		errors.Is(err, ErrPassengerHasFlights)
}

// IsValidation reports whether err is a field constraint violation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
