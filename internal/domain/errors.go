package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAirportNotFound  = errors.New("airport not found")
	ErrAircraftNotFound = errors.New("aircraft not found")
	ErrRouteNotFound    = errors.New("route not found")
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrUserNotFound     = errors.New("user not found")

	// ErrCapacityExceeded is returned when a flight has no seats left.
	ErrCapacityExceeded = errors.New("no seats available")

	// ErrFlightNotBookable is returned when booking a flight that is not
	// in Scheduled status.
	ErrFlightNotBookable = errors.New("flight is not open for booking")

	// ErrPNRConflict signals a reference-code collision; callers regenerate
	// and retry instead of surfacing it.
	ErrPNRConflict = errors.New("booking reference already exists")

	ErrInvalidBookingStatus     = errors.New("booking is not in a cancellable status")
	ErrCancellationWindowClosed = errors.New("too close to departure to cancel")

	ErrForbidden = errors.New("operation not permitted for this user")

	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")

	ErrDuplicate = errors.New("record already exists")
)

// ValidationError reports a malformed or missing input field. Detected
// before any write.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err names a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrAirportNotFound) ||
		errors.Is(err, ErrAircraftNotFound) ||
		errors.Is(err, ErrRouteNotFound) ||
		errors.Is(err, ErrFlightNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
