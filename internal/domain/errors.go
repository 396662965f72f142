package domain

import "errors"

// ErrNotFound is returned when a requested destination does not exist in the
// static course set.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails a business
// rule (e.g. negative prep time, unknown transport mode).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForecastUnavailable is returned by forecast sources when the upstream
// weather service cannot be reached or returns a malformed payload.
// It never fails an evaluation; the weather advisory degrades to no_data.
var ErrForecastUnavailable = errors.New("forecast unavailable")
