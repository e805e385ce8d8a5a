package valuation

import "errors"

// Error kinds raised by the valuation package. Callers classify with errors.Is.
var (
	// ErrMissingRequiredField is returned by Normalize when a field with no default is absent.
	ErrMissingRequiredField = errors.New("missing required field")

	// ErrInvalidDivisor is returned when a divisor that must be nonzero is zero
	// (book value per share, discount rate, share count, stock price).
	ErrInvalidDivisor = errors.New("invalid divisor")

	// ErrMalformedInput is returned when an input document cannot be read or decoded.
	ErrMalformedInput = errors.New("malformed input")
)
