package sat

import "errors"

var (
	// ErrConstraintViolation reports input that breaks a documented
	// precondition: too many vertices, negative radius, wrong winding or
	// a reflex corner.
	ErrConstraintViolation = errors.New("sat: constraint violation")

	// ErrDegenerateInput reports input that would feed a zero or
	// non-finite value into a normalisation: repeated vertices, zero area,
	// NaN or infinite coordinates.
	ErrDegenerateInput = errors.New("sat: degenerate input")
)
