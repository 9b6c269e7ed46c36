package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateSKU indicates an insert collided with an existing SKU.
	// The text is a client contract; the frontend special-cases it.
	ErrDuplicateSKU = errors.New("SKU already exists")

	// ErrInvalidArgument indicates an internal invariant violation, such
	// as an unknown product type reaching the factory.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ValidationError carries a client-safe message for rejected input.
// Validation fails fast: the message names the first broken rule only.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError wraps msg in a ValidationError.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a validation failure, including
// the duplicate-SKU case which clients treat the same way.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrDuplicateSKU)
}
