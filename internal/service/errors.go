package service

import "errors"

// Typed error taxonomy. Handlers translate these into distinct status codes
// instead of collapsing every failure into a 500.
var (
	// ErrValidation covers malformed input, e.g. an out-of-range rating.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden covers acting on another principal's resource or a
	// staff-only action attempted by a regular user.
	ErrForbidden = errors.New("forbidden")

	// ErrEmptyCart is returned on checkout with no cart items.
	ErrEmptyCart = errors.New("cart is empty")
)

// Principal identifies the authenticated caller. It is passed explicitly
// into every service call; there is no ambient request user.
type Principal struct {
	UserID  int64
	Email   string
	IsStaff bool
}
