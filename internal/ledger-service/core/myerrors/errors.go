package myerrors

import "errors"

var (
	ErrUnauthorized      = errors.New("caller is not allowed to perform this operation")
	ErrAlreadyRegistered = errors.New("account is already registered")
	ErrNotRegistered     = errors.New("account is not registered")
	ErrInvalidZone       = errors.New("zone has no payout rate set")
	ErrInvalidRate       = errors.New("payout rate must be positive")
	ErrDriverInactive    = errors.New("driver is not active")
	ErrMustBeInactive    = errors.New("driver must be inactive before de-registration")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)
