package service

import "errors"

// Sentinel errors returned by the storefront services. Handlers map them to
// HTTP statuses; callers wrap them with fmt.Errorf("%w") to add detail.
var (
	// ErrInvalidCredentials: unknown email or wrong password. HTTP 401.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserExists: the email is already registered. HTTP 409.
	ErrUserExists = errors.New("email already registered")
	// ErrInvalidInput: a required field is missing or malformed. HTTP 400.
	ErrInvalidInput = errors.New("invalid input")
	// ErrSessionNotFound: the bearer token is unknown or expired. HTTP 401.
	ErrSessionNotFound = errors.New("session not found or expired")
	// ErrImageNotFound: an order line names a missing or inactive image. HTTP 404.
	ErrImageNotFound = errors.New("image not found")
	// ErrOutOfStock: an order line asks for more units than are left. HTTP 409.
	ErrOutOfStock = errors.New("out of stock")
	// ErrEmptyOrder: an order without lines. HTTP 400.
	ErrEmptyOrder = errors.New("order has no lines")
)
