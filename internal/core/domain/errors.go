package domain

import "errors"

// Sentinel errors returned by services and repositories. The HTTP layer maps
// each to a status code and a machine-readable kind in one place.
var (
	// ErrInvalidCredentials is returned for any login failure, whether the
	// username, password, or RFID tag was wrong. Collapsing the cases keeps
	// the API from leaking which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenRevoked = errors.New("token revoked")
	ErrForbidden    = errors.New("access forbidden")

	// ErrInvalidInput flags a request that fails a service-level validity
	// check, such as an empty username. Maps to a validation error, never to
	// an auth failure.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidRole means the requested role is not a known role.
	ErrInvalidRole = errors.New("invalid role")

	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrItemNotFound        = errors.New("item not found")
	ErrLockerNotFound      = errors.New("locker not found")
	ErrLockerExists        = errors.New("locker already exists")
	ErrBorrowNotFound      = errors.New("borrow not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPaymentNotFound     = errors.New("payment not found")

	// ErrItemUnavailable means the item has no remaining quantity.
	ErrItemUnavailable = errors.New("item unavailable")
	// ErrLockerUnavailable means the locker is occupied or in maintenance.
	ErrLockerUnavailable = errors.New("locker unavailable")
	// ErrAlreadyReturned means the borrow already carries a return timestamp.
	ErrAlreadyReturned = errors.New("borrow already returned")
	// ErrRecordInUse blocks deletion of a record referenced by borrow rows.
	ErrRecordInUse = errors.New("record referenced by borrow history")

	ErrInvalidTransition = errors.New("invalid status transition")
)
