// Package repository implements the data access layer over MySQL. Sentinel
// errors are shared across repositories so handlers can map failures to
// HTTP statuses without inspecting driver errors.
package repository

import "errors"

// ErrTourNotFound is returned when a tour id exists in no catalog source.
// Handlers translate it into an HTTP 404 response.
var ErrTourNotFound = errors.New("tour not found")

// ErrReservationNotFound is returned when a reservation id does not exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrReviewNotFound is returned when a review id does not exist.
var ErrReviewNotFound = errors.New("review not found")

// ErrAdminNotFound is returned when an email is not on the authorized
// admins list. Handlers must respond identically to a wrong password to
// avoid leaking which addresses are authorized.
var ErrAdminNotFound = errors.New("admin not found")

// ErrInvalidTransition is returned when a status update does not follow the
// reservation lifecycle (pending->confirmed, pending->cancelled,
// confirmed->completed). Handlers translate it into an HTTP 409 response.
var ErrInvalidTransition = errors.New("invalid status transition")
