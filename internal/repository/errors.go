// Package repository implements data access for users, items,
// bookings, item requests and comments over MySQL. Sentinel errors
// defined here let the service layer distinguish failure scenarios
// without inspecting driver-specific error values.
package repository

import "errors"

// ErrUserNotFound is returned when a user id resolves to no row.
var ErrUserNotFound = errors.New("user not found")

// ErrItemNotFound is returned when an item id resolves to no row,
// or when an owner-scoped lookup matches no item of that owner.
var ErrItemNotFound = errors.New("item not found")

// ErrBookingNotFound is returned when a booking id resolves to no row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRequestNotFound is returned when an item request id resolves to
// no row.
var ErrRequestNotFound = errors.New("item request not found")

// ErrDuplicateEmail is returned when inserting or updating a user
// would violate the unique index on users.email.
var ErrDuplicateEmail = errors.New("email already in use")

// ErrStaleStatus is returned by conditional status updates when the
// guarded UPDATE matched no row, i.e. the booking already left the
// state the transition requires.
var ErrStaleStatus = errors.New("booking status no longer allows this transition")
