package model

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the approval state of a booking. A new booking
// starts WAITING; the item owner moves it to APPROVED or REJECTED;
// the booker may cancel it while it is still WAITING. APPROVED is
// terminal for the approval operation.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// Booking is a reservation of an item for a time window, as stored
// in the `bookings` table. Start and End are UTC timestamps and
// Start is strictly before End for every persisted row.
//
// Fields:
//  ID       – primary key identifier.
//  Start    – beginning of the rental window.
//  End      – end of the rental window.
//  ItemID   – item being booked.
//  BookerID – user who booked the item.
//  Status   – approval state.
type Booking struct {
	ID       int64         `json:"id"`       // bookings.id
	Start    time.Time     `json:"start"`    // bookings.start_date
	End      time.Time     `json:"end"`      // bookings.end_date
	ItemID   int64         `json:"itemId"`   // bookings.item_id
	BookerID int64         `json:"bookerId"` // bookings.booker_id
	Status   BookingStatus `json:"status"`   // bookings.status
}

// BookingState is the listing filter narrowing booking queries.
// ALL, PAST, CURRENT and FUTURE select by time window relative to
// the query's notion of "now"; WAITING and REJECTED select by
// status.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StatePast     BookingState = "PAST"
	StateCurrent  BookingState = "CURRENT"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
)

// ParseBookingState maps a raw query value onto a known state
// filter. Matching is case-insensitive and the empty string means
// ALL. An unknown value is a reported error, never a silent
// default.
func ParseBookingState(raw string) (BookingState, error) {
	switch BookingState(strings.ToUpper(strings.TrimSpace(raw))) {
	case StateAll, "":
		return StateAll, nil
	case StatePast:
		return StatePast, nil
	case StateCurrent:
		return StateCurrent, nil
	case StateFuture:
		return StateFuture, nil
	case StateWaiting:
		return StateWaiting, nil
	case StateRejected:
		return StateRejected, nil
	}
	return "", fmt.Errorf("unknown state: %s", raw)
}
