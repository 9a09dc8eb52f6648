package service

import (
	"context"
	"errors"
	"log"
	"time"

	"shareit/internal/model"
	"shareit/internal/queue"
	"shareit/internal/repository"
)

// BookingService implements the booking lifecycle: creation with
// availability and ownership checks, owner approval/rejection,
// booker cancellation and state/time-window filtered listings.
type BookingService struct {
	bookings BookingStore
	items    ItemStore
	users    UserStore
	events   EventPublisher
	clock    Clock
}

// NewBookingService wires a BookingService. events may be nil when
// no broker is configured.
func NewBookingService(bookings BookingStore, items ItemStore, users UserStore, events EventPublisher) *BookingService {
	return &BookingService{bookings: bookings, items: items, users: users, events: events, clock: realClock{}}
}

// Create books an item for the given window. The window must be
// strictly ordered, the item available, and the booker may not be
// the item's owner. The booking starts out WAITING.
func (s *BookingService) Create(ctx context.Context, bookerID, itemID int64, start, end time.Time) (*model.Booking, error) {
	if !start.Before(end) {
		return nil, Errorf(CodeValidation, "booking start must be before its end")
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, translate(err)
	}
	if !item.Available {
		return nil, Errorf(CodeValidation, "item %d is not available for booking", itemID)
	}

	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, translate(err)
	}
	if item.OwnerID == booker.ID {
		return nil, Errorf(CodeNotFound, "user %d cannot book their own item", bookerID)
	}

	b := &model.Booking{
		Start:    start,
		End:      end,
		ItemID:   item.ID,
		BookerID: booker.ID,
		Status:   model.StatusWaiting,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// SetApproval moves a WAITING or REJECTED booking to APPROVED or
// REJECTED. Only the item's owner may transition; APPROVED and
// CANCELED bookings accept no further toggle, so a booking the
// booker withdrew stays withdrawn. The guard and the write are a
// single conditional UPDATE.
func (s *BookingService) SetApproval(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.Booking, error) {
	if ok, err := s.users.Exists(ctx, ownerID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", ownerID)
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translate(err)
	}
	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, translate(err)
	}
	if item.OwnerID != ownerID {
		return nil, Errorf(CodeNotFound, "only the item's owner may approve or reject booking %d", bookingID)
	}

	next := model.StatusRejected
	if approved {
		next = model.StatusApproved
	}
	if err := s.bookings.SetStatusIfPending(ctx, bookingID, next); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, Errorf(CodeConflict, "booking %d is no longer awaiting approval", bookingID)
		}
		return nil, err
	}
	b.Status = next

	if approved && s.events != nil {
		ev := queue.BookingApprovedEvent{
			BookingID:  b.ID,
			ItemID:     item.ID,
			ItemName:   item.Name,
			OwnerID:    item.OwnerID,
			BookerID:   b.BookerID,
			Start:      b.Start.UTC().Format(time.RFC3339),
			End:        b.End.UTC().Format(time.RFC3339),
			ApprovedAt: s.clock.Now().UTC().Format(time.RFC3339),
		}
		// Event delivery is best-effort; the approval already happened.
		if err := s.events.PublishBookingApproved(ctx, ev); err != nil {
			log.Printf("booking: publish approved event failed: %v", err)
		}
	}
	return b, nil
}

// Cancel lets the booker withdraw their own booking while it is
// still WAITING. Any other state is a conflict.
func (s *BookingService) Cancel(ctx context.Context, bookerID, bookingID int64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translate(err)
	}
	if b.BookerID != bookerID {
		return nil, Errorf(CodeNotFound, "only the booker may cancel booking %d", bookingID)
	}
	if err := s.bookings.CancelIfWaiting(ctx, bookingID); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, Errorf(CodeConflict, "booking %d is no longer waiting and cannot be canceled", bookingID)
		}
		return nil, err
	}
	b.Status = model.StatusCanceled
	return b, nil
}

// Get returns a booking to its booker or the item's owner and to
// nobody else.
func (s *BookingService) Get(ctx context.Context, callerID, bookingID int64) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, translate(err)
	}
	if ok, err := s.users.Exists(ctx, callerID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", callerID)
	}
	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, translate(err)
	}
	if b.BookerID != callerID && item.OwnerID != callerID {
		return nil, Errorf(CodeNotFound, "booking %d is visible only to its booker or the item's owner", bookingID)
	}
	return b, nil
}

// ListForBooker returns a page of the user's own bookings narrowed
// by the raw state filter, newest start first.
func (s *BookingService) ListForBooker(ctx context.Context, userID int64, stateRaw string, from, size int) ([]model.Booking, error) {
	state, err := s.checkListArgs(ctx, userID, stateRaw, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, userID, state, s.clock.Now(), repository.OrderStartDesc, from, size)
}

// ListForOwner returns a page of bookings placed on the user's
// items, sharing the state-filter semantics of ListForBooker.
func (s *BookingService) ListForOwner(ctx context.Context, userID int64, stateRaw string, from, size int) ([]model.Booking, error) {
	state, err := s.checkListArgs(ctx, userID, stateRaw, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByItemOwner(ctx, userID, state, s.clock.Now(), repository.OrderStartDesc, from, size)
}

func (s *BookingService) checkListArgs(ctx context.Context, userID int64, stateRaw string, from, size int) (model.BookingState, error) {
	if ok, err := s.users.Exists(ctx, userID); err != nil {
		return "", err
	} else if !ok {
		return "", Errorf(CodeNotFound, "user %d does not exist", userID)
	}
	if err := checkPage(from, size); err != nil {
		return "", err
	}
	state, err := model.ParseBookingState(stateRaw)
	if err != nil {
		return "", Errorf(CodeUnknownState, "Unknown state: %s", stateRaw)
	}
	return state, nil
}

// translate maps repository sentinels onto coded errors so handlers
// see a single error vocabulary.
func translate(err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrItemNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrRequestNotFound):
		return codedError{code: CodeNotFound, msg: err.Error()}
	case errors.Is(err, repository.ErrDuplicateEmail):
		return codedError{code: CodeConflict, msg: err.Error()}
	}
	return err
}
