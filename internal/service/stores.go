package service

import (
	"context"
	"time"

	"shareit/internal/model"
	"shareit/internal/queue"
	"shareit/internal/repository"
)

// Storage interfaces implemented by the repository layer. Services
// depend on these rather than on the concrete repos so unit tests
// can swap in mocks.

// UserStore persists user accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Exists(ctx context.Context, id int64) (bool, error)
	GetAll(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id int64) error
}

// ItemStore persists items.
type ItemStore interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, ord repository.Ordering, offset, limit int) ([]model.Item, error)
	Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error)
	ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error)
}

// BookingStore persists bookings.
type BookingStore interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	SetStatusIfPending(ctx context.Context, id int64, status model.BookingStatus) error
	CancelIfWaiting(ctx context.Context, id int64) error
	ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, ord repository.Ordering, offset, limit int) ([]model.Booking, error)
	ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, ord repository.Ordering, offset, limit int) ([]model.Booking, error)
	ListByItem(ctx context.Context, itemID int64) ([]model.Booking, error)
	HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error)
}

// RequestStore persists item requests.
type RequestStore interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64, ord repository.Ordering) ([]model.ItemRequest, error)
	ListExcludingRequester(ctx context.Context, requesterID int64, ord repository.Ordering, offset, limit int) ([]model.ItemRequest, error)
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

// EventPublisher emits domain events to the message broker. A nil
// publisher disables events; publish failures never fail the request
// that triggered them.
type EventPublisher interface {
	PublishBookingApproved(ctx context.Context, ev queue.BookingApprovedEvent) error
}
