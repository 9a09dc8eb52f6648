package service

// In-memory store fakes backing the service unit tests. They mirror
// the SQL contracts of the repository package closely enough that
// the business rules can be exercised without a database.

import (
	"context"
	"sort"
	"strings"
	"time"

	"shareit/internal/model"
	"shareit/internal/queue"
	"shareit/internal/repository"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeUsers struct {
	seq   int64
	users map[int64]model.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{users: map[int64]model.User{}} }

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.seq++
	u.ID = f.seq
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUsers) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUsers) GetAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Update(_ context.Context, u *model.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, existing := range f.users {
		if id != u.ID && existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeItems struct {
	seq   int64
	items map[int64]model.Item
}

func newFakeItems() *fakeItems { return &fakeItems{items: map[int64]model.Item{}} }

func (f *fakeItems) Create(_ context.Context, it *model.Item) error {
	f.seq++
	it.ID = f.seq
	f.items[it.ID] = *it
	return nil
}

func (f *fakeItems) GetByID(_ context.Context, id int64) (*model.Item, error) {
	it, ok := f.items[id]
	if !ok {
		return nil, repository.ErrItemNotFound
	}
	return &it, nil
}

func (f *fakeItems) GetByIDAndOwner(_ context.Context, id, ownerID int64) (*model.Item, error) {
	it, ok := f.items[id]
	if !ok || it.OwnerID != ownerID {
		return nil, repository.ErrItemNotFound
	}
	return &it, nil
}

func (f *fakeItems) Update(_ context.Context, it *model.Item) error {
	f.items[it.ID] = *it
	return nil
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID int64, _ repository.Ordering, offset, limit int) ([]model.Item, error) {
	var out []model.Item
	for _, it := range f.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, offset, limit), nil
}

func (f *fakeItems) Search(_ context.Context, text string, offset, limit int) ([]model.Item, error) {
	var out []model.Item
	for _, it := range f.items {
		if it.Available && (containsFold(it.Name, text) || containsFold(it.Description, text)) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, offset, limit), nil
}

func (f *fakeItems) ListByRequest(_ context.Context, requestID int64) ([]model.Item, error) {
	var out []model.Item
	for _, it := range f.items {
		if it.RequestID != nil && *it.RequestID == requestID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBookings struct {
	seq      int64
	bookings map[int64]model.Booking
	items    *fakeItems
}

func newFakeBookings(items *fakeItems) *fakeBookings {
	return &fakeBookings{bookings: map[int64]model.Booking{}, items: items}
}

func (f *fakeBookings) Create(_ context.Context, b *model.Booking) error {
	f.seq++
	b.ID = f.seq
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookings) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return &b, nil
}

func (f *fakeBookings) SetStatusIfPending(_ context.Context, id int64, status model.BookingStatus) error {
	b := f.bookings[id]
	if b.Status != model.StatusWaiting && b.Status != model.StatusRejected {
		return repository.ErrStaleStatus
	}
	b.Status = status
	f.bookings[id] = b
	return nil
}

func (f *fakeBookings) CancelIfWaiting(_ context.Context, id int64) error {
	b := f.bookings[id]
	if b.Status != model.StatusWaiting {
		return repository.ErrStaleStatus
	}
	b.Status = model.StatusCanceled
	f.bookings[id] = b
	return nil
}

func matchState(b model.Booking, state model.BookingState, now time.Time) bool {
	switch state {
	case model.StatePast:
		return b.End.Before(now)
	case model.StateCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case model.StateFuture:
		return b.Start.After(now)
	case model.StateWaiting:
		return b.Status == model.StatusWaiting
	case model.StateRejected:
		return b.Status == model.StatusRejected
	default:
		return true
	}
}

func (f *fakeBookings) list(pick func(model.Booking) bool, state model.BookingState, now time.Time, offset, limit int) []model.Booking {
	var out []model.Booking
	for _, b := range f.bookings {
		if pick(b) && matchState(b, state, now) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return page(out, offset, limit)
}

func (f *fakeBookings) ListByBooker(_ context.Context, bookerID int64, state model.BookingState, now time.Time, _ repository.Ordering, offset, limit int) ([]model.Booking, error) {
	return f.list(func(b model.Booking) bool { return b.BookerID == bookerID }, state, now, offset, limit), nil
}

func (f *fakeBookings) ListByItemOwner(_ context.Context, ownerID int64, state model.BookingState, now time.Time, _ repository.Ordering, offset, limit int) ([]model.Booking, error) {
	return f.list(func(b model.Booking) bool {
		it, ok := f.items.items[b.ItemID]
		return ok && it.OwnerID == ownerID
	}, state, now, offset, limit), nil
}

func (f *fakeBookings) ListByItem(_ context.Context, itemID int64) ([]model.Booking, error) {
	var out []model.Booking
	for _, b := range f.bookings {
		if b.ItemID == itemID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.After(out[j].Start) })
	return out, nil
}

func (f *fakeBookings) HasFinishedApproved(_ context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	for _, b := range f.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID && b.Status == model.StatusApproved && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type fakeRequests struct {
	seq  int64
	reqs map[int64]model.ItemRequest
}

func newFakeRequests() *fakeRequests { return &fakeRequests{reqs: map[int64]model.ItemRequest{}} }

func (f *fakeRequests) Create(_ context.Context, req *model.ItemRequest) error {
	f.seq++
	req.ID = f.seq
	if req.Created.IsZero() {
		req.Created = time.Now().UTC()
	}
	f.reqs[req.ID] = *req
	return nil
}

func (f *fakeRequests) GetByID(_ context.Context, id int64) (*model.ItemRequest, error) {
	req, ok := f.reqs[id]
	if !ok {
		return nil, repository.ErrRequestNotFound
	}
	return &req, nil
}

func (f *fakeRequests) ListByRequester(_ context.Context, requesterID int64, _ repository.Ordering) ([]model.ItemRequest, error) {
	var out []model.ItemRequest
	for _, req := range f.reqs {
		if req.RequesterID == requesterID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return out, nil
}

func (f *fakeRequests) ListExcludingRequester(_ context.Context, requesterID int64, _ repository.Ordering, offset, limit int) ([]model.ItemRequest, error) {
	var out []model.ItemRequest
	for _, req := range f.reqs {
		if req.RequesterID != requesterID {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Created.After(out[j].Created) })
	return page(out, offset, limit), nil
}

type fakeComments struct {
	seq      int64
	comments []model.Comment
}

func (f *fakeComments) Create(_ context.Context, c *model.Comment) error {
	f.seq++
	c.ID = f.seq
	if c.Created.IsZero() {
		c.Created = time.Now().UTC()
	}
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeComments) ListByItem(_ context.Context, itemID int64) ([]model.Comment, error) {
	out := make([]model.Comment, 0)
	for _, c := range f.comments {
		if c.ItemID == itemID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeEvents struct {
	published []queue.BookingApprovedEvent
}

func (f *fakeEvents) PublishBookingApproved(_ context.Context, ev queue.BookingApprovedEvent) error {
	f.published = append(f.published, ev)
	return nil
}

func page[T any](in []T, offset, limit int) []T {
	if offset >= len(in) {
		return []T{}
	}
	end := offset + limit
	if end > len(in) {
		end = len(in)
	}
	return in[offset:end]
}

// containsFold mimics the case-insensitive LIKE of the items table.
func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
