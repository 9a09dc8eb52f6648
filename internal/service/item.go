package service

import (
	"context"
	"strings"
	"time"

	"shareit/internal/model"
	"shareit/internal/repository"
)

// ItemService implements catalog rules: creation against an
// existing owner (and optionally an existing request), owner-only
// patches, enriched reads, substring search over available items and
// comment gating.
type ItemService struct {
	items    ItemStore
	users    UserStore
	bookings BookingStore
	requests RequestStore
	comments CommentStore
	clock    Clock
}

// NewItemService wires an ItemService.
func NewItemService(items ItemStore, users UserStore, bookings BookingStore, requests RequestStore, comments CommentStore) *ItemService {
	return &ItemService{items: items, users: users, bookings: bookings, requests: requests, comments: comments, clock: realClock{}}
}

// Create lists a new item for the owner. When the item fulfils an
// item request, that request must exist.
func (s *ItemService) Create(ctx context.Context, ownerID int64, it model.Item) (*model.Item, error) {
	if ok, err := s.users.Exists(ctx, ownerID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", ownerID)
	}
	if it.RequestID != nil {
		if _, err := s.requests.GetByID(ctx, *it.RequestID); err != nil {
			return nil, translate(err)
		}
	}
	it.OwnerID = ownerID
	if err := s.items.Create(ctx, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

// Update applies a partial update to an item. The lookup is scoped
// to the owner, so patching someone else's item reads as a missing
// item.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, patch model.ItemPatch) (*model.Item, error) {
	it, err := s.items.GetByIDAndOwner(ctx, itemID, ownerID)
	if err != nil {
		return nil, translate(err)
	}
	if patch.Name != nil {
		it.Name = *patch.Name
	}
	if patch.Description != nil {
		it.Description = *patch.Description
	}
	if patch.Available != nil {
		it.Available = *patch.Available
	}
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Get returns an item with its comments. When the caller owns the
// item the result also carries its last and next booking.
func (s *ItemService) Get(ctx context.Context, callerID, itemID int64) (*model.ItemDetails, error) {
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, translate(err)
	}
	return s.enrich(ctx, it, it.OwnerID == callerID)
}

// ListByOwner returns a page of the owner's items, each enriched the
// way the owner sees a single item.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetails, error) {
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	items, err := s.items.ListByOwner(ctx, ownerID, repository.OrderIDAsc, from, size)
	if err != nil {
		return nil, err
	}
	details := make([]model.ItemDetails, 0, len(items))
	for i := range items {
		d, err := s.enrich(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

// Search returns available items whose name or description contains
// the text, case-insensitively. Blank text short-circuits to an
// empty result without a query.
func (s *ItemService) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, text, from, size)
}

// AddComment posts a comment on an item. The author must have an
// APPROVED booking of the item that already ended.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, Errorf(CodeValidation, "comment text must not be blank")
	}
	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, translate(err)
	}
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, translate(err)
	}

	ok, err := s.bookings.HasFinishedApproved(ctx, itemID, authorID, s.clock.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, Errorf(CodeValidation, "user %d has no finished approved booking of item %d and cannot comment", authorID, itemID)
	}

	c := &model.Comment{Text: text, ItemID: itemID, AuthorID: authorID, AuthorName: author.Name}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// enrich attaches comments and, for the owner's view, the most
// recent past APPROVED booking and the nearest future booking.
func (s *ItemService) enrich(ctx context.Context, it *model.Item, ownerView bool) (*model.ItemDetails, error) {
	d := &model.ItemDetails{Item: *it}

	comments, err := s.comments.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	d.Comments = comments

	if !ownerView {
		return d, nil
	}

	bookings, err := s.bookings.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	var lastAt, nextAt time.Time
	for i := range bookings {
		b := &bookings[i]
		// Last: most recent APPROVED booking already started.
		if b.Status == model.StatusApproved && !b.Start.After(now) {
			if d.LastBooking == nil || b.Start.After(lastAt) {
				d.LastBooking = &model.BookingRef{ID: b.ID, BookerID: b.BookerID}
				lastAt = b.Start
			}
		}
		// Next: nearest booking starting in the future, any status.
		if b.Start.After(now) {
			if d.NextBooking == nil || b.Start.Before(nextAt) {
				d.NextBooking = &model.BookingRef{ID: b.ID, BookerID: b.BookerID}
				nextAt = b.Start
			}
		}
	}
	return d, nil
}
