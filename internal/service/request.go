package service

import (
	"context"

	"shareit/internal/model"
	"shareit/internal/repository"
)

// RequestService implements item-request rules: requests tied to an
// existing requester, listings split between "mine, all of them" and
// "everyone else's, paged", each enriched with fulfilling items.
type RequestService struct {
	requests RequestStore
	items    ItemStore
	users    UserStore
}

// NewRequestService wires a RequestService.
func NewRequestService(requests RequestStore, items ItemStore, users UserStore) *RequestService {
	return &RequestService{requests: requests, items: items, users: users}
}

// Create posts a new item request for the user.
func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (*model.ItemRequestDetails, error) {
	if ok, err := s.users.Exists(ctx, requesterID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", requesterID)
	}
	req := &model.ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return &model.ItemRequestDetails{ItemRequest: *req, Items: []model.Item{}}, nil
}

// ListOwn returns all of the user's requests, newest first, without
// paging.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]model.ItemRequestDetails, error) {
	if ok, err := s.users.Exists(ctx, requesterID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", requesterID)
	}
	reqs, err := s.requests.ListByRequester(ctx, requesterID, repository.OrderCreatedDesc)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, reqs)
}

// ListOthers returns a page of requests posted by everyone except
// the caller, newest first.
func (s *RequestService) ListOthers(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestDetails, error) {
	if ok, err := s.users.Exists(ctx, requesterID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", requesterID)
	}
	if err := checkPage(from, size); err != nil {
		return nil, err
	}
	reqs, err := s.requests.ListExcludingRequester(ctx, requesterID, repository.OrderCreatedDesc, from, size)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, reqs)
}

// Get returns a single request, enriched, to any existing user.
func (s *RequestService) Get(ctx context.Context, callerID, requestID int64) (*model.ItemRequestDetails, error) {
	if ok, err := s.users.Exists(ctx, callerID); err != nil {
		return nil, err
	} else if !ok {
		return nil, Errorf(CodeNotFound, "user %d does not exist", callerID)
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, translate(err)
	}
	return s.enrichOne(ctx, *req)
}

func (s *RequestService) enrichAll(ctx context.Context, reqs []model.ItemRequest) ([]model.ItemRequestDetails, error) {
	out := make([]model.ItemRequestDetails, 0, len(reqs))
	for _, req := range reqs {
		d, err := s.enrichOne(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *RequestService) enrichOne(ctx context.Context, req model.ItemRequest) (*model.ItemRequestDetails, error) {
	items, err := s.items.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &model.ItemRequestDetails{ItemRequest: req, Items: items}, nil
}
