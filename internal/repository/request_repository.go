package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shareit/internal/model"
)

// RequestRepo provides persistence for item requests.
type RequestRepo struct {
	db *sql.DB
}

// NewRequestRepo returns a new RequestRepo bound to the given database.
func NewRequestRepo(db *sql.DB) *RequestRepo { return &RequestRepo{db: db} }

const requestColumns = `id, description, requester_id, created`

func scanRequest(row interface{ Scan(...any) error }) (*model.ItemRequest, error) {
	var req model.ItemRequest
	if err := row.Scan(&req.ID, &req.Description, &req.RequesterID, &req.Created); err != nil {
		return nil, err
	}
	return &req, nil
}

// Create inserts a new item request and populates the generated ID.
// Created is stamped here so the database and the returned record
// agree on the timestamp.
func (r *RequestRepo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `INSERT INTO item_requests (description, requester_id, created) VALUES (?, ?, ?)`
	req.Created = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q, req.Description, req.RequesterID, req.Created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	req.ID = id
	return nil
}

// GetByID fetches a single request or returns ErrRequestNotFound.
func (r *RequestRepo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `SELECT ` + requestColumns + ` FROM item_requests WHERE id = ?`
	req, err := scanRequest(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	return req, err
}

// ListByRequester returns all requests posted by the user, unpaged,
// sorted per the given policy.
func (r *RequestRepo) ListByRequester(ctx context.Context, requesterID int64, ord Ordering) ([]model.ItemRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM item_requests WHERE requester_id = ?` + ord.clause()
	return r.queryRequests(ctx, q, requesterID)
}

// ListExcludingRequester returns a page of everyone else's requests,
// sorted per the given policy.
func (r *RequestRepo) ListExcludingRequester(ctx context.Context, requesterID int64, ord Ordering, offset, limit int) ([]model.ItemRequest, error) {
	q := `SELECT ` + requestColumns + ` FROM item_requests WHERE requester_id <> ?` + ord.clause() + ` LIMIT ? OFFSET ?`
	return r.queryRequests(ctx, q, requesterID, limit, offset)
}

func (r *RequestRepo) queryRequests(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := make([]model.ItemRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, rows.Err()
}
