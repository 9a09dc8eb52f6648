package repository

import (
	"context"
	"database/sql"
	"errors"

	"shareit/internal/model"
)

// ItemRepo provides CRUD and search operations for items. Search is
// a case-insensitive substring match over name and description; the
// catalog columns use a case-insensitive collation, so plain LIKE
// matching is sufficient and no LOWER() wrapping is needed on the
// column side.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo returns a new ItemRepo bound to the given database.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

const itemColumns = `id, name, description, available, owner_id, request_id`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	var (
		it    model.Item
		reqID sql.NullInt64
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &reqID); err != nil {
		return nil, err
	}
	if reqID.Valid {
		it.RequestID = &reqID.Int64
	}
	return &it, nil
}

// Create inserts a new item and populates the generated ID.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	const q = `INSERT INTO items (name, description, available, owner_id, request_id) VALUES (?, ?, ?, ?, ?)`
	var reqID sql.NullInt64
	if it.RequestID != nil {
		reqID = sql.NullInt64{Int64: *it.RequestID, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, q, it.Name, it.Description, it.Available, it.OwnerID, reqID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = id
	return nil
}

// GetByID fetches a single item or returns ErrItemNotFound.
func (r *ItemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = ?`
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

// GetByIDAndOwner fetches an item only when it belongs to the given
// owner. A mismatch is indistinguishable from a missing item, which
// is exactly the behaviour partial updates rely on.
func (r *ItemRepo) GetByIDAndOwner(ctx context.Context, id, ownerID int64) (*model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE id = ? AND owner_id = ?`
	it, err := scanItem(r.db.QueryRowContext(ctx, q, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	return it, err
}

// Update overwrites the mutable columns of an item.
func (r *ItemRepo) Update(ctx context.Context, it *model.Item) error {
	const q = `UPDATE items SET name = ?, description = ?, available = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, it.Name, it.Description, it.Available, it.ID)
	return err
}

// ListByOwner returns a page of the owner's items ordered by the
// given policy.
func (r *ItemRepo) ListByOwner(ctx context.Context, ownerID int64, ord Ordering, offset, limit int) ([]model.Item, error) {
	q := `SELECT ` + itemColumns + ` FROM items WHERE owner_id = ?` + ord.clause() + ` LIMIT ? OFFSET ?`
	return r.queryItems(ctx, q, ownerID, limit, offset)
}

// Search returns a page of available items whose name or description
// contains the given text. The caller guarantees text is non-blank.
func (r *ItemRepo) Search(ctx context.Context, text string, offset, limit int) ([]model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items
		WHERE available = TRUE AND (name LIKE CONCAT('%', ?, '%') OR description LIKE CONCAT('%', ?, '%'))
		ORDER BY id ASC LIMIT ? OFFSET ?`
	return r.queryItems(ctx, q, text, text, limit, offset)
}

// ListByRequest returns every item created to fulfil the given item
// request.
func (r *ItemRepo) ListByRequest(ctx context.Context, requestID int64) ([]model.Item, error) {
	const q = `SELECT ` + itemColumns + ` FROM items WHERE request_id = ? ORDER BY id ASC`
	return r.queryItems(ctx, q, requestID)
}

func (r *ItemRepo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
