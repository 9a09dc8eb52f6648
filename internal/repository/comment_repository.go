package repository

import (
	"context"
	"database/sql"
	"time"

	"shareit/internal/model"
)

// CommentRepo provides persistence for item comments. Reads join the
// author's name in so responses carry it without a second query.
type CommentRepo struct {
	db *sql.DB
}

// NewCommentRepo returns a new CommentRepo bound to the given database.
func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{db: db} }

// Create inserts a new comment, stamping the creation time and
// populating the generated ID.
func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	const q = `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	c.Created = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, q, c.Text, c.ItemID, c.AuthorID, c.Created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// ListByItem returns every comment on an item, oldest first, with
// the author name joined in.
func (r *CommentRepo) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	const q = `SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created
		FROM comments c JOIN users u ON u.id = c.author_id
		WHERE c.item_id = ? ORDER BY c.id ASC`
	rows, err := r.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]model.Comment, 0)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Created); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
