package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"shareit/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number raised when an
// insert or update violates a unique index.
const mysqlDuplicateEntry = 1062

// UserRepo provides CRUD operations for user accounts. The unique
// email constraint lives in the database; duplicate-key violations
// are translated to ErrDuplicateEmail here so callers never touch
// driver error codes.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user and populates the generated ID on the
// provided record.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (name, email) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Email)
	if err != nil {
		return translateDuplicate(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetByID fetches a single user or returns ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `SELECT id, name, email FROM users WHERE id = ?`
	var u model.User
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Name, &u.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// Exists reports whether a user with the given id is stored. It is
// used by services that only need the referential check and not the
// full record.
func (r *UserRepo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `SELECT 1 FROM users WHERE id = ?`
	var one int
	err := r.db.QueryRowContext(ctx, q, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetAll returns every stored user ordered by id.
func (r *UserRepo) GetAll(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, name, email FROM users ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Update overwrites name and email of an existing user. The service
// layer resolves the patch into full values before calling.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	const q = `UPDATE users SET name = ?, email = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, u.Name, u.Email, u.ID)
	if err != nil {
		return translateDuplicate(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// MySQL also reports 0 when values did not change; re-check
		// existence so an unchanged update is not mistaken for a
		// missing user.
		if ok, err := r.Exists(ctx, u.ID); err != nil {
			return err
		} else if !ok {
			return ErrUserNotFound
		}
	}
	return nil
}

// Delete removes a user by id. Deleting an unknown id returns
// ErrUserNotFound.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	const q = `DELETE FROM users WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// translateDuplicate maps the MySQL duplicate-entry error onto
// ErrDuplicateEmail and passes every other error through.
func translateDuplicate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrDuplicateEmail
	}
	return err
}
