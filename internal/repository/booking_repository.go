package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shareit/internal/model"
)

// BookingRepo provides persistence for bookings. Status transitions
// are expressed as single conditional UPDATEs: the guard on the
// current status sits in the WHERE clause, so two concurrent
// transitions cannot both succeed and no read-then-write window
// exists. All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, start_date, end_date, item_id, booker_id, status`

func scanBooking(row interface{ Scan(...any) error }) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserts a new booking and populates the generated ID.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	const q = `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, b.Start.UTC(), b.End.UTC(), b.ItemID, b.BookerID, b.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// GetByID fetches a single booking or returns ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	return b, err
}

// SetStatusIfPending moves a booking to the given status while it
// still awaits the owner's decision, that is while it is WAITING or
// REJECTED. APPROVED and CANCELED are terminal for this transition.
// Zero affected rows means the guard failed and the caller gets
// ErrStaleStatus; the booking's existence must have been checked
// beforehand.
func (r *BookingRepo) SetStatusIfPending(ctx context.Context, id int64, status model.BookingStatus) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status IN (?, ?)`
	return r.conditionalUpdate(ctx, q, status, id, model.StatusWaiting, model.StatusRejected)
}

// CancelIfWaiting moves a WAITING booking to CANCELED. Any other
// current status fails the guard and yields ErrStaleStatus.
func (r *BookingRepo) CancelIfWaiting(ctx context.Context, id int64) error {
	const q = `UPDATE bookings SET status = ? WHERE id = ? AND status = ?`
	return r.conditionalUpdate(ctx, q, model.StatusCanceled, id, model.StatusWaiting)
}

func (r *BookingRepo) conditionalUpdate(ctx context.Context, q string, args ...any) error {
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStaleStatus
	}
	return nil
}

// stateClause renders the WHERE fragment for a state filter. The
// switch is exhaustive over the known filters; anything else is a
// programming error upstream and is reported, never defaulted.
func stateClause(state model.BookingState, now time.Time, args *[]any) (string, error) {
	switch state {
	case model.StateAll:
		return "", nil
	case model.StatePast:
		*args = append(*args, now.UTC())
		return " AND end_date < ?", nil
	case model.StateCurrent:
		*args = append(*args, now.UTC(), now.UTC())
		return " AND start_date < ? AND end_date > ?", nil
	case model.StateFuture:
		*args = append(*args, now.UTC())
		return " AND start_date > ?", nil
	case model.StateWaiting:
		*args = append(*args, model.StatusWaiting)
		return " AND status = ?", nil
	case model.StateRejected:
		*args = append(*args, model.StatusRejected)
		return " AND status = ?", nil
	default:
		return "", fmt.Errorf("unknown state: %s", state)
	}
}

// ListByBooker returns a page of the user's own bookings narrowed by
// the state filter, sorted per the given policy.
func (r *BookingRepo) ListByBooker(ctx context.Context, bookerID int64, state model.BookingState, now time.Time, ord Ordering, offset, limit int) ([]model.Booking, error) {
	args := []any{bookerID}
	cond, err := stateClause(state, now, &args)
	if err != nil {
		return nil, err
	}
	q := `SELECT ` + bookingColumns + ` FROM bookings WHERE booker_id = ?` + cond +
		ord.clause() + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return r.queryBookings(ctx, q, args...)
}

// ListByItemOwner returns a page of bookings placed on any item the
// user owns, narrowed by the state filter.
func (r *BookingRepo) ListByItemOwner(ctx context.Context, ownerID int64, state model.BookingState, now time.Time, ord Ordering, offset, limit int) ([]model.Booking, error) {
	args := []any{ownerID}
	cond, err := stateClause(state, now, &args)
	if err != nil {
		return nil, err
	}
	q := `SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status
		FROM bookings b JOIN items i ON i.id = b.item_id WHERE i.owner_id = ?` + ownerCond(cond) +
		bookingOrder(ord) + ` LIMIT ? OFFSET ?`
	args = append(args, limit, offset)
	return r.queryBookings(ctx, q, args...)
}

// ownerCond qualifies the state condition columns for the joined
// query variant.
func ownerCond(cond string) string {
	switch cond {
	case " AND end_date < ?":
		return " AND b.end_date < ?"
	case " AND start_date < ? AND end_date > ?":
		return " AND b.start_date < ? AND b.end_date > ?"
	case " AND start_date > ?":
		return " AND b.start_date > ?"
	case " AND status = ?":
		return " AND b.status = ?"
	default:
		return cond
	}
}

func bookingOrder(ord Ordering) string {
	if ord == OrderStartDesc {
		return " ORDER BY b.start_date DESC"
	}
	return " ORDER BY b.id ASC"
}

// ListByItem returns every booking of a single item, newest start
// first. The item service derives last/next booking references from
// this list.
func (r *BookingRepo) ListByItem(ctx context.Context, itemID int64) ([]model.Booking, error) {
	const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE item_id = ? ORDER BY start_date DESC`
	return r.queryBookings(ctx, q, itemID)
}

// HasFinishedApproved reports whether the user has at least one
// APPROVED booking of the item that ended before the given time.
// This is the gate for posting comments.
func (r *BookingRepo) HasFinishedApproved(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	const q = `SELECT 1 FROM bookings WHERE item_id = ? AND booker_id = ? AND status = ? AND end_date < ? LIMIT 1`
	var one int
	err := r.db.QueryRowContext(ctx, q, itemID, bookerID, model.StatusApproved, now.UTC()).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *BookingRepo) queryBookings(ctx context.Context, q string, args ...any) ([]model.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]model.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
