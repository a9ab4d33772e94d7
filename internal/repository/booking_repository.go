package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/arkumar/gym-booking/internal/model"
)

// bookingCols is the column list shared by every booking SELECT.
const bookingCols = `id, user_id, season_id, status, payment_status, amount, created_at, updated_at`

// BookingRepo provides CRUD operations for bookings.  Slot accounting is
// not done here: the booking service pairs these methods with the season
// repository's conditional updates inside one transaction.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB for transaction control.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// SeasonSummary is the slice of season data embedded in booking list
// responses so clients can render a booking without a second request.
type SeasonSummary struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Trainer   string    `json:"trainer"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Price     float64   `json:"price"`
}

// BookingDetail is a booking with its season populated via JOIN.
type BookingDetail struct {
	model.Booking
	Season SeasonSummary `json:"season"`
}

func scanBooking(row interface{ Scan(...any) error }, b *model.Booking) error {
	return row.Scan(
		&b.ID,
		&b.UserID,
		&b.SeasonID,
		&b.Status,
		&b.PaymentStatus,
		&b.Amount,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
}

// CreateTx inserts a new booking within the scope of an existing
// transaction.  It populates the generated ID and DB-default fields on the
// provided record.  The caller must commit or roll back the transaction;
// rolling back also undoes the slot decrement made alongside this insert.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings (user_id, season_id, status, payment_status, amount) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, b.UserID, b.SeasonID, b.Status, b.PaymentStatus, b.Amount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	// Query back the full row to populate timestamps and defaults.
	return scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, b.ID), b)
}

// GetByID returns a single booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := scanBooking(r.db.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id), &b)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByIDTx loads a booking inside an existing transaction with a row lock.
// Cancellation locks the booking first so two concurrent cancels cannot
// both release the same slot.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := scanBooking(tx.QueryRowContext(ctx, `SELECT `+bookingCols+` FROM bookings WHERE id = ? FOR UPDATE`, id), &b)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// listQuery joins bookings with their seasons.  The optional WHERE suffix is
// appended by List and ListByUser.
const listQuery = `SELECT b.id, b.user_id, b.season_id, b.status, b.payment_status, b.amount, b.created_at, b.updated_at,
                          s.id, s.name, s.trainer, s.start_date, s.end_date, s.price
                   FROM bookings b
                   JOIN seasons s ON s.id = b.season_id`

func (r *BookingRepo) list(ctx context.Context, suffix string, args ...any) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx, listQuery+suffix, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.SeasonID, &d.Status, &d.PaymentStatus, &d.Amount, &d.CreatedAt, &d.UpdatedAt,
			&d.Season.ID, &d.Season.Name, &d.Season.Trainer, &d.Season.StartDate, &d.Season.EndDate, &d.Season.Price,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// List returns all bookings with their seasons populated, newest first.
func (r *BookingRepo) List(ctx context.Context) ([]BookingDetail, error) {
	return r.list(ctx, ` ORDER BY b.created_at DESC`)
}

// ListByUser returns the bookings belonging to one user, newest first.
func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]BookingDetail, error) {
	return r.list(ctx, ` WHERE b.user_id = ? ORDER BY b.created_at DESC`, userID)
}

// UpdateStatusTx partially updates a booking's status fields inside an
// existing transaction.  Nil pointers leave the corresponding column
// unchanged (COALESCE), so a payment-status update never clobbers the
// booking status and vice versa.
func (r *BookingRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status, paymentStatus *string) error {
	const q = `UPDATE bookings
	           SET status = COALESCE(?, status), payment_status = COALESCE(?, payment_status)
	           WHERE id = ?`
	res, err := tx.ExecContext(ctx, q, status, paymentStatus, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// The row may exist with values already equal to the update; treat
		// only a truly missing row as not found.
		var exists uint64
		if err := tx.QueryRowContext(ctx, `SELECT id FROM bookings WHERE id = ?`, id).Scan(&exists); err == sql.ErrNoRows {
			return ErrBookingNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}
