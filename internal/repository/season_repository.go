// Package repository contains data access logic for the gym booking domain.
// This file defines persistence for seasons.  The slot counter is only ever
// mutated through single conditional UPDATE statements so that the invariant
// 0 <= available_slots <= capacity holds no matter how many requests race
// for the same row.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction

	"github.com/arkumar/gym-booking/internal/model"
)

// seasonCols is the column list shared by every season SELECT.
const seasonCols = `id, name, start_date, end_date, capacity, price, trainer, description, available_slots, created_at, updated_at`

// SeasonRepo manages persistence for seasons.
type SeasonRepo struct {
	db *sql.DB
}

// NewSeasonRepo constructs a SeasonRepo with the given DB handle.
func NewSeasonRepo(db *sql.DB) *SeasonRepo {
	return &SeasonRepo{db: db}
}

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *SeasonRepo) DB() *sql.DB {
	return r.db
}

// scanSeason reads one season row from any row scanner.
func scanSeason(row interface{ Scan(...any) error }, s *model.Season) error {
	return row.Scan(
		&s.ID,
		&s.Name,
		&s.StartDate,
		&s.EndDate,
		&s.Capacity,
		&s.Price,
		&s.Trainer,
		&s.Description,
		&s.AvailableSlots,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Create inserts a new season.  available_slots always starts equal to
// capacity; callers cannot seed a partially booked season.  On success the
// generated ID and DB-default timestamps are populated on the given Season.
func (r *SeasonRepo) Create(ctx context.Context, s *model.Season) error {
	const q = `INSERT INTO seasons (name, start_date, end_date, capacity, price, trainer, description, available_slots)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		s.Name, s.StartDate.UTC(), s.EndDate.UTC(), s.Capacity, s.Price, s.Trainer, s.Description, s.Capacity)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	// Query the inserted row to obtain default fields such as timestamps.
	return scanSeason(r.db.QueryRowContext(ctx, `SELECT `+seasonCols+` FROM seasons WHERE id = ?`, s.ID), s)
}

// GetByID returns a single season or ErrSeasonNotFound.
func (r *SeasonRepo) GetByID(ctx context.Context, id uint64) (*model.Season, error) {
	var s model.Season
	err := scanSeason(r.db.QueryRowContext(ctx, `SELECT `+seasonCols+` FROM seasons WHERE id = ?`, id), &s)
	if err == sql.ErrNoRows {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByIDTx is GetByID inside an existing transaction.  It locks the row
// so slot checks and the subsequent booking insert see a consistent price.
func (r *SeasonRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Season, error) {
	var s model.Season
	err := scanSeason(tx.QueryRowContext(ctx, `SELECT `+seasonCols+` FROM seasons WHERE id = ? FOR UPDATE`, id), &s)
	if err == sql.ErrNoRows {
		return nil, ErrSeasonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// List returns all seasons ordered by start date.
func (r *SeasonRepo) List(ctx context.Context) ([]model.Season, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+seasonCols+` FROM seasons ORDER BY start_date`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seasons := make([]model.Season, 0)
	for rows.Next() {
		var s model.Season
		if err := scanSeason(rows, &s); err != nil {
			return nil, err
		}
		seasons = append(seasons, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seasons, nil
}

// AdjustSlots applies delta to a season's available_slots as one atomic
// conditional UPDATE.  The WHERE clause refuses any adjustment that would
// leave the counter below zero or above capacity, so a failed call leaves
// the stored value untouched.  Zero rows affected means either the season
// does not exist (ErrSeasonNotFound) or the delta is out of bounds
// (ErrSlotBounds); a follow-up SELECT distinguishes the two.  On success
// the updated season is returned.
func (r *SeasonRepo) AdjustSlots(ctx context.Context, id uint64, delta int) (*model.Season, error) {
	const q = `UPDATE seasons
	           SET available_slots = available_slots + ?
	           WHERE id = ?
	             AND CAST(available_slots AS SIGNED) + ? >= 0
	             AND CAST(available_slots AS SIGNED) + ? <= capacity`
	res, err := r.db.ExecContext(ctx, q, delta, id, delta, delta)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err // ErrSeasonNotFound or a DB failure
		}
		return nil, ErrSlotBounds
	}
	return r.GetByID(ctx, id)
}

// DecrementSlotTx claims one slot inside an existing transaction.  The
// decrement only happens while available_slots is still positive, which is
// what prevents two concurrent bookings from both taking the last slot.
// It returns false when no slot was available.
func (r *SeasonRepo) DecrementSlotTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	const q = `UPDATE seasons SET available_slots = available_slots - 1
	           WHERE id = ? AND available_slots > 0`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// IncrementSlotTx releases one slot inside an existing transaction.  The
// capacity guard keeps available_slots from ever exceeding capacity; a
// season already at capacity (or missing) reports false without failing,
// because cancellation treats the release as best-effort.
func (r *SeasonRepo) IncrementSlotTx(ctx context.Context, tx *sql.Tx, id uint64) (bool, error) {
	const q = `UPDATE seasons SET available_slots = available_slots + 1
	           WHERE id = ? AND available_slots < capacity`
	res, err := tx.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
