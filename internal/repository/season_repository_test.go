package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seasonColumns = []string{
	"id", "name", "start_date", "end_date", "capacity", "price",
	"trainer", "description", "available_slots", "created_at", "updated_at",
}

func seasonRow(id uint64, capacity, available uint32, price float64) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(seasonColumns).
		AddRow(id, "Summer Strength", now, now.AddDate(0, 3, 0), capacity, price,
			"A. Kumar", "12-week strength block", available, now, now)
}

func newSeasonRepo(t *testing.T) (*SeasonRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSeasonRepo(db), mock
}

func TestSeasonRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT `+seasonCols+` FROM seasons WHERE id = ?`)).
		WithArgs(uint64(42)).
		WillReturnRows(sqlmock.NewRows(seasonColumns))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepoAdjustSlots(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seasons SET available_slots = available_slots + ?`)).
		WithArgs(-1, uint64(1), -1, -1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + seasonCols + ` FROM seasons WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(seasonRow(1, 10, 9, 500))

	season, err := repo.AdjustSlots(context.Background(), 1, -1)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), season.AvailableSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepoAdjustSlotsOutOfBounds(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	// Zero rows affected with the season present means the delta violated
	// the bounds; the stored value must stay untouched.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seasons SET available_slots = available_slots + ?`)).
		WithArgs(-1, uint64(1), -1, -1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + seasonCols + ` FROM seasons WHERE id = ?`)).
		WithArgs(uint64(1)).
		WillReturnRows(seasonRow(1, 10, 0, 500))

	_, err := repo.AdjustSlots(context.Background(), 1, -1)
	assert.ErrorIs(t, err, ErrSlotBounds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepoAdjustSlotsSeasonMissing(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seasons SET available_slots = available_slots + ?`)).
		WithArgs(2, uint64(99), 2, 2).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + seasonCols + ` FROM seasons WHERE id = ?`)).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(seasonColumns))

	_, err := repo.AdjustSlots(context.Background(), 99, 2)
	assert.ErrorIs(t, err, ErrSeasonNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepoDecrementSlotTx(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seasons SET available_slots = available_slots - 1 WHERE id = ? AND available_slots > 0`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	claimed, err := repo.DecrementSlotTx(context.Background(), tx, 1)
	require.NoError(t, err)
	assert.True(t, claimed)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepoDecrementSlotTxExhausted(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seasons SET available_slots = available_slots - 1 WHERE id = ? AND available_slots > 0`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	claimed, err := repo.DecrementSlotTx(context.Background(), tx, 1)
	require.NoError(t, err)
	assert.False(t, claimed)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonRepoIncrementSlotTxAtCapacity(t *testing.T) {
	repo, mock := newSeasonRepo(t)

	// The guard refuses to push available_slots past capacity.
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE seasons SET available_slots = available_slots + 1 WHERE id = ? AND available_slots < capacity`)).
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	released, err := repo.IncrementSlotTx(context.Background(), tx, 1)
	require.NoError(t, err)
	assert.False(t, released)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
