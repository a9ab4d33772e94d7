package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkumar/gym-booking/internal/model"
	"github.com/arkumar/gym-booking/internal/repository"
)

func newSeasonHandler(t *testing.T) (*SeasonHandler, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSeasonHandler(repository.NewSeasonRepo(db), nil), mock
}

func TestSeasonList(t *testing.T) {
	h, mock := newSeasonHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM seasons ORDER BY start_date`)).
		WillReturnRows(seasonRows(2, 10, 7, 500))

	e := echo.New()
	req, rec := jsonRequest(http.MethodGet, "/api/seasons", "")
	require.NoError(t, h.List(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []model.Season
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Winter Cardio", got[0].Name)
	assert.Equal(t, uint32(7), got[0].AvailableSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonGetNotFound(t *testing.T) {
	h, mock := newSeasonHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM seasons WHERE id = ?`)).
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	req, rec := jsonRequest(http.MethodGet, "/api/seasons/42", "")
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("42")
	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Season not found", message(t, rec))
}

func TestSeasonCreate(t *testing.T) {
	h, mock := newSeasonHandler(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO seasons`)).
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM seasons WHERE id = ?`)).
		WithArgs(uint64(5)).
		WillReturnRows(seasonRows(5, 20, 20, 750))

	e := echo.New()
	body := `{"name":"Winter Cardio","trainer":"M. Iyer","capacity":20,"price":750,
		"startDate":"2026-01-01T00:00:00Z","endDate":"2026-04-01T00:00:00Z"}`
	req, rec := jsonRequest(http.MethodPost, "/api/seasons", body)
	require.NoError(t, h.Create(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var got model.Season
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, uint64(5), got.ID)
	// A fresh season starts with every slot available.
	assert.Equal(t, got.Capacity, got.AvailableSlots)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeasonCreateRejectsBadInput(t *testing.T) {
	h, _ := newSeasonHandler(t)
	e := echo.New()

	cases := []struct {
		name string
		body string
		msg  string
	}{
		{"missing trainer", `{"name":"X","trainer":" ","startDate":"2026-01-01T00:00:00Z","endDate":"2026-02-01T00:00:00Z"}`, "Name and trainer are required"},
		{"negative price", `{"name":"X","trainer":"Y","price":-1,"startDate":"2026-01-01T00:00:00Z","endDate":"2026-02-01T00:00:00Z"}`, "Price cannot be negative"},
		{"dates reversed", `{"name":"X","trainer":"Y","startDate":"2026-02-01T00:00:00Z","endDate":"2026-01-01T00:00:00Z"}`, "End date must be after start date"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, rec := jsonRequest(http.MethodPost, "/api/seasons", tc.body)
			require.NoError(t, h.Create(e.NewContext(req, rec)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.msg, message(t, rec))
		})
	}
}
