package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkumar/gym-booking/internal/config"
)

// A nil cache must behave as a transparent pass-through so the server can
// run without Redis.
func TestNilSeasonCachePassesThrough(t *testing.T) {
	var sc *SeasonCache

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/seasons", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := sc.Middleware()(func(c echo.Context) error {
		called = true
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	require.NoError(t, handler(c))
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Bust on a nil cache is a no-op, not a panic.
	sc.Bust(context.Background())
}

func TestNewSeasonCacheDisabled(t *testing.T) {
	assert.Nil(t, NewSeasonCache(config.CacheConfig{Enabled: false}, nil))
	assert.Nil(t, NewSeasonCache(config.CacheConfig{Enabled: true}, nil))
}
