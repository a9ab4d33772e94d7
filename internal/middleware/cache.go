package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/arkumar/gym-booking/internal/config"
)

// SeasonCache caches season read responses in Redis.  Season listings are
// the hottest endpoint of the API and change only when a slot is claimed or
// released, so slot-changing writes call Bust to invalidate the whole
// prefix eagerly; the TTL is a backstop for missed invalidation.
//
// A nil *SeasonCache is valid and disables caching, which is how the
// service runs when Redis is unreachable.
type SeasonCache struct {
	cfg config.CacheConfig
	rdb *redis.Client
}

// NewSeasonCache returns a cache, or nil when caching is disabled or no
// Redis client is available.
func NewSeasonCache(cfg config.CacheConfig, rdb *redis.Client) *SeasonCache {
	if !cfg.Enabled || rdb == nil {
		return nil
	}
	return &SeasonCache{cfg: cfg, rdb: rdb}
}

// captureWriter buffers the response body while forwarding to the client so
// a successful response can be stored after the handler runs.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

func (sc *SeasonCache) key(c echo.Context) string {
	return sc.cfg.Prefix + ":" + c.Request().URL.Path
}

// Middleware caches GET responses for the routes it is applied to.  Only
// 200 responses are stored; everything else passes through untouched.
func (sc *SeasonCache) Middleware() echo.MiddlewareFunc {
	if sc == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}
			key := sc.key(c)
			ctx := c.Request().Context()
			if data, err := sc.rdb.Get(ctx, key).Bytes(); err == nil {
				return c.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
			}
			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK && cw.buf.Len() > 0 {
				ttl := sc.cfg.TTL
				if ttl <= 0 {
					ttl = 30 * time.Second
				}
				// Store outside the request path result; a failed SET only
				// costs a future cache miss.
				_ = sc.rdb.Set(ctx, key, cw.buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}

// Bust removes every cached season response.  Called after any write that
// changes a season or its slot count.
func (sc *SeasonCache) Bust(ctx context.Context) {
	if sc == nil {
		return
	}
	var cursor uint64
	for {
		keys, next, err := sc.rdb.Scan(ctx, cursor, sc.cfg.Prefix+":*", 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = sc.rdb.Del(ctx, keys...).Err()
		}
		if next == 0 {
			return
		}
		cursor = next
	}
}
