package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haisi/eaf-movierental/internal/config"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func serve(t *testing.T, mw echo.MiddlewareFunc, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	e.Any("/v1/movies/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, "movie")
	}, mw)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewRedisCache_DisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil, discard())
	rec := serve(t, mw, http.MethodGet, "/v1/movies/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "movie", rec.Body.String())
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestNewTokenBucket_DisabledPassesThrough(t *testing.T) {
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true}, nil, discard())
	rec := serve(t, mw, http.MethodPost, "/v1/movies/1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
}

func TestCacheKey_DistinguishesPathAndQuery(t *testing.T) {
	e := echo.New()
	key := func(target string) string {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), httptest.NewRecorder())
		return cacheKey(config.CacheConfig{Prefix: "p"}, c)
	}
	assert.NotEqual(t, key("/v1/movies/1"), key("/v1/movies/2"))
	assert.NotEqual(t, key("/v1/movies?title=a"), key("/v1/movies?title=b"))
	assert.Equal(t, key("/v1/movies/1"), key("/v1/movies/1"))
	assert.Regexp(t, `^p:[0-9a-f]{40}$`, key("/v1/movies"))
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"id":1}`))
	require.NoError(t, err)

	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"id":1}`, string(body))

	_, _, _, ok = decodePayload(bs[:5])
	assert.False(t, ok)
}

func TestCaptureWriter_TruncatesAtLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("def"))
	assert.Equal(t, "abcd", cw.buf.String())
	assert.EqualValues(t, 6, cw.size)
	assert.Equal(t, "abcdef", rec.Body.String())
}

func TestRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/rentals", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/rentals")

	assert.Equal(t, "rl:ip:10.0.0.7", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "ip"}, c))
	assert.Equal(t, "rl:route:POST /v1/rentals", rateKey(config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}, c))
	assert.Equal(t, "rl:ip:10.0.0.7:route:POST /v1/rentals", rateKey(config.RateLimitConfig{Prefix: "rl"}, c))
}
