package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func request(h http.Handler, method, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "http://example.com/api/v1/holds", nil)
	req.RemoteAddr = remote
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	return rw
}

func TestRateLimiter_PerClient(t *testing.T) {
	h := NewRateLimiter(0.001, 2).Middleware()(okHandler)

	assert.Equal(t, http.StatusOK, request(h, http.MethodPost, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, request(h, http.MethodPost, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(h, http.MethodPost, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, request(h, http.MethodPost, "10.0.0.2:1234").Code)
}

func TestRedisRateLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewRedisRateLimiter(client, 1, time.Minute, "holds").Middleware(logger, false)(okHandler)

	assert.Equal(t, http.StatusOK, request(h, http.MethodPost, "10.0.0.1:1").Code)
	rw := request(h, http.MethodPost, "10.0.0.1:1")
	assert.Equal(t, http.StatusTooManyRequests, rw.Code)
	assert.Equal(t, "60", rw.Header().Get("Retry-After"))

	s.FastForward(2 * time.Minute)
	assert.Equal(t, http.StatusOK, request(h, http.MethodPost, "10.0.0.1:1").Code)
}

func TestRedisRateLimiter_FailOpen(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()
	s.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	open := NewRedisRateLimiter(client, 1, time.Minute, "").Middleware(logger, true)(okHandler)
	closed := NewRedisRateLimiter(client, 1, time.Minute, "").Middleware(logger, false)(okHandler)

	assert.Equal(t, http.StatusOK, request(open, http.MethodPost, "10.0.0.1:1").Code)
	assert.Equal(t, http.StatusServiceUnavailable, request(closed, http.MethodPost, "10.0.0.1:1").Code)
}

func TestOnMethods(t *testing.T) {
	limited := OnMethods(NewRateLimiter(0.001, 1).Middleware(), http.MethodPost)(okHandler)

	assert.Equal(t, http.StatusOK, request(limited, http.MethodPost, "10.0.0.9:1").Code)
	assert.Equal(t, http.StatusTooManyRequests, request(limited, http.MethodPost, "10.0.0.9:1").Code)
	assert.Equal(t, http.StatusOK, request(limited, http.MethodGet, "10.0.0.9:1").Code)
}

func TestWithRequestID(t *testing.T) {
	var seen string
	h := WithRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)
	assert.Equal(t, "abc", seen)
	assert.Equal(t, "abc", rw.Header().Get(RequestIDHeader))

	rw = httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 32)
}

func TestWithCORS_Preflight(t *testing.T) {
	h := WithCORS(CORSPolicy{AllowedOrigins: []string{"http://shop.test"}})(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/holds", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, req)

	assert.Equal(t, http.StatusNoContent, rw.Code)
	assert.Equal(t, "http://shop.test", rw.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rw.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	assert.Equal(t, "Content-Type, X-Request-Id", rw.Header().Get("Access-Control-Allow-Headers"))
}

func TestWithRecover(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := WithRecover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rw := httptest.NewRecorder()
	h.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rw.Code)
}
