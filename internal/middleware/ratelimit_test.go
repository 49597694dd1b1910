package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/recommend", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouteLimiterRejectsOverQuota(t *testing.T) {
	h := PerHour(3).Middleware(okHandler())

	for i := 0; i < 3; i++ {
		rec := doRequest(h, "10.0.0.1:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d within quota", i+1)
	}

	rec := doRequest(h, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.JSONEq(t, `{"error":"Rate limit exceeded. Please try again later."}`, rec.Body.String())
}

func TestRouteLimiterIsolatesClients(t *testing.T) {
	h := PerMinute(1).Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(h, "10.0.0.1:9999").Code, "same IP, new port")
	assert.Equal(t, http.StatusOK, doRequest(h, "10.0.0.2:1234").Code, "different client unaffected")
}

func TestRouteLimiterSetsLimitHeader(t *testing.T) {
	h := PerHour(5).Middleware(okHandler())
	rec := doRequest(h, "10.0.0.3:1")
	assert.Equal(t, "5", rec.Header().Get("X-RateLimit-Limit"))
}
