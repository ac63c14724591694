package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clinic-cms/config"
	"clinic-cms/internal/domain/entity"
	"clinic-cms/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestRateLimiter_Limit(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitConfig{RPS: 0.001, Burst: 2})
	defer limiter.Stop()

	h := limiter.Limit(okHandler)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		codes = append(codes, w.Code)
		if w.Code == http.StatusTooManyRequests {
			assert.Equal(t, "60", w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	// Another client has its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = "203.0.113.8:5000"
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiter_CleanupDropsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(config.RateLimitConfig{RPS: 1, Burst: 1})
	defer limiter.Stop()

	limiter.Allow("203.0.113.7")
	limiter.Allow("203.0.113.8")

	assert.Equal(t, 0, limiter.cleanup(time.Now()))
	assert.Equal(t, 2, limiter.cleanup(time.Now().Add(limiterIdleThreshold+time.Minute)))
	assert.Empty(t, limiter.visitors)
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:4321"
	req.Header.Set("X-Forwarded-For", "198.51.100.4, 10.0.0.1")

	assert.Equal(t, "10.0.0.2", ClientIP(req, false))
	assert.Equal(t, "198.51.100.4", ClientIP(req, true))

	req.Header.Del("X-Forwarded-For")
	req.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", ClientIP(req, true))
}

func TestSafeNext(t *testing.T) {
	assert.True(t, SafeNext("/admin"))
	assert.True(t, SafeNext("/admin/appointments?status=new"))
	assert.False(t, SafeNext(""))
	assert.False(t, SafeNext("/blog"))
	assert.False(t, SafeNext("//evil.test/admin"))
	assert.False(t, SafeNext("https://evil.test/admin"))
	assert.False(t, SafeNext("/admin\\..\\evil"))

	assert.Equal(t, "/admin/login", LoginRedirectURL("/blog"))
	assert.Equal(t, "/admin/login?next=%2Fadmin%2Fappointments", LoginRedirectURL("/admin/appointments"))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name   string
		guard  func(http.Handler) http.Handler
		roleID int
		claims bool
		want   int
	}{
		{"admin on admin route", RequireAdmin, entity.RoleIDAdmin, true, http.StatusNoContent},
		{"editor on admin route", RequireAdmin, entity.RoleIDEditor, true, http.StatusForbidden},
		{"editor on editor route", RequireEditor, entity.RoleIDEditor, true, http.StatusNoContent},
		{"admin on editor route", RequireEditor, entity.RoleIDAdmin, true, http.StatusNoContent},
		{"unknown role", RequireEditor, 99, true, http.StatusForbidden},
		{"no claims", RequireEditor, 0, false, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.claims {
				req = req.WithContext(WithClaims(req.Context(), &jwt.Claims{UserID: uuid.New(), RoleID: tt.roleID}))
			}
			w := httptest.NewRecorder()
			tt.guard(okHandler).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	h := NewCORSMiddleware("https://clinic.test").Handle(okHandler)

	req := httptest.NewRequest(http.MethodOptions, "/api/appointment-requests", nil)
	req.Header.Set("Origin", "https://clinic.test")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://clinic.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "https://evil.test")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
