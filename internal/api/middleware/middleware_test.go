package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeUsers struct {
	users map[int64]*userservice.User
	err   error
}

func (f *fakeUsers) GetUser(_ context.Context, userID int64) (*userservice.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[userID]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
})

func TestAuth(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "missing", header: "", want: http.StatusUnauthorized},
		{name: "not a number", header: "abc", want: http.StatusUnauthorized},
		{name: "zero", header: "0", want: http.StatusUnauthorized},
		{name: "valid", header: "15", want: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			h := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(UserIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			if tt.want == http.StatusNoContent {
				assert.Equal(t, int64(15), gotID)
			}
		})
	}
}

func TestActorResolver(t *testing.T) {
	users := &fakeUsers{users: map[int64]*userservice.User{
		1: {ID: 1, ClientID: ptr.Ptr(int64(10)), Role: domain.RoleClient, IsActive: true},
		2: {ID: 2, Role: domain.RoleAdmin, IsActive: true},
		3: {ID: 3, ClientID: ptr.Ptr(int64(30)), IsActive: false},
	}}
	resolver := NewActorResolver(users, logger.NewNop())

	serve := func(userID int64) (*httptest.ResponseRecorder, domain.Actor) {
		var actor domain.Actor
		h := resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, _ = GetActor(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec, actor
	}

	rec, actor := serve(1)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, actor.ClientID)
	assert.Equal(t, int64(10), *actor.ClientID)

	rec, actor = serve(2)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, actor.IsAdmin())
	assert.False(t, actor.HasClient())

	rec, _ = serve(3)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = serve(99)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	users.err = errors.New("connection refused")
	rec, _ = serve(1)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequireRole(t *testing.T) {
	h := RequireRole(domain.RoleAdmin)(okHandler)

	req := httptest.NewRequest(http.MethodPatch, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithActor(req.Context(), domain.Actor{UserID: 1, Role: domain.RoleClient})))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(WithActor(req.Context(), domain.Actor{UserID: 2, Role: domain.RoleAdmin})))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), seen)
}

type observation struct {
	method, route string
	status        int
}

type fakeRecorder struct {
	observed []observation
}

func (f *fakeRecorder) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f.observed = append(f.observed, observation{method: method, route: route, status: status})
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	recorder := &fakeRecorder{}
	r := mux.NewRouter()
	r.Use(MetricsMiddleware(recorder))
	r.HandleFunc("/appointments/{appointmentId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/appointments/42", nil))

	require.Len(t, recorder.observed, 1)
	assert.Equal(t, observation{method: http.MethodGet, route: "/appointments/{appointmentId}", status: http.StatusNotFound}, recorder.observed[0])
}

func TestRateLimiter(t *testing.T) {
	limiter := NewRateLimiter(1, 2, logger.NewNop())
	h := limiter.Middleware(okHandler)

	call := func(userID int64) int {
		req := httptest.NewRequest(http.MethodPost, "/appointments", nil)
		req = req.WithContext(WithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, call(1))
	assert.Equal(t, http.StatusNoContent, call(1))
	assert.Equal(t, http.StatusTooManyRequests, call(1))

	// у другого пользователя свой лимит
	assert.Equal(t, http.StatusNoContent, call(2))
}

func TestRateLimiter_EvictsIdleKeys(t *testing.T) {
	limiter := NewRateLimiter(1, 2, logger.NewNop())
	current := time.Date(2025, 10, 15, 9, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return current }

	limiter.limiterFor("user:1")
	limiter.limiterFor("user:2")
	require.Len(t, limiter.limiters, 2)

	// user:2 активен, user:1 простаивает дольше idleTTL
	current = current.Add(limiter.idleTTL / 2)
	limiter.limiterFor("user:2")

	current = current.Add(limiter.idleTTL/2 + time.Second)
	limiter.limiterFor("user:3")

	assert.Len(t, limiter.limiters, 2)
	assert.NotContains(t, limiter.limiters, "user:1")
	assert.Contains(t, limiter.limiters, "user:2")
	assert.Contains(t, limiter.limiters, "user:3")
}
