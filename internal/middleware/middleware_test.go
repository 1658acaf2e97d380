package middleware

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub/internal/metrics"
	"vendorhub/internal/model"
	"vendorhub/internal/repository/memory"
	"vendorhub/internal/service"
	"vendorhub/internal/util"
)

const testSecret = "test-secret"

func token(t *testing.T, sub, email string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, util.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthMiddleware(t *testing.T) {
	var gotUser, gotEmail string
	h := AuthMiddleware(testSecret, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotEmail, _ = UserFrom(r.Context())
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + token(t, "user-1", "u1@acme.test"), http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
	assert.Equal(t, "user-1", gotUser)
	assert.Equal(t, "u1@acme.test", gotEmail)
}

func tenantChain(t *testing.T) (http.Handler, *service.Actor) {
	t.Helper()
	store := memory.New()
	orgID, err := memory.Seed(context.Background(), store, "owner-1", "owner@acme.test")
	require.NoError(t, err)
	store.AddMember(orgID, model.Profile{ID: "viewer-1", Email: "viewer@acme.test", Role: model.RoleViewer})

	log := zerolog.Nop()
	activity := service.NewActivityService(store, nil, "", log)
	subs := service.NewSubscriptionService(store, store, store, activity, log)
	orgs := service.NewOrganizationService(store, subs, store, activity, log)

	seen := &service.Actor{}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen, _ = service.ActorFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	chain := AuthMiddleware(testSecret, log)(TenantMiddleware(orgs, log)(inner))
	return chain, seen
}

func TestTenantMiddleware(t *testing.T) {
	chain, seen := tenantChain(t)

	req := httptest.NewRequest(http.MethodGet, "/vendors", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "owner-1", "owner@acme.test"))
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, model.RoleOwner, seen.Role)
	assert.NotEmpty(t, seen.OrganizationID)

	req = httptest.NewRequest(http.MethodGet, "/vendors", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "stranger", "stranger@else.test"))
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "no organization")
}

func TestRequireWrite(t *testing.T) {
	h := RequireWrite(okHandler())
	for role, want := range map[model.Role]int{
		model.RoleOwner:  http.StatusNoContent,
		model.RoleMember: http.StatusNoContent,
		model.RoleViewer: http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPost, "/vendors", nil)
		req = req.WithContext(service.WithActor(req.Context(), service.Actor{UserID: "u", Role: role}))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, role)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/vendors", nil))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequestIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)
	var seen string
	h := RequestIDMiddleware(LoggerMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
		http.Error(w, "boom", http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz?x=1", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), seen)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
}

func TestMetricsMiddlewareLabelsByRoute(t *testing.T) {
	inner := http.NewServeMux()
	inner.Handle("GET /vendors/{vendorId}", okHandler())
	outer := http.NewServeMux()
	outer.Handle("/v1/", http.StripPrefix("/v1", RoutePattern("/v1", inner)))
	outer.Handle("GET /healthz", okHandler())
	h := MetricsMiddleware(RoutePattern("", outer))

	vendor := metrics.RequestCounter.WithLabelValues(http.MethodGet, "/v1/vendors/{vendorId}", "204")
	health := metrics.RequestCounter.WithLabelValues(http.MethodGet, "/healthz", "204")
	beforeVendor, beforeHealth := testutil.ToFloat64(vendor), testutil.ToFloat64(health)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/vendors/6f1c1a8e-9f1b-4d43-9a55-0a3c0cfbd6a1", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/vendors/acme", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(vendor)-beforeVendor)
	assert.Equal(t, 1.0, testutil.ToFloat64(health)-beforeHealth)
}

func TestMetricsMiddlewareBoundsJunkPaths(t *testing.T) {
	inner := http.NewServeMux()
	inner.Handle("GET /vendors", okHandler())
	outer := http.NewServeMux()
	outer.Handle("/v1/", http.StripPrefix("/v1", RoutePattern("/v1", inner)))
	h := MetricsMiddleware(RoutePattern("", outer))

	// Prime both label sets so only new series would change the count.
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/junk-prime", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/junk-prime", nil))
	req := httptest.NewRequest(http.MethodGet, "/junk-prime", nil)
	req.Method = "BREW"
	h.ServeHTTP(httptest.NewRecorder(), req)
	before := testutil.CollectAndCount(metrics.RequestCounter)

	for i := 0; i < 200; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/v1/junk-%d", i), nil))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, fmt.Sprintf("/junk-%d", i), nil))
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/junk-%d", i), nil)
		req.Method = fmt.Sprintf("M%d", i)
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, before, testutil.CollectAndCount(metrics.RequestCounter))
	unmatched := metrics.RequestCounter.WithLabelValues(http.MethodGet, "unmatched", "404")
	assert.GreaterOrEqual(t, testutil.ToFloat64(unmatched), 201.0)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware(okHandler())

	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/documents", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1234"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1235"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:1236"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2:1234"))

	now = now.Add(time.Second)
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1:1237"))

	now = now.Add(time.Hour)
	rl.sweep(now)
	assert.Empty(t, rl.visitors)
}
