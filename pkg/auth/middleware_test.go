package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/schliff-dev/schliff/pkg/storage"
)

func serveWithMiddleware(t *testing.T, mw func(http.Handler) http.Handler, path string, inner http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	handler := mw(inner)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestMiddlewareBypass(t *testing.T) {
	chain := &Chain{DefaultDecision: Deny}
	mw := Middleware(chain, nil, DefaultBypassEndpoints)

	called := false
	rec := serveWithMiddleware(t, mw, "/healthz", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if !called {
		t.Error("handler not called for bypassed endpoint")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestMiddlewareDenyReturns401(t *testing.T) {
	chain := &Chain{DefaultDecision: Deny}
	mw := Middleware(chain, nil, nil)

	rec := serveWithMiddleware(t, mw, "/v1/translations", func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}
	if !strings.Contains(rec.Body.String(), `"kind":"secret_key"`) {
		t.Errorf("body = %q, want secret_key kind", rec.Body.String())
	}
}

func TestMiddlewareAllowInjectsIdentity(t *testing.T) {
	authn := &stubAuthenticator{result: Result{
		Decision: Allow,
		Identity: &Identity{
			Subject:  "user-1",
			Metadata: map[string]string{"tenant_id": "acme"},
		},
	}}
	chain := &Chain{Authenticators: []Authenticator{authn}}
	mw := Middleware(chain, nil, nil)

	var gotIdentity *Identity
	var gotTenant string
	rec := serveWithMiddleware(t, mw, "/v1/translations", func(w http.ResponseWriter, r *http.Request) {
		gotIdentity = IdentityFromContext(r.Context())
		gotTenant = storage.GetTenant(r.Context())
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if gotIdentity == nil || gotIdentity.Subject != "user-1" {
		t.Errorf("identity = %+v, want user-1", gotIdentity)
	}
	if gotTenant != "acme" {
		t.Errorf("tenant = %q, want acme", gotTenant)
	}
}

func TestMiddlewareEmptySubjectRejected(t *testing.T) {
	authn := &stubAuthenticator{result: Result{
		Decision: Allow,
		Identity: &Identity{Subject: ""},
	}}
	chain := &Chain{Authenticators: []Authenticator{authn}}
	mw := Middleware(chain, nil, nil)

	rec := serveWithMiddleware(t, mw, "/v1/translations", func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"kind":"unknown"`) {
		t.Errorf("body = %q, want unknown kind", rec.Body.String())
	}
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(_ context.Context, _ *Identity) error {
	return ErrTooManyRequests
}

func TestMiddlewareRateLimited(t *testing.T) {
	authn := &stubAuthenticator{result: Result{
		Decision: Allow,
		Identity: &Identity{Subject: "user-1", ServiceTier: "free"},
	}}
	chain := &Chain{Authenticators: []Authenticator{authn}}
	mw := Middleware(chain, denyAllLimiter{}, nil)

	rec := serveWithMiddleware(t, mw, "/v1/translations", func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be called")
	})

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "rate limit exceeded") {
		t.Errorf("body = %q, want rate limit message", rec.Body.String())
	}
}

func TestInProcessLimiterEnforcesTier(t *testing.T) {
	limiter := NewInProcessLimiter(map[string]TierConfig{
		"free": {RequestsPerMinute: 2},
	}, 100)

	id := &Identity{Subject: "user-1", ServiceTier: "free"}
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := limiter.Allow(ctx, id); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}

	if err := limiter.Allow(ctx, id); err != ErrTooManyRequests {
		t.Errorf("third request err = %v, want ErrTooManyRequests", err)
	}
}

func TestInProcessLimiterIsolatesSubjects(t *testing.T) {
	limiter := NewInProcessLimiter(map[string]TierConfig{
		"free": {RequestsPerMinute: 1},
	}, 100)

	ctx := context.Background()
	a := &Identity{Subject: "a", ServiceTier: "free"}
	b := &Identity{Subject: "b", ServiceTier: "free"}

	if err := limiter.Allow(ctx, a); err != nil {
		t.Fatalf("first request for a rejected: %v", err)
	}
	if err := limiter.Allow(ctx, b); err != nil {
		t.Errorf("first request for b rejected: %v", err)
	}
}

func TestInProcessLimiterUnlimitedTier(t *testing.T) {
	limiter := NewInProcessLimiter(map[string]TierConfig{
		"internal": {RequestsPerMinute: 0},
	}, 10)

	ctx := context.Background()
	id := &Identity{Subject: "svc", ServiceTier: "internal"}

	for i := 0; i < 50; i++ {
		if err := limiter.Allow(ctx, id); err != nil {
			t.Fatalf("request %d rejected: %v", i+1, err)
		}
	}
}
