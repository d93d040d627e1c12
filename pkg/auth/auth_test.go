package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubAuthenticator returns a fixed result and records invocations.
type stubAuthenticator struct {
	result Result
	calls  int
}

func (s *stubAuthenticator) Authenticate(_ context.Context, _ *http.Request) Result {
	s.calls++
	return s.result
}

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodPost, "/v1/translations", nil)
}

func TestChainFirstAllowWins(t *testing.T) {
	first := &stubAuthenticator{result: Result{
		Decision: Allow,
		Identity: &Identity{Subject: "user-1"},
	}}
	second := &stubAuthenticator{result: Result{Decision: Allow}}

	chain := &Chain{Authenticators: []Authenticator{first, second}}
	result := chain.Authenticate(context.Background(), newRequest(t))

	if result.Decision != Allow {
		t.Fatalf("Decision = %v, want Allow", result.Decision)
	}
	if result.Identity.Subject != "user-1" {
		t.Errorf("Subject = %q, want user-1", result.Identity.Subject)
	}
	if second.calls != 0 {
		t.Errorf("second authenticator called %d times, want 0", second.calls)
	}
}

func TestChainDenyStops(t *testing.T) {
	denyErr := errors.New("bad credentials")
	first := &stubAuthenticator{result: Result{Decision: Deny, Err: denyErr}}
	second := &stubAuthenticator{result: Result{
		Decision: Allow,
		Identity: &Identity{Subject: "user-2"},
	}}

	chain := &Chain{Authenticators: []Authenticator{first, second}}
	result := chain.Authenticate(context.Background(), newRequest(t))

	if result.Decision != Deny {
		t.Fatalf("Decision = %v, want Deny", result.Decision)
	}
	if !errors.Is(result.Err, denyErr) {
		t.Errorf("Err = %v, want %v", result.Err, denyErr)
	}
	if second.calls != 0 {
		t.Errorf("second authenticator called %d times, want 0", second.calls)
	}
}

func TestChainAbstainContinues(t *testing.T) {
	first := &stubAuthenticator{result: Result{Decision: Abstain}}
	second := &stubAuthenticator{result: Result{
		Decision: Allow,
		Identity: &Identity{Subject: "user-3"},
	}}

	chain := &Chain{Authenticators: []Authenticator{first, second}}
	result := chain.Authenticate(context.Background(), newRequest(t))

	if result.Decision != Allow {
		t.Fatalf("Decision = %v, want Allow", result.Decision)
	}
	if result.Identity.Subject != "user-3" {
		t.Errorf("Subject = %q, want user-3", result.Identity.Subject)
	}
	if first.calls != 1 {
		t.Errorf("first authenticator called %d times, want 1", first.calls)
	}
}

func TestChainAllAbstainDefaultAllow(t *testing.T) {
	chain := &Chain{
		Authenticators:  []Authenticator{&stubAuthenticator{result: Result{Decision: Abstain}}},
		DefaultDecision: Allow,
	}

	result := chain.Authenticate(context.Background(), newRequest(t))

	if result.Decision != Allow {
		t.Fatalf("Decision = %v, want Allow", result.Decision)
	}
	if result.Identity == nil || result.Identity.Subject != "anonymous" {
		t.Errorf("Identity = %+v, want anonymous subject", result.Identity)
	}
}

func TestChainAllAbstainDefaultDeny(t *testing.T) {
	chain := &Chain{
		Authenticators:  []Authenticator{&stubAuthenticator{result: Result{Decision: Abstain}}},
		DefaultDecision: Deny,
	}

	result := chain.Authenticate(context.Background(), newRequest(t))

	if result.Decision != Deny {
		t.Fatalf("Decision = %v, want Deny", result.Decision)
	}
	if !errors.Is(result.Err, ErrUnauthenticated) {
		t.Errorf("Err = %v, want ErrUnauthenticated", result.Err)
	}
}

func TestChainEmptyUsesDefault(t *testing.T) {
	chain := &Chain{DefaultDecision: Deny}

	result := chain.Authenticate(context.Background(), newRequest(t))
	if result.Decision != Deny {
		t.Fatalf("Decision = %v, want Deny", result.Decision)
	}
}

func TestIdentityTenantID(t *testing.T) {
	var nilID *Identity
	if got := nilID.TenantID(); got != "" {
		t.Errorf("nil identity TenantID = %q, want empty", got)
	}

	id := &Identity{Subject: "u"}
	if got := id.TenantID(); got != "" {
		t.Errorf("no-metadata TenantID = %q, want empty", got)
	}

	id.Metadata = map[string]string{"tenant_id": "acme"}
	if got := id.TenantID(); got != "acme" {
		t.Errorf("TenantID = %q, want acme", got)
	}
}

func TestIdentityContextRoundTrip(t *testing.T) {
	id := &Identity{Subject: "user-9", ServiceTier: "premium"}
	ctx := SetIdentity(context.Background(), id)

	got := IdentityFromContext(ctx)
	if got == nil || got.Subject != "user-9" {
		t.Fatalf("IdentityFromContext = %+v, want user-9", got)
	}

	if got := IdentityFromContext(context.Background()); got != nil {
		t.Errorf("empty context identity = %+v, want nil", got)
	}
}
