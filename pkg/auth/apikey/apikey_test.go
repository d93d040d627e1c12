package apikey

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/schliff-dev/schliff/pkg/auth"
)

func newAuthenticator(t *testing.T) *Authenticator {
	t.Helper()
	return New([]RawKeyEntry{
		{
			Key: "sk-valid-key",
			Identity: auth.Identity{
				Subject:     "service-a",
				ServiceTier: "premium",
				Metadata:    map[string]string{"tenant_id": "acme"},
			},
		},
		{
			Key:      "sk-other-key",
			Identity: auth.Identity{Subject: "service-b"},
		},
	})
}

func requestWithAuth(t *testing.T, header string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/v1/translations", nil)
	if header != "" {
		r.Header.Set("Authorization", header)
	}
	return r
}

func TestAuthenticateValidKey(t *testing.T) {
	a := newAuthenticator(t)

	result := a.Authenticate(context.Background(), requestWithAuth(t, "Bearer sk-valid-key"))

	if result.Decision != auth.Allow {
		t.Fatalf("Decision = %v, want Allow", result.Decision)
	}
	if result.Identity.Subject != "service-a" {
		t.Errorf("Subject = %q, want service-a", result.Identity.Subject)
	}
	if result.Identity.ServiceTier != "premium" {
		t.Errorf("ServiceTier = %q, want premium", result.Identity.ServiceTier)
	}
	if result.Identity.TenantID() != "acme" {
		t.Errorf("TenantID = %q, want acme", result.Identity.TenantID())
	}
}

func TestAuthenticateSecondKey(t *testing.T) {
	a := newAuthenticator(t)

	result := a.Authenticate(context.Background(), requestWithAuth(t, "Bearer sk-other-key"))

	if result.Decision != auth.Allow {
		t.Fatalf("Decision = %v, want Allow", result.Decision)
	}
	if result.Identity.Subject != "service-b" {
		t.Errorf("Subject = %q, want service-b", result.Identity.Subject)
	}
}

func TestAuthenticateUnknownKey(t *testing.T) {
	a := newAuthenticator(t)

	result := a.Authenticate(context.Background(), requestWithAuth(t, "Bearer sk-wrong"))

	if result.Decision != auth.Deny {
		t.Fatalf("Decision = %v, want Deny", result.Decision)
	}
	if result.Err == nil {
		t.Error("Err = nil, want error")
	}
}

func TestAuthenticateNoHeader(t *testing.T) {
	a := newAuthenticator(t)

	result := a.Authenticate(context.Background(), requestWithAuth(t, ""))

	if result.Decision != auth.Abstain {
		t.Fatalf("Decision = %v, want Abstain", result.Decision)
	}
}

func TestAuthenticateNonBearerScheme(t *testing.T) {
	a := newAuthenticator(t)

	result := a.Authenticate(context.Background(), requestWithAuth(t, "Basic dXNlcjpwYXNz"))

	if result.Decision != auth.Abstain {
		t.Fatalf("Decision = %v, want Abstain", result.Decision)
	}
}

func TestAuthenticateEmptyBearerToken(t *testing.T) {
	a := newAuthenticator(t)

	result := a.Authenticate(context.Background(), requestWithAuth(t, "Bearer "))

	if result.Decision != auth.Deny {
		t.Fatalf("Decision = %v, want Deny", result.Decision)
	}
}

func TestIdentityCopied(t *testing.T) {
	a := newAuthenticator(t)

	first := a.Authenticate(context.Background(), requestWithAuth(t, "Bearer sk-valid-key"))
	first.Identity.Subject = "mutated"

	second := a.Authenticate(context.Background(), requestWithAuth(t, "Bearer sk-valid-key"))
	if second.Identity.Subject != "service-a" {
		t.Errorf("Subject = %q after mutation of earlier result, want service-a", second.Identity.Subject)
	}
}
