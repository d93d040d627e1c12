// Package apikey provides an API key authenticator that validates bearer
// tokens against a static key store using SHA-256 hashing and constant-time
// comparison.
package apikey

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/schliff-dev/schliff/pkg/auth"
)

// RawKeyEntry is the configuration format for API keys.
type RawKeyEntry struct {
	Key      string
	Identity auth.Identity
}

// keyEntry maps a key hash to an identity.
type keyEntry struct {
	hash     [32]byte
	identity auth.Identity
}

// Authenticator validates bearer tokens against a static key store.
type Authenticator struct {
	keys []keyEntry
}

// New creates an API key authenticator from a list of raw keys and
// identities. Keys are hashed immediately; plaintext keys are not retained.
func New(entries []RawKeyEntry) *Authenticator {
	a := &Authenticator{}
	for _, e := range entries {
		a.keys = append(a.keys, keyEntry{
			hash:     sha256.Sum256([]byte(e.Key)),
			identity: e.Identity,
		})
	}
	return a
}

// Authenticate extracts the bearer token and validates it. Returns Allow if
// valid, Deny if a bearer token is present but invalid, Abstain if there is
// no Authorization header or it is not a Bearer scheme.
func (a *Authenticator) Authenticate(_ context.Context, r *http.Request) auth.Result {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.Result{Decision: auth.Abstain}
	}

	if !strings.HasPrefix(header, "Bearer ") {
		return auth.Result{Decision: auth.Abstain}
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return auth.Result{Decision: auth.Deny, Err: auth.ErrUnauthenticated}
	}

	tokenHash := sha256.Sum256([]byte(token))

	for _, entry := range a.keys {
		if subtle.ConstantTimeCompare(tokenHash[:], entry.hash[:]) == 1 {
			// Copy identity to avoid shared state.
			id := entry.identity
			return auth.Result{Decision: auth.Allow, Identity: &id}
		}
	}

	// Bearer token present but not found.
	return auth.Result{Decision: auth.Deny, Err: auth.ErrUnauthenticated}
}
