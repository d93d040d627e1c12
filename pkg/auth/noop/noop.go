// Package noop provides a no-op authenticator that accepts all requests.
// Used for development deployments without inbound authentication.
package noop

import (
	"context"
	"net/http"

	"github.com/schliff-dev/schliff/pkg/auth"
)

// Authenticator always returns Allow with a default anonymous identity.
type Authenticator struct{}

func (a *Authenticator) Authenticate(_ context.Context, _ *http.Request) auth.Result {
	return auth.Result{
		Decision: auth.Allow,
		Identity: &auth.Identity{
			Subject:     "anonymous",
			ServiceTier: "default",
		},
	}
}
