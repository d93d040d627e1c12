// Package transport defines the handler contracts between the HTTP layer and
// the translation engine, plus the middleware chain that wraps them.
//
// The transport layer owns everything protocol-shaped: error-to-status
// mapping, request IDs, panic recovery, and the in-flight registry used to
// cancel streaming translations. The engine behind these interfaces never
// sees an http.Request.
package transport
