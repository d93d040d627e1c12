// Package auth provides pluggable inbound authentication for schliff.
//
// Authentication uses a chain-of-responsibility pattern with three-outcome
// voting: each authenticator returns Allow (identity found), Deny
// (credentials invalid), or Abstain (can't handle). A configurable default
// decides when every authenticator abstains.
//
// Auth is implemented as HTTP middleware, keeping it decoupled from engine
// logic. The middleware also injects the tenant identity into the request
// context for storage scoping.
package auth
