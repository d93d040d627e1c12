// Package api defines the public wire types for the schliff translation
// gateway: translation requests and results, streaming events, lifecycle
// states, and the error taxonomy shared by every layer.
//
// The types in this package are serialization-stable. Handlers, the engine,
// and provider adapters all speak these types; provider-specific wire formats
// never leak past pkg/provider.
package api
