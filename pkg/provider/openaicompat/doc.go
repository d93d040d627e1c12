// Package openaicompat implements the provider adapter for OpenAI-compatible
// chat-completion backends: the public OpenAI API, Azure OpenAI, and the
// Cloudflare AI gateway dialect.
//
// The package contains the whole response-assembly path: building the chat
// request from a translation query, incrementally extracting frames from the
// SSE stream, normalizing completed responses, and classifying every failure
// into the api.ErrorKind taxonomy.
package openaicompat
