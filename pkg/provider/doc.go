// Package provider defines the contracts between the translation engine and
// upstream LLM backends: the Provider interface, per-call settings, streaming
// events, the endpoint resolver, and the API key ring.
//
// Adapters live in subpackages (currently openaicompat for OpenAI, Azure
// OpenAI, and Cloudflare gateway dialects) and handle their wire protocol
// internally; nothing provider-specific escapes this boundary.
package provider
