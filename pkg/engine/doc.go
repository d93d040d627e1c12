// Package engine orchestrates translation requests between the transport
// layer and the provider backend: validation, prompt construction, streaming
// event assembly, result retention, and backend validation probes.
package engine
