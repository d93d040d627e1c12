package openaicompat

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/provider"
)

const (
	framePrefix  = "data: "
	doneSentinel = "[DONE]"
)

// authFailureMarkers are substrings that identify an authentication failure
// in a raw chunk, independent of JSON framing. Backends emit these inside
// error bodies that may arrive over the streaming connection.
var authFailureMarkers = []string{
	"invalid_api_key",
	"Incorrect API key",
}

// Frame is one decoded unit of the streaming protocol. A well-formed frame
// carries zero or one content delta; a malformed frame carries the parse
// failure instead and contributes no delta.
type Frame struct {
	Delta string
	Err   *api.TranslationError
}

// Assembler incrementally extracts complete protocol frames from chunked
// deliveries. It owns the stream buffer: after each Feed, the buffer holds
// only bytes belonging to an as-yet-incomplete frame (or nothing). A frame
// boundary may split across any number of chunk deliveries; the assembler
// never loses or duplicates a byte.
//
// An Assembler is call-scoped and not safe for concurrent use.
type Assembler struct {
	buf  string
	done bool
}

// Feed appends the incoming chunk to the buffer and extracts every complete
// frame. The fatal return is non-nil only for an authentication failure
// detected in the raw chunk, which bypasses frame parsing entirely.
func (a *Assembler) Feed(chunk string) (frames []Frame, fatal *api.TranslationError) {
	for _, marker := range authFailureMarkers {
		if strings.Contains(chunk, marker) {
			return nil, api.NewSecretKeyError("backend rejected the API key")
		}
	}

	a.buf += chunk

	for !a.done {
		start := strings.Index(a.buf, framePrefix)
		if start < 0 {
			break
		}
		end := strings.IndexByte(a.buf[start:], '\n')
		if end < 0 {
			// Partial frame: keep it for the next delivery.
			break
		}

		payload := a.buf[start+len(framePrefix) : start+end]
		a.buf = a.buf[start+end+1:]

		payload = strings.TrimSuffix(payload, "\r")

		if payload == doneSentinel {
			a.done = true
			break
		}

		var cc ChatCompletionChunk
		if err := json.Unmarshal([]byte(payload), &cc); err != nil {
			frames = append(frames, Frame{
				Err: api.NewParamError("failed to parse stream frame: " + err.Error()),
			})
			continue
		}

		if delta := extractDelta(&cc); delta != "" {
			frames = append(frames, Frame{Delta: delta})
		}
	}

	return frames, nil
}

// Done reports whether the [DONE] sentinel has been consumed.
func (a *Assembler) Done() bool { return a.done }

// Residual returns the unconsumed buffer contents. Used by tests to verify
// the buffer invariant.
func (a *Assembler) Residual() string { return a.buf }

// extractDelta returns the first choice's incremental content, if present.
func extractDelta(chunk *ChatCompletionChunk) string {
	if len(chunk.Choices) == 0 {
		return ""
	}
	content := chunk.Choices[0].Delta.Content
	if content == nil {
		return ""
	}
	return *content
}

// ParseStream reads raw chunks from the response body, drives the Assembler,
// and sends provider events on ch in arrival order. The channel is NOT
// closed by this function; the caller is responsible for closing it.
//
// Malformed frames are logged and skipped; they contribute no delta and do
// not abort frames already matched in the same buffer pass. Authentication
// failures and read errors terminate the stream with an error event. Context
// cancellation stops reading without emitting further events.
func ParseStream(ctx context.Context, body io.Reader, ch chan<- provider.Event) {
	var asm Assembler
	buf := make([]byte, 4096)

	for {
		if ctx.Err() != nil {
			return
		}

		n, readErr := body.Read(buf)
		if n > 0 {
			frames, fatal := asm.Feed(string(buf[:n]))
			if fatal != nil {
				ch <- provider.Event{Type: provider.EventError, Err: fatal}
				return
			}
			for _, f := range frames {
				if f.Err != nil {
					slog.Warn("skipping malformed stream frame", "error", f.Err.Message)
					continue
				}
				ch <- provider.Event{Type: provider.EventDelta, Delta: f.Delta}
			}
			if asm.Done() {
				ch <- provider.Event{Type: provider.EventDone}
				return
			}
		}

		if readErr != nil {
			if readErr == io.EOF {
				// Stream ended without the sentinel. Treat as normal end:
				// some backends close the connection instead of sending it.
				ch <- provider.Event{Type: provider.EventDone}
				return
			}
			if ctx.Err() != nil {
				return
			}
			ch <- provider.Event{
				Type: provider.EventError,
				Err:  api.NewAPIError("stream read error: "+readErr.Error(), ""),
			}
			return
		}
	}
}
