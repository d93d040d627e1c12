// Package integration exercises the full gateway stack: HTTP adapter,
// engine, provider client, and memory store against a mock Chat Completions
// backend.
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/engine"
	"github.com/schliff-dev/schliff/pkg/provider"
	"github.com/schliff-dev/schliff/pkg/provider/openaicompat"
	"github.com/schliff-dev/schliff/pkg/storage/memory"
	transporthttp "github.com/schliff-dev/schliff/pkg/transport/http"
)

// mockBackend is a deterministic Chat Completions server. The "translation"
// it produces is the last user message uppercased. The key "sk-invalid"
// triggers the credential failure path.
func mockBackend(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		if !backendAuthorized(r) {
			writeBackendAuthError(w)
			return
		}

		var req struct {
			Model    string `json:"model"`
			Stream   bool   `json:"stream"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":{"message":"bad request"}}`, http.StatusBadRequest)
			return
		}

		var text string
		for i := len(req.Messages) - 1; i >= 0; i-- {
			if req.Messages[i].Role == "user" {
				text = strings.ToUpper(req.Messages[i].Content)
				break
			}
		}

		if req.Stream {
			w.Header().Set("Content-Type", "text/event-stream")
			flusher := w.(http.Flusher)
			words := strings.Fields(text)
			for i, word := range words {
				if i < len(words)-1 {
					word += " "
				}
				chunk := fmt.Sprintf(`{"choices":[{"delta":{"content":%q}}]}`, word)
				fmt.Fprintf(w, "data: %s\n\n", chunk)
				flusher.Flush()
			}
			fmt.Fprint(w, "data: [DONE]\n\n")
			flusher.Flush()
			return
		}

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"chatcmpl-mock","model":%q,"choices":[{"message":{"role":"assistant","content":"\"%s\"\n"},"finish_reason":"stop"}]}`,
			req.Model, text)
	})
	mux.HandleFunc("GET /v1/models", func(w http.ResponseWriter, r *http.Request) {
		if !backendAuthorized(r) {
			writeBackendAuthError(w)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"mock-model","owned_by":"mock"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func backendAuthorized(r *http.Request) bool {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token != "" && token != "sk-invalid"
}

func writeBackendAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"message":"Incorrect API key provided","code":"invalid_api_key"}}`))
}

// startGateway wires the full stack against a mock backend and returns the
// gateway's test server.
func startGateway(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	backend := mockBackend(t)
	return startGatewayAt(t, backend.URL, apiKey)
}

// startGatewayWithBackend wires the full stack against a custom
// chat-completions handler.
func startGatewayWithBackend(t *testing.T, chatHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", chatHandler)
	backend := httptest.NewServer(mux)
	t.Cleanup(backend.Close)
	return startGatewayAt(t, backend.URL, "sk-test")
}

func startGatewayAt(t *testing.T, backendURL, apiKey string) *httptest.Server {
	t.Helper()

	client := openaicompat.NewClient(provider.Settings{
		BaseURL: backendURL,
		APIKeys: apiKey,
		Model:   "mock-model",
	}, 0)
	t.Cleanup(func() { client.Close() })

	store := memory.New(100)
	t.Cleanup(func() { store.Close() })

	eng, err := engine.New(client, store, engine.Config{})
	if err != nil {
		t.Fatalf("creating engine: %v", err)
	}

	adapter := transporthttp.NewAdapter(eng, eng, store, transporthttp.DefaultConfig())
	srv := httptest.NewServer(adapter.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func postTranslation(t *testing.T, srv *httptest.Server, req api.CreateTranslationRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshaling request: %v", err)
	}
	resp, err := http.Post(srv.URL+"/v1/translations", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/translations: %v", err)
	}
	return resp
}

func decodeTranslation(t *testing.T, resp *http.Response) *api.Translation {
	t.Helper()
	defer resp.Body.Close()
	var tr api.Translation
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		t.Fatalf("decoding translation: %v", err)
	}
	return &tr
}

func decodeErrorKind(t *testing.T, resp *http.Response) api.ErrorKind {
	t.Helper()
	defer resp.Body.Close()
	var envelope api.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding error: %v", err)
	}
	if envelope.Error == nil {
		t.Fatal("no error in envelope")
	}
	return envelope.Error.Kind
}
