package openaicompat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/debug"
	"github.com/schliff-dev/schliff/pkg/provider"
)

// probePrompt is the minimal fixed prompt used for the Azure validation
// probe. Five output tokens are enough to prove the deployment answers.
const (
	probePrompt    = "Say ok"
	probeMaxTokens = 5
)

// Client performs HTTP requests against an OpenAI-compatible backend and
// assembles responses into normalized translation results. The provider
// family (OpenAI, Azure, gateway) is resolved once per call from the
// configured base URL.
type Client struct {
	settings   provider.Settings
	keys       provider.KeyRing
	httpClient *http.Client
}

var _ provider.Provider = (*Client)(nil)

// NewClient creates a Client for the given settings. A zero timeout means
// 120 seconds; streaming calls ignore the timeout and rely on context
// cancellation instead.
func NewClient(settings provider.Settings, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		settings:   settings,
		keys:       provider.ParseKeyRing(settings.APIKeys),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Name returns the resolved provider family name.
func (c *Client) Name() string {
	return provider.DetectFamily(c.settings.BaseURL).String()
}

// Complete performs a non-streaming translation call.
func (c *Client) Complete(ctx context.Context, q provider.Query) (*provider.Result, error) {
	httpResp, terr := c.sendChat(ctx, q, false)
	if terr != nil {
		return nil, terr
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, MapHTTPError(httpResp)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, api.NewAPIError("failed to read backend response: "+err.Error(), "")
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(raw, &chatResp); err != nil {
		return nil, api.NewAPIError("failed to parse backend response: "+err.Error(), string(raw))
	}

	result, terr := NormalizeResponse(&chatResp, raw)
	if terr != nil {
		return nil, terr
	}
	if result.Model == "" {
		result.Model = c.settings.ModelName()
	}
	return result, nil
}

// Stream performs a streaming translation call. The returned channel
// receives events in arrival order and is closed when the stream completes,
// fails, or the context is cancelled.
func (c *Client) Stream(ctx context.Context, q provider.Query) (<-chan provider.Event, error) {
	httpResp, terr := c.sendChat(ctx, q, true)
	if terr != nil {
		return nil, terr
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		defer httpResp.Body.Close()
		return nil, MapHTTPError(httpResp)
	}

	ch := make(chan provider.Event, 16)
	go func() {
		defer close(ch)
		defer httpResp.Body.Close()
		ParseStream(ctx, httpResp.Body, ch)
	}()

	return ch, nil
}

// Probe performs the family-appropriate connectivity and credentials check:
// a minimal chat completion for Azure, a model listing elsewhere.
func (c *Client) Probe(ctx context.Context) error {
	ep, terr := provider.ResolveEndpoint(c.settings.BaseURL, c.settings.DeploymentName, c.settings.APIVersion, provider.PurposeListModels)
	if terr != nil {
		return terr
	}

	if ep.Family == provider.FamilyAzure {
		return c.probeAzure(ctx)
	}

	models, err := c.ListModels(ctx)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return api.NewAPIError("backend returned an empty model list", "")
	}
	return nil
}

// probeAzure sends a tiny chat completion to the configured deployment and
// checks that at least one choice comes back.
func (c *Client) probeAzure(ctx context.Context) error {
	key, terr := c.keys.Pick()
	if terr != nil {
		return terr
	}

	ep, terr := provider.ResolveEndpoint(c.settings.BaseURL, c.settings.DeploymentName, c.settings.APIVersion, provider.PurposeChat)
	if terr != nil {
		return terr
	}

	body, err := json.Marshal(ChatCompletionRequest{
		Model:     c.settings.ModelName(),
		MaxTokens: probeMaxTokens,
		Messages:  []ChatMessage{{Role: "user", Content: probePrompt}},
	})
	if err != nil {
		return api.NewUnknownError(err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return api.NewUnknownError(err)
	}
	setHeaders(httpReq, ep.Family, key)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return MapHTTPError(httpResp)
	}

	var chatResp ChatCompletionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&chatResp); err != nil {
		return api.NewAPIError("failed to parse probe response: "+err.Error(), "")
	}
	if len(chatResp.Choices) == 0 {
		return api.NewAPIError("probe returned no choices", "")
	}
	return nil
}

// ListModels queries the model-listing endpoint.
func (c *Client) ListModels(ctx context.Context) ([]provider.ModelInfo, error) {
	key, terr := c.keys.Pick()
	if terr != nil {
		return nil, terr
	}

	ep, terr := provider.ResolveEndpoint(c.settings.BaseURL, c.settings.DeploymentName, c.settings.APIVersion, provider.PurposeListModels)
	if terr != nil {
		return nil, terr
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return nil, api.NewUnknownError(err)
	}
	setHeaders(httpReq, ep.Family, key)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, MapHTTPError(httpResp)
	}

	var modelsResp ChatModelsResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&modelsResp); err != nil {
		return nil, api.NewAPIError("failed to parse models response: "+err.Error(), "")
	}

	var models []provider.ModelInfo
	for _, m := range modelsResp.Data {
		models = append(models, provider.ModelInfo{ID: m.ID, OwnedBy: m.OwnedBy})
	}
	return models, nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// sendChat builds and issues the chat-completions request shared by Complete
// and Stream. Streaming requests use a client without timeout; the context
// controls their lifetime.
func (c *Client) sendChat(ctx context.Context, q provider.Query, stream bool) (*http.Response, *api.TranslationError) {
	key, terr := c.keys.Pick()
	if terr != nil {
		return nil, terr
	}

	ep, terr := provider.ResolveEndpoint(c.settings.BaseURL, c.settings.DeploymentName, c.settings.APIVersion, provider.PurposeChat)
	if terr != nil {
		return nil, terr
	}

	chatReq := BuildChatRequest(c.settings, q)
	chatReq.Stream = stream

	body, err := json.Marshal(chatReq)
	if err != nil {
		return nil, api.NewUnknownError(err)
	}

	debug.Log("providers", "chat request",
		"family", ep.Family.String(),
		"url", ep.URL,
		"model", chatReq.Model,
		"stream", stream,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return nil, api.NewUnknownError(err)
	}
	setHeaders(httpReq, ep.Family, key)
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}

	client := c.httpClient
	if stream {
		client = &http.Client{Transport: c.httpClient.Transport}
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return nil, MapNetworkError(err)
	}
	return httpResp, nil
}

// setHeaders applies the family-specific auth convention: Azure uses the
// api-key header, everything else a bearer token.
func setHeaders(req *http.Request, family provider.Family, key string) {
	req.Header.Set("Content-Type", "application/json")
	if family == provider.FamilyAzure {
		req.Header.Set("api-key", key)
	} else {
		req.Header.Set("Authorization", "Bearer "+key)
	}
}
