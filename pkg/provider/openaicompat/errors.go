package openaicompat

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/schliff-dev/schliff/pkg/api"
)

// MapHTTPError converts a non-2xx HTTP response into a classified error.
// Client errors (4xx) are param-kind; everything else, including 5xx, is
// api-kind. The response body is consulted for a descriptive message.
func MapHTTPError(resp *http.Response) *api.TranslationError {
	message := ExtractErrorMessage(resp.Body)

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		if message == "" {
			message = fmt.Sprintf("backend rejected the request (HTTP %d)", resp.StatusCode)
		}
		return api.NewParamError(message)
	}

	if message == "" {
		message = fmt.Sprintf("backend server error (HTTP %d)", resp.StatusCode)
	}
	return api.NewAPIError(message, "")
}

// MapNetworkError converts a network-level failure (connection refused,
// timeout, DNS resolution) into an api-kind error.
func MapNetworkError(err error) *api.TranslationError {
	return api.NewAPIError("backend connection error: "+err.Error(), "")
}

// ExtractErrorMessage tries to parse the response body as a
// ChatErrorResponse and returns the error message if found.
func ExtractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp ChatErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}

	return ""
}
