package provider

import (
	"net/url"
	"strings"

	"github.com/schliff-dev/schliff/pkg/api"
)

// Family identifies which API dialect and path convention applies to a
// backend. It is resolved once at call start and never re-derived.
type Family int

const (
	// FamilyOpenAI is the standard OpenAI dialect (/v1 path prefix,
	// Authorization: Bearer header).
	FamilyOpenAI Family = iota

	// FamilyAzure is Azure OpenAI (deployment-scoped paths, api-version
	// query parameter, api-key header).
	FamilyAzure

	// FamilyGateway is the Cloudflare AI gateway variant (OpenAI dialect
	// with shorter paths, no /v1 prefix).
	FamilyGateway
)

// String returns the family name for logging.
func (f Family) String() string {
	switch f {
	case FamilyAzure:
		return "azure"
	case FamilyGateway:
		return "gateway"
	default:
		return "openai"
	}
}

// Purpose selects which backend operation an endpoint is resolved for.
type Purpose int

const (
	// PurposeChat resolves the chat-completions endpoint (translation).
	PurposeChat Purpose = iota

	// PurposeListModels resolves the model-listing endpoint (validation).
	PurposeListModels
)

const (
	defaultBaseURL         = "https://api.openai.com"
	defaultAzureAPIVersion = "2023-05-15"

	azureHostMarker   = "openai.azure.com"
	gatewayHostMarker = "gateway.ai.cloudflare.com"
)

// Endpoint is a fully resolved request target.
type Endpoint struct {
	URL    string
	Family Family
}

// ResolveEndpoint normalizes the raw base URL, determines the provider
// family, and derives the final request URL for the given purpose.
//
// Normalization: a missing scheme gets "https://" prepended and exactly one
// trailing slash is stripped. An unset base URL means the public OpenAI host.
//
// Azure requires a deployment name; its absence is a configuration error
// surfaced before any network call.
func ResolveEndpoint(baseURLRaw, deploymentName, apiVersion string, purpose Purpose) (Endpoint, *api.TranslationError) {
	base := normalizeBaseURL(baseURLRaw)

	family := detectFamily(base)

	switch family {
	case FamilyAzure:
		if deploymentName == "" {
			return Endpoint{}, api.NewSecretKeyError("Azure OpenAI requires a deployment name")
		}
		if apiVersion == "" {
			apiVersion = defaultAzureAPIVersion
		}
		var path string
		switch purpose {
		case PurposeListModels:
			path = "/openai/models"
		default:
			path = "/openai/deployments/" + deploymentName + "/chat/completions"
		}
		return Endpoint{
			URL:    base + path + "?api-version=" + url.QueryEscape(apiVersion),
			Family: FamilyAzure,
		}, nil

	case FamilyGateway:
		var path string
		switch purpose {
		case PurposeListModels:
			path = "/models"
		default:
			path = "/chat/completions"
		}
		return Endpoint{URL: base + path, Family: FamilyGateway}, nil

	default:
		var path string
		switch purpose {
		case PurposeListModels:
			path = "/v1/models"
		default:
			path = "/v1/chat/completions"
		}
		return Endpoint{URL: base + path, Family: FamilyOpenAI}, nil
	}
}

// normalizeBaseURL applies the scheme default and strips exactly one
// trailing slash.
func normalizeBaseURL(raw string) string {
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	raw = strings.TrimSuffix(raw, "/")
	return raw
}

// DetectFamily determines the provider family for a raw base URL without
// resolving a full endpoint.
func DetectFamily(baseURLRaw string) Family {
	return detectFamily(normalizeBaseURL(baseURLRaw))
}

// detectFamily determines the provider family by substring match on the
// normalized host.
func detectFamily(base string) Family {
	host := base
	if u, err := url.Parse(base); err == nil && u.Host != "" {
		host = u.Host
	}
	switch {
	case strings.Contains(host, azureHostMarker):
		return FamilyAzure
	case strings.Contains(host, gatewayHostMarker):
		return FamilyGateway
	default:
		return FamilyOpenAI
	}
}
