package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a translation failure. The set is closed: every
// failure in the system maps to exactly one of these kinds so callers can
// react uniformly to validation, network, and API errors.
type ErrorKind string

const (
	// ErrorKindSecretKey covers missing or invalid credentials, including a
	// missing Azure deployment name. Always detected before any network call
	// when the defect is configuration-local.
	ErrorKindSecretKey ErrorKind = "secret_key"

	// ErrorKindParam covers 4xx responses, malformed requests, and JSON
	// parse failures of individual stream frames.
	ErrorKindParam ErrorKind = "param"

	// ErrorKindAPI covers 5xx responses, network-level failures, empty
	// result sets, and responses of unexpected shape.
	ErrorKindAPI ErrorKind = "api"

	// ErrorKindUnsupportedLanguage means the target language is not in the
	// supported-language table. Checked at call entry, before any request
	// is built.
	ErrorKindUnsupportedLanguage ErrorKind = "unsupported_language"

	// ErrorKindUnknown is the fallback for failures with no recognizable shape.
	ErrorKindUnknown ErrorKind = "unknown"
)

// TroubleshootingURL is attached to configuration-class errors so operators
// can find key and endpoint setup instructions.
const TroubleshootingURL = "https://github.com/schliff-dev/schliff/blob/main/docs/troubleshooting.md"

// TranslationError is the terminal error record for a failed call.
// It is immutable once constructed.
type TranslationError struct {
	Kind            ErrorKind `json:"kind"`
	Message         string    `json:"message"`
	Remediation     string    `json:"remediation,omitempty"`
	Troubleshooting string    `json:"troubleshooting,omitempty"`
}

// Error implements the error interface.
func (e *TranslationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ErrorResponse wraps a TranslationError as the top-level JSON error envelope.
type ErrorResponse struct {
	Error *TranslationError `json:"error"`
}

// NewSecretKeyError creates an error for credential and deployment
// configuration defects. Remediation and a troubleshooting reference are
// attached because the operator, not the caller, has to act on these.
func NewSecretKeyError(message string) *TranslationError {
	return &TranslationError{
		Kind:            ErrorKindSecretKey,
		Message:         message,
		Remediation:     "check the configured API key, base URL, and (for Azure) deployment name",
		Troubleshooting: TroubleshootingURL,
	}
}

// NewParamError creates an error for request-side defects (4xx, malformed
// payloads, unparseable stream frames).
func NewParamError(message string) *TranslationError {
	return &TranslationError{
		Kind:    ErrorKindParam,
		Message: message,
	}
}

// NewAPIError creates an error for backend-side failures. The remediation
// field carries raw diagnostic detail (e.g. the serialized response body)
// when available.
func NewAPIError(message, detail string) *TranslationError {
	return &TranslationError{
		Kind:        ErrorKindAPI,
		Message:     message,
		Remediation: detail,
	}
}

// NewUnsupportedLanguageError creates an error for a target language that is
// absent from the supported-language table.
func NewUnsupportedLanguageError(lang string) *TranslationError {
	return &TranslationError{
		Kind:    ErrorKindUnsupportedLanguage,
		Message: fmt.Sprintf("target language %q is not supported", lang),
	}
}

// NewUnknownError creates the generic fallback error. The message is fixed;
// the underlying cause, if any, goes into remediation.
func NewUnknownError(cause error) *TranslationError {
	e := &TranslationError{
		Kind:    ErrorKindUnknown,
		Message: "unknown error",
	}
	if cause != nil {
		e.Remediation = cause.Error()
	}
	return e
}

// AsTranslationError coerces any error into a *TranslationError. Errors that
// already carry a kind pass through unchanged; everything else becomes the
// unknown fallback. It never returns nil for a non-nil input.
func AsTranslationError(err error) *TranslationError {
	if err == nil {
		return nil
	}
	var te *TranslationError
	if errors.As(err, &te) {
		return te
	}
	return NewUnknownError(err)
}
