package api

import "fmt"

// ValidateStatusTransition checks whether a translation status transition is
// valid. An empty "from" status represents the initial state before any
// status has been set. Terminal states (completed, failed, cancelled) do not
// allow outgoing transitions.
func ValidateStatusTransition(from, to TranslationStatus) *TranslationError {
	valid := map[TranslationStatus][]TranslationStatus{
		"":                          {TranslationStatusInProgress},
		TranslationStatusInProgress: {TranslationStatusCompleted, TranslationStatusFailed, TranslationStatusCancelled},
	}

	allowed, exists := valid[from]
	if !exists {
		return NewParamError(fmt.Sprintf("invalid status transition from %s to %s", from, to))
	}

	for _, s := range allowed {
		if s == to {
			return nil
		}
	}

	return NewParamError(fmt.Sprintf("invalid status transition from %s to %s", from, to))
}
