package provider

import (
	"math/rand/v2"
	"strings"

	"github.com/schliff-dev/schliff/pkg/api"
)

// KeyRing holds the set of API keys configured for a backend. Operators may
// configure several keys as a comma-delimited list; one is selected per call
// to spread quota usage.
type KeyRing struct {
	keys []string
}

// ParseKeyRing splits a comma-delimited key list, trimming surrounding
// whitespace and dropping empty entries.
func ParseKeyRing(delimited string) KeyRing {
	var keys []string
	for _, k := range strings.Split(delimited, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return KeyRing{keys: keys}
}

// Len returns the number of configured keys.
func (r KeyRing) Len() int { return len(r.keys) }

// Pick selects one key uniformly at random. An empty ring is a configuration
// error detected before any network call.
func (r KeyRing) Pick() (string, *api.TranslationError) {
	switch len(r.keys) {
	case 0:
		return "", api.NewSecretKeyError("no API key configured")
	case 1:
		return r.keys[0], nil
	default:
		return r.keys[rand.IntN(len(r.keys))], nil
	}
}
