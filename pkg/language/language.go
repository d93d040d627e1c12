// Package language provides the static supported-language registry and the
// polishing prompt catalog used to build chat requests.
//
// The registry is the single source of truth for which target languages the
// gateway accepts. Lookups never perform I/O.
package language

import "sort"

// registry maps supported language codes to their English display names.
var registry = map[string]string{
	"ar":      "Arabic",
	"cs":      "Czech",
	"da":      "Danish",
	"de":      "German",
	"el":      "Greek",
	"en":      "English",
	"es":      "Spanish",
	"fi":      "Finnish",
	"fr":      "French",
	"he":      "Hebrew",
	"hi":      "Hindi",
	"hu":      "Hungarian",
	"id":      "Indonesian",
	"it":      "Italian",
	"ja":      "Japanese",
	"ko":      "Korean",
	"nb":      "Norwegian",
	"nl":      "Dutch",
	"pl":      "Polish",
	"pt":      "Portuguese",
	"ro":      "Romanian",
	"ru":      "Russian",
	"sv":      "Swedish",
	"th":      "Thai",
	"tr":      "Turkish",
	"uk":      "Ukrainian",
	"vi":      "Vietnamese",
	"yue":     "Cantonese",
	"zh-Hans": "Simplified Chinese",
	"zh-Hant": "Traditional Chinese",
}

// Supported reports whether the given language code is in the registry.
func Supported(code string) bool {
	_, ok := registry[code]
	return ok
}

// Name returns the English display name for a supported code, or the code
// itself when unknown.
func Name(code string) string {
	if name, ok := registry[code]; ok {
		return name
	}
	return code
}

// Codes returns all supported language codes in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
