package openaicompat

import (
	"strings"
	"unicode/utf8"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/provider"
)

// quotePairs maps opening quotation-like characters to their closing
// counterparts across the quote styles different locales produce.
var quotePairs = map[rune]rune{
	'"':      '"',
	'\'':     '\'',
	'“': '”',
	'”': '“',
	'‘': '’',
	'「': '」',
	'『': '』',
	'«': '»',
}

// trailingArtifact is a literal the model sometimes appends when it echoes
// translation-arrow notation from the prompt.
const trailingArtifact = "\" =>"

// NormalizeResponse converts a completed chat response into the normalized
// translation result. A response without choices is an api-kind error
// carrying the serialized body as diagnostic detail.
func NormalizeResponse(resp *ChatCompletionResponse, raw []byte) (*provider.Result, *api.TranslationError) {
	if len(resp.Choices) == 0 {
		return nil, api.NewAPIError("backend returned no choices", string(raw))
	}

	clean := CleanText(resp.Choices[0].Message.Content)

	return &provider.Result{
		Paragraphs: strings.Split(clean, "\n"),
		Model:      resp.Model,
	}, nil
}

// CleanText trims surrounding whitespace, strips one matching pair of
// quotation-like characters from the very start and end of the string, and
// removes a literal trailing `" =>` artifact.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	s = stripQuotePair(s)
	s = strings.TrimSuffix(s, trailingArtifact)
	return s
}

// stripQuotePair removes exactly one matching outer quote pair, if present.
func stripQuotePair(s string) string {
	first, firstSize := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	closing, ok := quotePairs[first]
	if !ok {
		return s
	}
	last, lastSize := utf8.DecodeLastRuneInString(s)
	if last != closing || len(s) < firstSize+lastSize {
		return s
	}
	return s[firstSize : len(s)-lastSize]
}
