package openaicompat

import (
	"strings"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/language"
	"github.com/schliff-dev/schliff/pkg/provider"
)

// Fixed sampling parameters. Every call uses the same values; callers cannot
// override them.
const (
	requestTemperature      = 0.2
	requestMaxTokens        = 1000
	requestTopP             = 1
	requestFrequencyPenalty = 1
	requestPresencePenalty  = 1
)

// BuildChatRequest constructs the two-message chat payload for a translation
// query. It is a pure function: no side effects, deterministic for identical
// inputs.
//
// System prompt selection: a configured template wins and gets the query
// placeholders interpolated; otherwise the language catalog supplies a prompt
// keyed by the query's source language, with a generic fallback. Detailed
// polish mode appends the catalog's change-justification addendum.
//
// User prompt: a configured template is interpolated and wrapped around the
// source text; otherwise the user message is the raw source text.
func BuildChatRequest(s provider.Settings, q provider.Query) ChatCompletionRequest {
	return ChatCompletionRequest{
		Model:            s.ModelName(),
		Temperature:      requestTemperature,
		MaxTokens:        requestMaxTokens,
		TopP:             requestTopP,
		FrequencyPenalty: requestFrequencyPenalty,
		PresencePenalty:  requestPresencePenalty,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt(s, q)},
			{Role: "user", Content: userPrompt(s, q)},
		},
	}
}

func systemPrompt(s provider.Settings, q provider.Query) string {
	if s.SystemPromptTemplate != "" {
		return interpolate(s.SystemPromptTemplate, q)
	}

	prompt := language.PolishPrompt(q.SourceLang)
	if s.PolishMode == api.PolishModeDetailed {
		prompt += language.DetailedAddendum(q.SourceLang)
	}
	return prompt
}

func userPrompt(s provider.Settings, q provider.Query) string {
	if s.UserPromptTemplate != "" {
		return interpolate(s.UserPromptTemplate, q) + ":\n\n\"" + q.Text + "\""
	}
	return q.Text
}

// interpolate substitutes the $text, $sourceLang, and $targetLang
// placeholders in a prompt template.
func interpolate(template string, q provider.Query) string {
	return strings.NewReplacer(
		"$text", q.Text,
		"$sourceLang", q.SourceLang,
		"$targetLang", q.TargetLang,
	).Replace(template)
}
