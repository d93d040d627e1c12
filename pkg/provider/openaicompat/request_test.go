package openaicompat

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/schliff-dev/schliff/pkg/api"
	"github.com/schliff-dev/schliff/pkg/language"
	"github.com/schliff-dev/schliff/pkg/provider"
)

func TestBuildChatRequestFixedSampling(t *testing.T) {
	req := BuildChatRequest(provider.Settings{Model: "gpt-4o-mini"}, provider.Query{Text: "hi"})

	if req.Temperature != 0.2 {
		t.Errorf("Temperature = %v, want 0.2", req.Temperature)
	}
	if req.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", req.MaxTokens)
	}
	if req.TopP != 1 {
		t.Errorf("TopP = %v, want 1", req.TopP)
	}
	if req.FrequencyPenalty != 1 {
		t.Errorf("FrequencyPenalty = %v, want 1", req.FrequencyPenalty)
	}
	if req.PresencePenalty != 1 {
		t.Errorf("PresencePenalty = %v, want 1", req.PresencePenalty)
	}
	if req.Stream {
		t.Error("Stream should default to false")
	}
}

// TestBuildChatRequestIdempotent verifies that two builds with identical
// inputs serialize to byte-identical payloads.
func TestBuildChatRequestIdempotent(t *testing.T) {
	s := provider.Settings{
		Model:      "gpt-4o-mini",
		PolishMode: api.PolishModeDetailed,
	}
	q := provider.Query{Text: "Guten Tag", SourceLang: "de", TargetLang: "en"}

	a, err := json.Marshal(BuildChatRequest(s, q))
	if err != nil {
		t.Fatal(err)
	}
	b, err := json.Marshal(BuildChatRequest(s, q))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Errorf("payloads differ:\n%s\n%s", a, b)
	}
}

func TestBuildChatRequestMessages(t *testing.T) {
	req := BuildChatRequest(
		provider.Settings{Model: "gpt-4o-mini"},
		provider.Query{Text: "Hello world", SourceLang: "en"},
	)

	if len(req.Messages) != 2 {
		t.Fatalf("got %d messages, want 2", len(req.Messages))
	}
	if req.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", req.Messages[0].Role)
	}
	if req.Messages[0].Content != language.PolishPrompt("en") {
		t.Errorf("system prompt = %q", req.Messages[0].Content)
	}
	if req.Messages[1].Role != "user" || req.Messages[1].Content != "Hello world" {
		t.Errorf("user message = %+v, want raw source text", req.Messages[1])
	}
}

func TestBuildChatRequestDetailedMode(t *testing.T) {
	req := BuildChatRequest(
		provider.Settings{Model: "gpt-4o-mini", PolishMode: api.PolishModeDetailed},
		provider.Query{Text: "x", SourceLang: "en"},
	)

	want := language.PolishPrompt("en") + language.DetailedAddendum("en")
	if req.Messages[0].Content != want {
		t.Errorf("system prompt = %q, want prompt plus addendum", req.Messages[0].Content)
	}
}

func TestBuildChatRequestCustomSystemTemplate(t *testing.T) {
	req := BuildChatRequest(
		provider.Settings{
			Model:                "gpt-4o-mini",
			SystemPromptTemplate: "Translate from $sourceLang to $targetLang",
		},
		provider.Query{Text: "Bonjour", SourceLang: "fr", TargetLang: "en"},
	)

	if req.Messages[0].Content != "Translate from fr to en" {
		t.Errorf("system prompt = %q", req.Messages[0].Content)
	}
}

func TestBuildChatRequestCustomUserTemplate(t *testing.T) {
	req := BuildChatRequest(
		provider.Settings{
			Model:              "gpt-4o-mini",
			UserPromptTemplate: "Polish this $sourceLang text",
		},
		provider.Query{Text: "Bonjour", SourceLang: "fr"},
	)

	want := "Polish this fr text:\n\n\"Bonjour\""
	if req.Messages[1].Content != want {
		t.Errorf("user message = %q, want %q", req.Messages[1].Content, want)
	}
}

func TestBuildChatRequestCustomModelWins(t *testing.T) {
	req := BuildChatRequest(
		provider.Settings{Model: "gpt-4o-mini", CustomModel: "my-tuned-model"},
		provider.Query{Text: "x"},
	)
	if req.Model != "my-tuned-model" {
		t.Errorf("Model = %q, want my-tuned-model", req.Model)
	}
}

func TestBuildChatRequestUnknownLanguageFallback(t *testing.T) {
	req := BuildChatRequest(
		provider.Settings{Model: "m"},
		provider.Query{Text: "x", SourceLang: "xx"},
	)
	if !strings.Contains(req.Messages[0].Content, language.GenericPolishPrompt) {
		t.Errorf("system prompt = %q, want generic fallback", req.Messages[0].Content)
	}
}
