package api

import (
	"strings"
	"testing"
)

func TestValidateRequest(t *testing.T) {
	cfg := DefaultValidationConfig()

	tests := []struct {
		name    string
		req     CreateTranslationRequest
		wantErr bool
	}{
		{"valid", CreateTranslationRequest{Text: "hello", TargetLang: "fr"}, false},
		{"missing text", CreateTranslationRequest{TargetLang: "fr"}, true},
		{"missing target", CreateTranslationRequest{Text: "hello"}, true},
		{"valid streaming", CreateTranslationRequest{Text: "hi", TargetLang: "de", Stream: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequest(&tt.req, cfg)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateRequestTextSizeLimit(t *testing.T) {
	cfg := ValidationConfig{MaxTextSize: 10}
	req := CreateTranslationRequest{
		Text:       strings.Repeat("x", 11),
		TargetLang: "fr",
	}
	err := ValidateRequest(&req, cfg)
	if err == nil {
		t.Fatal("expected size limit error")
	}
	if err.Kind != ErrorKindParam {
		t.Errorf("Kind = %q, want %q", err.Kind, ErrorKindParam)
	}
}
