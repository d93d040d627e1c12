package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/schliff-dev/schliff/pkg/api"
)

func TestCreateTranslation(t *testing.T) {
	srv := startGateway(t, "sk-test")

	resp := postTranslation(t, srv, api.CreateTranslationRequest{
		Text:       "hello world",
		SourceLang: "en",
		TargetLang: "de",
	})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	tr := decodeTranslation(t, resp)
	if tr.Status != api.TranslationStatusCompleted {
		t.Errorf("Status = %q, want completed", tr.Status)
	}
	if tr.Text() != "HELLO WORLD" {
		t.Errorf("Text = %q, want HELLO WORLD", tr.Text())
	}
	if !strings.HasPrefix(tr.ID, "trn_") {
		t.Errorf("ID = %q, want trn_ prefix", tr.ID)
	}
	if tr.TargetLang != "de" {
		t.Errorf("TargetLang = %q, want de", tr.TargetLang)
	}
}

func TestTranslationRetrievedAfterCreate(t *testing.T) {
	srv := startGateway(t, "sk-test")

	resp := postTranslation(t, srv, api.CreateTranslationRequest{
		Text:       "persist me",
		TargetLang: "fr",
	})
	tr := decodeTranslation(t, resp)

	getResp, err := http.Get(srv.URL + "/v1/translations/" + tr.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if getResp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", getResp.StatusCode)
	}

	got := decodeTranslation(t, getResp)
	if got.ID != tr.ID {
		t.Errorf("ID = %q, want %q", got.ID, tr.ID)
	}
	if got.Text() != "PERSIST ME" {
		t.Errorf("Text = %q, want PERSIST ME", got.Text())
	}
}

func TestTranslationDeleted(t *testing.T) {
	srv := startGateway(t, "sk-test")

	resp := postTranslation(t, srv, api.CreateTranslationRequest{
		Text:       "delete me",
		TargetLang: "en",
	})
	tr := decodeTranslation(t, resp)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/translations/"+tr.ID, nil)
	delResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delResp.Body.Close()

	if delResp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", delResp.StatusCode)
	}

	getResp, err := http.Get(srv.URL + "/v1/translations/" + tr.ID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	getResp.Body.Close()
	if getResp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", getResp.StatusCode)
	}
}

func TestUnsupportedTargetLanguage(t *testing.T) {
	srv := startGateway(t, "sk-test")

	resp := postTranslation(t, srv, api.CreateTranslationRequest{
		Text:       "hello",
		TargetLang: "xx",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if kind := decodeErrorKind(t, resp); kind != api.ErrorKindUnsupportedLanguage {
		t.Errorf("Kind = %q, want unsupported_language", kind)
	}
}

func TestEmptyTextRejected(t *testing.T) {
	srv := startGateway(t, "sk-test")

	resp := postTranslation(t, srv, api.CreateTranslationRequest{
		Text:       "",
		TargetLang: "en",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if kind := decodeErrorKind(t, resp); kind != api.ErrorKindParam {
		t.Errorf("Kind = %q, want param", kind)
	}
}

func TestBadCredentialsRejected(t *testing.T) {
	srv := startGateway(t, "sk-invalid")

	resp := postTranslation(t, srv, api.CreateTranslationRequest{
		Text:       "hello",
		TargetLang: "en",
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if kind := decodeErrorKind(t, resp); kind != api.ErrorKindParam {
		t.Errorf("Kind = %q, want param", kind)
	}
}

func TestListLanguagesEndpoint(t *testing.T) {
	srv := startGateway(t, "sk-test")

	resp, err := http.Get(srv.URL + "/v1/languages")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}
