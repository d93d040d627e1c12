package transport

import (
	"context"
	"strings"
	"testing"

	"github.com/schliff-dev/schliff/pkg/api"
)

// nopWriter satisfies TranslationWriter for handler-level middleware tests.
type nopWriter struct{}

func (nopWriter) WriteEvent(context.Context, api.StreamEvent) error        { return nil }
func (nopWriter) WriteTranslation(context.Context, *api.Translation) error { return nil }
func (nopWriter) Flush() error                                             { return nil }

func TestChainOrder(t *testing.T) {
	var order []string
	mk := func(name string) Middleware {
		return func(next TranslationCreator) TranslationCreator {
			return TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
				order = append(order, name+"-in")
				err := next.CreateTranslation(ctx, req, w)
				order = append(order, name+"-out")
				return err
			})
		}
	}

	handler := TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
		order = append(order, "handler")
		return nil
	})

	chained := Chain(mk("a"), mk("b"))(handler)
	if err := chained.CreateTranslation(context.Background(), &api.CreateTranslationRequest{}, nopWriter{}); err != nil {
		t.Fatal(err)
	}

	want := "a-in,b-in,handler,b-out,a-out"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestRequestIDGenerated(t *testing.T) {
	var seen string
	handler := TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
		seen = RequestIDFromContext(ctx)
		return nil
	})

	if err := RequestID()(handler).CreateTranslation(context.Background(), &api.CreateTranslationRequest{}, nopWriter{}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 32 {
		t.Errorf("request ID = %q, want 32 hex chars", seen)
	}
}

func TestRequestIDPreserved(t *testing.T) {
	var seen string
	handler := TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
		seen = RequestIDFromContext(ctx)
		return nil
	})

	ctx := ContextWithRequestID(context.Background(), "upstream-id")
	if err := RequestID()(handler).CreateTranslation(ctx, &api.CreateTranslationRequest{}, nopWriter{}); err != nil {
		t.Fatal(err)
	}
	if seen != "upstream-id" {
		t.Errorf("request ID = %q, want upstream-id", seen)
	}
}

func TestRecovery(t *testing.T) {
	handler := TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
		panic("boom")
	})

	err := Recovery()(handler).CreateTranslation(context.Background(), &api.CreateTranslationRequest{}, nopWriter{})
	terr := api.AsTranslationError(err)
	if terr == nil {
		t.Fatal("expected classified error from recovered panic")
	}
	if terr.Kind != api.ErrorKindUnknown {
		t.Errorf("Kind = %q, want %q", terr.Kind, api.ErrorKindUnknown)
	}
	if !strings.Contains(terr.Remediation, "boom") {
		t.Errorf("Remediation = %q, want panic value", terr.Remediation)
	}
}

func TestLoggingPassesThrough(t *testing.T) {
	called := false
	handler := TranslationCreatorFunc(func(ctx context.Context, req *api.CreateTranslationRequest, w TranslationWriter) error {
		called = true
		return api.NewParamError("bad input")
	})

	err := Logging(nil)(handler).CreateTranslation(context.Background(), &api.CreateTranslationRequest{TargetLang: "de"}, nopWriter{})
	if !called {
		t.Fatal("handler not invoked")
	}
	terr := api.AsTranslationError(err)
	if terr == nil || terr.Kind != api.ErrorKindParam {
		t.Errorf("err = %v, want original param error passed through", err)
	}
}
