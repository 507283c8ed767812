package translation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestLibreProviderTranslateSuccess(t *testing.T) {
	var gotMethod string
	var gotForm url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"translatedText":"Hola"}`)
	}))
	defer ts.Close()

	p := NewLibreProvider(ts.URL, time.Second)
	res, err := p.Translate(context.Background(), Request{Text: "Hello", Target: "es"})
	if err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if res.Translated != "Hola" {
		t.Fatalf("translated = %q, want %q", res.Translated, "Hola")
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q, want POST", gotMethod)
	}
	if got := gotForm.Get("q"); got != "Hello" {
		t.Errorf("q = %q, want %q", got, "Hello")
	}
	if got := gotForm.Get("source"); got != "auto" {
		t.Errorf("source = %q, want %q (default)", got, "auto")
	}
	if got := gotForm.Get("target"); got != "es" {
		t.Errorf("target = %q, want %q", got, "es")
	}
	if got := gotForm.Get("format"); got != "text" {
		t.Errorf("format = %q, want %q", got, "text")
	}
}

func TestLibreProviderForwardsExplicitSource(t *testing.T) {
	var gotSource string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotSource = r.PostForm.Get("source")
		fmt.Fprint(w, `{"translatedText":"Hallo"}`)
	}))
	defer ts.Close()

	p := NewLibreProvider(ts.URL, time.Second)
	if _, err := p.Translate(context.Background(), Request{Text: "Hello", Source: "en", Target: "de"}); err != nil {
		t.Fatalf("translate failed: %v", err)
	}
	if gotSource != "en" {
		t.Fatalf("source = %q, want %q", gotSource, "en")
	}
}

func TestLibreProviderRejectsEmptyText(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{"translatedText":"x"}`)
	}))
	defer ts.Close()

	p := NewLibreProvider(ts.URL, time.Second)
	for _, text := range []string{"", "   ", "\t\n"} {
		_, err := p.Translate(context.Background(), Request{Text: text, Target: "es"})
		if err == nil {
			t.Fatalf("text %q: expected error", text)
		}
		if KindOf(err) != KindInvalidInput {
			t.Fatalf("text %q: kind = %v, want KindInvalidInput", text, KindOf(err))
		}
	}
	if requests != 0 {
		t.Fatalf("provider was called %d times for empty text", requests)
	}
}

func TestLibreProviderErrorStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, "upstream exploded")
	}))
	defer ts.Close()

	p := NewLibreProvider(ts.URL, time.Second)
	_, err := p.Translate(context.Background(), Request{Text: "Hello", Target: "es"})
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindBadGateway {
		t.Fatalf("kind = %v, want KindBadGateway", KindOf(err))
	}
	if !strings.Contains(DetailOf(err), "upstream exploded") {
		t.Fatalf("detail %q should contain the provider body", DetailOf(err))
	}
}

func TestLibreProviderErrorBodyTruncated(t *testing.T) {
	longBody := strings.Repeat("x", 1000)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, longBody)
	}))
	defer ts.Close()

	p := NewLibreProvider(ts.URL, time.Second)
	_, err := p.Translate(context.Background(), Request{Text: "Hello", Target: "es"})
	if err == nil {
		t.Fatal("expected error")
	}
	got := DetailOf(err)
	want := "Translation service error: " + longBody[:maxErrorBodyChars]
	if got != want {
		t.Fatalf("detail = %q (len %d), want truncation to %d body chars", got, len(got), maxErrorBodyChars)
	}
}

func TestLibreProviderMalformedSuccessBody(t *testing.T) {
	cases := map[string]string{
		"not json":      `this is not json`,
		"missing field": `{"detectedLanguage":{"language":"en"}}`,
		"empty field":   `{"translatedText":""}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, body)
			}))
			defer ts.Close()

			p := NewLibreProvider(ts.URL, time.Second)
			_, err := p.Translate(context.Background(), Request{Text: "Hello", Target: "es"})
			if err == nil {
				t.Fatal("expected error")
			}
			if KindOf(err) != KindBadGateway {
				t.Fatalf("kind = %v, want KindBadGateway", KindOf(err))
			}
			if DetailOf(err) != "Invalid response from translation service" {
				t.Fatalf("detail = %q", DetailOf(err))
			}
		})
	}
}

func TestLibreProviderClientTimeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		ts.Close()
	}()

	p := NewLibreProvider(ts.URL, 50*time.Millisecond)
	_, err := p.Translate(context.Background(), Request{Text: "Hello", Target: "es"})
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindGatewayTimeout {
		t.Fatalf("kind = %v, want KindGatewayTimeout", KindOf(err))
	}
	if DetailOf(err) != "Translation service timeout" {
		t.Fatalf("detail = %q", DetailOf(err))
	}
}

func TestLibreProviderContextDeadline(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		ts.Close()
	}()

	p := NewLibreProvider(ts.URL, time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := p.Translate(ctx, Request{Text: "Hello", Target: "es"})
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindGatewayTimeout {
		t.Fatalf("kind = %v, want KindGatewayTimeout", KindOf(err))
	}
}

func TestLibreProviderConnectionErrorIsInternal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := ts.URL
	ts.Close()

	p := NewLibreProvider(endpoint, time.Second)
	_, err := p.Translate(context.Background(), Request{Text: "Hello", Target: "es"})
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindInternal {
		t.Fatalf("kind = %v, want KindInternal", KindOf(err))
	}
	if DetailOf(err) == "" {
		t.Fatal("detail should carry the cause")
	}
}

func TestNewLibreProviderDefaults(t *testing.T) {
	p := NewLibreProvider("", 0)
	if p.endpoint != DefaultEndpoint {
		t.Fatalf("endpoint = %q, want %q", p.endpoint, DefaultEndpoint)
	}
	if p.client.Timeout != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", p.client.Timeout, DefaultTimeout)
	}
}
