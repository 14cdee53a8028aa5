package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClient_GenerateParsesChoice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Fatalf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hola!"}}]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", "test-model", nil)
	reply, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if reply != "hola!" {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestHTTPClient_GenerateFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":{"message":"overloaded"}}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", "test-model", nil)
	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error on http 503")
	}
}

func TestHTTPClient_GenerateFailsOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":{"message":"bad model"}}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", "test-model", nil)
	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error on api error body")
	}
}

func TestHTTPClient_GenerateFailsOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, "test-key", "test-model", nil)
	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error on empty choices")
	}
}
