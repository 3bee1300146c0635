package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestValidateMessages(t *testing.T) {
	ok := func(n, contentLen int) []Message {
		msgs := make([]Message, n)
		for i := range msgs {
			msgs[i] = Message{Role: "user", Content: strings.Repeat("a", contentLen)}
		}
		return msgs
	}

	tests := []struct {
		name    string
		msgs    []Message
		wantErr bool
	}{
		{name: "empty", msgs: nil, wantErr: true},
		{name: "single", msgs: ok(1, 10), wantErr: false},
		{name: "exactly 20 messages", msgs: ok(20, 10), wantErr: false},
		{name: "21 messages", msgs: ok(21, 10), wantErr: true},
		{name: "exactly 1000 chars", msgs: ok(1, 1000), wantErr: false},
		{name: "1001 chars", msgs: ok(1, 1001), wantErr: true},
		{name: "assistant role", msgs: []Message{{Role: "assistant", Content: "hi"}}, wantErr: false},
		{name: "system role", msgs: []Message{{Role: "system", Content: "hi"}}, wantErr: false},
		{name: "bad role", msgs: []Message{{Role: "tool", Content: "hi"}}, wantErr: true},
		{name: "blank content", msgs: []Message{{Role: "user", Content: "   "}}, wantErr: true},
	}

	for _, tt := range tests {
		err := ValidateMessages(tt.msgs)
		if tt.wantErr && err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
		if !tt.wantErr && err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
	}
}

func newTestClient(baseURL string) *Client {
	return &Client{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "test-model",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"We deliver within 3 days."}}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "How fast is delivery?"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "We deliver within 3 days." {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestComplete_UpstreamErrors(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{status: http.StatusTooManyRequests, wantErr: ErrRateLimited},
		{status: http.StatusPaymentRequired, wantErr: ErrQuota},
	}

	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))

		client := newTestClient(srv.URL)
		_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("status %d: got %v, want %v", tt.status, err, tt.wantErr)
		}
		srv.Close()
	}
}

func TestComplete_GenericUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	if err == nil || errors.Is(err, ErrRateLimited) || errors.Is(err, ErrQuota) {
		t.Fatalf("expected generic upstream error, got %v", err)
	}
}
