package records

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestSanitizeObjectKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "object_2", want: "object_2"},
		{in: "Object_Key_9", want: "Object_Key_9"},
		{in: "object-2; DROP", want: "object2DROP"},
		{in: "../etc/passwd", want: "etcpasswd"},
		{in: "", want: ""},
		{in: strings.Repeat("a", 60), want: strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		if got := SanitizeObjectKey(tt.in); got != tt.want {
			t.Fatalf("SanitizeObjectKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidObjectKey(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "object_2", want: true},
		{in: "object-2; DROP", want: false},
		{in: "", want: false},
		{in: strings.Repeat("a", 50), want: true},
		{in: strings.Repeat("a", 51), want: false},
	}

	for _, tt := range tests {
		if got := ValidObjectKey(tt.in); got != tt.want {
			t.Fatalf("ValidObjectKey(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/object_2" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1},{"id":2}]`))
	}))
	defer srv.Close()

	client := &Client{
		BaseURL:    srv.URL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
	out, err := client.Fetch(context.Background(), "object_2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out) != `[{"id":1},{"id":2}]` {
		t.Fatalf("unexpected records %s", out)
	}
}

func TestFetch_RejectsInvalidKey(t *testing.T) {
	client := &Client{
		BaseURL:    "http://unused",
		HTTPClient: &http.Client{Timeout: time.Second},
	}
	_, err := client.Fetch(context.Background(), "object-2; DROP")
	if !errors.Is(err, ErrInvalidObjectKey) {
		t.Fatalf("expected ErrInvalidObjectKey, got %v", err)
	}
}
