package paystack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestToKobo(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{in: 100, want: 10000},
		{in: 100.00, want: 10000},
		{in: 0.01, want: 1},
		{in: 1234.56, want: 123456},
		{in: 0.005, want: 1},
		{in: 0.004, want: 0},
	}

	for _, tt := range tests {
		if got := ToKobo(tt.in); got != tt.want {
			t.Fatalf("ToKobo(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func newTestClient(baseURL string) *Client {
	return &Client{
		SecretKey:  "sk_test_secret",
		APIBaseURL: baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestInitializeTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/initialize" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk_test_secret" {
			t.Fatalf("unexpected authorization header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{
			"authorization_url":"https://checkout.paystack.com/abc123",
			"access_code":"abc123",
			"reference":"mnas_ref"
		}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	out, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:      "buyer@example.com",
		AmountKobo: 10000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AuthorizationURL != "https://checkout.paystack.com/abc123" {
		t.Fatalf("unexpected authorization url %q", out.AuthorizationURL)
	}
	if out.Reference != "mnas_ref" {
		t.Fatalf("unexpected reference %q", out.Reference)
	}
}

func TestInitializeTransaction_Validation(t *testing.T) {
	client := newTestClient("http://unused")
	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{AmountKobo: 100}); err == nil {
		t.Fatalf("expected missing email to fail")
	}
	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{Email: "a@b.com"}); err == nil {
		t.Fatalf("expected zero amount to fail")
	}
}

func TestInitializeTransaction_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":false,"message":"Invalid key"}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	if _, err := client.InitializeTransaction(context.Background(), InitializeRequest{
		Email:      "buyer@example.com",
		AmountKobo: 10000,
	}); err == nil {
		t.Fatalf("expected upstream failure to surface")
	}
}

func TestResolveAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bank/resolve" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("account_number") != "1234567890" || q.Get("bank_code") != "058" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":true,"message":"Account number resolved","data":{
			"account_number":"1234567890",
			"account_name":"ADA OBI",
			"bank_id":9
		}}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	out, err := client.ResolveAccount(context.Background(), "1234567890", "058")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.AccountName != "ADA OBI" || out.BankID != 9 {
		t.Fatalf("unexpected result %+v", out)
	}
}
