package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mnasmart/onlinemart/internal/pkg/env"
)

const defaultAPIBaseURL = "https://api.paystack.co"

type Client struct {
	SecretKey  string
	APIBaseURL string

	HTTPClient *http.Client
}

type InitializeRequest struct {
	Email       string                 `json:"email"`
	AmountKobo  int64                  `json:"amount"`
	Reference   string                 `json:"reference,omitempty"`
	CallbackURL string                 `json:"callback_url,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type ResolveAccountResult struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
	BankID        int    `json:"bank_id"`
}

// apiEnvelope is the common Paystack response wrapper.
type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func NewClientFromEnv() *Client {
	return &Client{
		SecretKey:  strings.TrimSpace(env.GetEnv("PAYSTACK_SECRET_KEY", "")),
		APIBaseURL: strings.TrimRight(env.GetEnv("PAYSTACK_API_BASE_URL", defaultAPIBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ToKobo converts an amount in major currency units (Naira) to the minor
// units (kobo) Paystack expects, rounding to the nearest kobo.
func ToKobo(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// InitializeTransaction starts a hosted checkout and returns the
// authorization URL the buyer is redirected to.
func (c *Client) InitializeTransaction(ctx context.Context, in InitializeRequest) (*InitializeResult, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("PAYSTACK_SECRET_KEY is not configured")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, errors.New("email is required")
	}
	if in.AmountKobo <= 0 {
		return nil, errors.New("amount must be greater than zero")
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	data, err := c.post(ctx, "/transaction/initialize", payload)
	if err != nil {
		return nil, err
	}

	var out InitializeResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.AuthorizationURL) == "" {
		return nil, errors.New("paystack initialize returned empty authorization_url")
	}
	return &out, nil
}

// ResolveAccount verifies a bank account number against a bank code and
// returns the registered account name.
func (c *Client) ResolveAccount(ctx context.Context, accountNumber, bankCode string) (*ResolveAccountResult, error) {
	if strings.TrimSpace(c.SecretKey) == "" {
		return nil, errors.New("PAYSTACK_SECRET_KEY is not configured")
	}

	q := url.Values{}
	q.Set("account_number", strings.TrimSpace(accountNumber))
	q.Set("bank_code", strings.TrimSpace(bankCode))

	data, err := c.get(ctx, "/bank/resolve?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var out ResolveAccountResult
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) get(ctx context.Context, path string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("Authorization", "Bearer "+c.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))

	var envl apiEnvelope
	if err := json.Unmarshal(body, &envl); err != nil {
		return nil, fmt.Errorf("paystack request failed: status=%d body=%s", resp.StatusCode, string(body))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !envl.Status {
		msg := envl.Message
		if msg == "" {
			msg = string(body)
		}
		return nil, fmt.Errorf("paystack request failed: status=%d message=%s", resp.StatusCode, msg)
	}
	return envl.Data, nil
}
