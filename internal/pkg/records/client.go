package records

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mnasmart/onlinemart/internal/pkg/env"
)

const maxObjectKeyLength = 50

// ErrInvalidObjectKey is returned when a key fails sanitization.
var ErrInvalidObjectKey = errors.New("objectKey must be alphanumeric/underscore, at most 50 characters")

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(env.GetEnv("RECORDS_API_URL", ""), "/"),
		APIKey:  strings.TrimSpace(env.GetEnv("RECORDS_API_KEY", "")),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SanitizeObjectKey strips everything but [A-Za-z0-9_] and truncates to the
// maximum length. Callers must reject keys whose sanitized form differs from
// the input: the key is interpolated into the upstream request path, so a key
// that needed sanitizing is treated as hostile rather than repaired.
func SanitizeObjectKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
		if b.Len() >= maxObjectKeyLength {
			break
		}
	}
	return b.String()
}

// ValidObjectKey reports whether the key survives sanitization unchanged.
func ValidObjectKey(key string) bool {
	return key != "" && SanitizeObjectKey(key) == key
}

// Fetch retrieves the records stored under the object key from the upstream
// API.
func (c *Client) Fetch(ctx context.Context, objectKey string) (json.RawMessage, error) {
	if strings.TrimSpace(c.BaseURL) == "" {
		return nil, errors.New("RECORDS_API_URL is not configured")
	}
	if !ValidObjectKey(objectKey) {
		return nil, ErrInvalidObjectKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/"+objectKey, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("records request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var records json.RawMessage
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}
