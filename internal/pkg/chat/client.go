package chat

import (
	"bytes"
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

const (
	MaxMessages      = 20
	MaxContentLength = 1000

	defaultMaxTokens = 300

	systemPrompt = "You are the shopping assistant for M Nas Online Mart, a Nigerian " +
		"e-commerce storefront. Answer questions about products, orders, delivery and " +
		"payments briefly and politely. If you do not know, say so and point the " +
		"customer to support."
)

// Upstream failures the handler maps to specific statuses.
var (
	ErrRateLimited = errors.New("ai gateway rate limit exceeded")
	ErrQuota       = errors.New("ai gateway quota exhausted")
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type completionRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewClientFromEnv() *Client {
	return &Client{
		APIKey:  strings.TrimSpace(env.GetEnv("AI_GATEWAY_API_KEY", "")),
		BaseURL: strings.TrimRight(env.GetEnv("AI_GATEWAY_BASE_URL", "https://api.openai.com/v1"), "/"),
		Model:   strings.TrimSpace(env.GetEnv("AI_GATEWAY_MODEL", "gpt-4o-mini")),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ValidateMessages enforces the proxy's input contract: role whitelist, at
// most MaxMessages entries, each content non-empty and at most
// MaxContentLength characters.
func ValidateMessages(messages []Message) error {
	if len(messages) == 0 {
		return errors.New("messages are required")
	}
	if len(messages) > MaxMessages {
		return fmt.Errorf("too many messages: at most %d are allowed", MaxMessages)
	}
	for i, m := range messages {
		switch m.Role {
		case "user", "assistant", "system":
		default:
			return fmt.Errorf("message %d has invalid role %q", i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return fmt.Errorf("message %d has empty content", i)
		}
		if len(m.Content) > MaxContentLength {
			return fmt.Errorf("message %d exceeds %d characters", i, MaxContentLength)
		}
	}
	return nil
}

// Complete forwards the conversation to the AI gateway with the storefront
// system prompt prepended and returns the assistant reply.
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return "", errors.New("AI_GATEWAY_API_KEY is not configured")
	}
	if err := ValidateMessages(messages); err != nil {
		return "", err
	}

	payload, err := json.Marshal(completionRequest{
		Model:     c.Model,
		Messages:  append([]Message{{Role: "system", Content: systemPrompt}}, messages...),
		MaxTokens: defaultMaxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", ErrRateLimited
	case resp.StatusCode == http.StatusPaymentRequired:
		return "", ErrQuota
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("ai gateway request failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out completionResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("ai gateway returned no choices")
	}
	return out.Choices[0].Message.Content, nil
}
