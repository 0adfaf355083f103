package groq

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
)

// DefaultEndpoint is the Groq OpenAI-compatible chat completions URL.
const DefaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// Client calls the Groq chat completions API: one user prompt in, one answer
// string out.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client

	// Stats records completion call latencies for the stats endpoint.
	Stats *Stats
}

func NewClient(endpoint, apiKey, model string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		Stats:      NewStats(time.Hour),
	}
}

func (c *Client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete submits prompt as a single user message and returns the completion
// text. Non-200 backend responses come back as *APIError with the raw
// response body preserved so rate-limit and payload-size markers stay
// recognizable by callers.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("groq api: %w", err)
	}
	defer resp.Body.Close()
	c.Stats.Record(time.Since(start).Milliseconds())

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", fmt.Errorf("groq error: %s: %s", apiResp.Error.Type, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", errors.New("empty response from groq")
	}

	return apiResp.Choices[0].Message.Content, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// APIError is a non-200 response from the completion backend. Body carries
// the backend's message text unmodified.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("groq api status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// IsRateOrSizeLimit reports whether err is the backend rejecting a request
// for rate or payload-size reasons, recognized by the markers Groq puts in
// its error messages. Callers use this to turn the failure into "ask a more
// specific question" guidance.
func IsRateOrSizeLimit(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	msg := err.Error()
	if errors.As(err, &apiErr) {
		msg = apiErr.Body
	}
	return strings.Contains(msg, "rate_limit_exceeded") || strings.Contains(msg, "Request too large")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
