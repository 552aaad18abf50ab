package toonify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ds124wfegd/animegen/internal/entity"
)

const DefaultURL = "https://api.deepai.org/api/toonify"

// Transformer turns an image payload into a reference to the styled image.
type Transformer interface {
	Transform(ctx context.Context, image entity.Payload) (entity.Payload, error)
}

// StatusError is returned when the upstream answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d, body: %s", e.StatusCode, e.Body)
}

// Client calls the DeepAI toonify endpoint.
type Client struct {
	httpClient *http.Client
	url        string
	apiKey     string
}

// NewClient creates a client. A nil httpClient means http.DefaultClient, so
// only the transport's own I/O timeouts apply.
func NewClient(httpClient *http.Client, url, apiKey string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		httpClient: httpClient,
		url:        url,
		apiKey:     apiKey,
	}
}

// Transform sends the payload upstream once and returns its output_url.
func (c *Client) Transform(ctx context.Context, image entity.Payload) (entity.Payload, error) {
	body, err := json.Marshal(entity.GenerateRequest{Image: image})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		OutputURL string `json:"output_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if result.OutputURL == "" {
		return "", entity.ErrEmptyOutput
	}

	return entity.Payload(result.OutputURL), nil
}
