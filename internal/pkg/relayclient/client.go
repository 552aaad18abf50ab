package relayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ds124wfegd/animegen/internal/entity"
)

const generatePath = "/api/generate"

// Client talks to the relay's generate endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Generate posts the image and returns the relay's answer. Any non-2xx
// status is reported as entity.ErrGenerateFailed.
func (c *Client) Generate(ctx context.Context, image entity.Payload) (entity.GenerateResponse, error) {
	body, err := json.Marshal(entity.GenerateRequest{Image: image})
	if err != nil {
		return entity.GenerateResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return entity.GenerateResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.GenerateResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entity.GenerateResponse{}, entity.ErrGenerateFailed
	}

	var out entity.GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return entity.GenerateResponse{}, fmt.Errorf("decode relay response: %w", err)
	}
	return out, nil
}
