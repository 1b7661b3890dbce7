// Package remote calls the hosted language-model extraction service and
// sanitizes its output into the same shape the local engine produces.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/brightsteps/scribe/internal/engine"
)

// taskExtraction is the task discriminator the extraction service expects.
const taskExtraction = "session_note_extraction"

// StatusError is returned for non-2xx upstream responses so callers can
// classify the failure by status class.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("extraction service returned %d: %s", e.Code, e.Body)
}

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type request struct {
	Task string `json:"task"`
	Text string `json:"text"`
}

// Extract sends the raw utterance to the extraction service and returns the
// sanitized structured result. Transport and status failures are returned as
// errors; malformed success payloads are not — they degrade field-by-field.
func (c *Client) Extract(ctx context.Context, text string) (*engine.ParsedInput, error) {
	body, err := json.Marshal(request{Task: taskExtraction, Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/extract", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	parsed := Sanitize(respBody)
	return &parsed, nil
}
