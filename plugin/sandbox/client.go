// Package sandbox wraps a remote code-execution sandbox service.
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ExecResult is the outcome of one sandboxed run. A non-empty Error
// means the code failed inside the sandbox; that is a result, not a
// transport failure.
type ExecResult struct {
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Error  string `json:"error,omitempty"`
}

// Client submits code to the sandbox service over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a sandbox client for the given base URL. Runs can
// take a while, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// IsConfigured reports whether a sandbox URL is set.
func (c *Client) IsConfigured() bool {
	return c.baseURL != ""
}

type execRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

// Execute runs code in the sandbox and returns its captured output.
func (c *Client) Execute(ctx context.Context, language, code string) (*ExecResult, error) {
	if c.baseURL == "" {
		return nil, errors.New("sandbox URL not configured")
	}
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("empty code")
	}
	if language == "" {
		language = "python"
	}

	body, err := json.Marshal(execRequest{Language: language, Code: code})
	if err != nil {
		return nil, errors.Wrap(err, "marshal exec request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/execute", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create exec request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "exec request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read exec response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("sandbox status %d: %s", resp.StatusCode, string(respBody))
	}

	var result ExecResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.Wrap(err, "decode exec response")
	}
	return &result, nil
}
