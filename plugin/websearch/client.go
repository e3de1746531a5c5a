// Package websearch wraps the Tavily search API for real-time lookups.
package websearch

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

const (
	defaultBaseURL    = "https://api.tavily.com"
	defaultMaxResults = 5
	maxQueryLength    = 1000
)

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// Response carries the hits plus Tavily's direct answer when available.
type Response struct {
	Query   string   `json:"query"`
	Answer  string   `json:"answer,omitempty"`
	Results []Result `json:"results"`
}

// Client calls the Tavily search API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	maxResults int
}

// NewClient creates a search client. The API key may be empty; Search
// then fails with a configuration error at call time.
func NewClient(apiKey string) *Client {
	return NewClientWithBaseURL(apiKey, defaultBaseURL)
}

// NewClientWithBaseURL creates a search client against a custom endpoint.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
		maxResults: defaultMaxResults,
	}
}

// IsConfigured reports whether an API key is present.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type searchRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth"`
	IncludeAnswer bool   `json:"include_answer"`
	MaxResults    int    `json:"max_results"`
}

type searchResponse struct {
	Answer  string `json:"answer"`
	Query   string `json:"query"`
	Results []struct {
		Title   string  `json:"title"`
		URL     string  `json:"url"`
		Content string  `json:"content"`
		Score   float64 `json:"score"`
	} `json:"results"`
}

// Search runs one query and returns at most five results.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("empty search query")
	}
	if len(query) > maxQueryLength {
		query = query[:maxQueryLength]
	}
	if c.apiKey == "" {
		return nil, errors.New("search API key not configured")
	}

	body, err := json.Marshal(searchRequest{
		APIKey:        c.apiKey,
		Query:         query,
		SearchDepth:   "basic",
		IncludeAnswer: true,
		MaxResults:    c.maxResults,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal search request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create search request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "search request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read search response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("search API status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed searchResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, errors.Wrap(err, "decode search response")
	}

	out := &Response{Query: query, Answer: parsed.Answer}
	for i, r := range parsed.Results {
		if i >= c.maxResults {
			break
		}
		out.Results = append(out.Results, Result{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return out, nil
}

// FormatContext renders results as a grounding block for an LLM prompt.
func (r *Response) FormatContext() string {
	var b strings.Builder
	if r.Answer != "" {
		b.WriteString("Answer summary: ")
		b.WriteString(r.Answer)
		b.WriteString("\n\n")
	}
	for i, result := range r.Results {
		b.WriteString(strings.TrimSpace(result.Title))
		b.WriteString(" (")
		b.WriteString(result.URL)
		b.WriteString(")\n")
		content := result.Content
		if len(content) > 400 {
			content = content[:400] + "..."
		}
		b.WriteString(content)
		if i < len(r.Results)-1 {
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
