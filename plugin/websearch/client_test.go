package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		apiKey:     "test-key",
		baseURL:    baseURL,
		maxResults: 5,
	}
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req["api_key"])
		assert.Equal(t, "latest election results", req["query"])

		w.Write([]byte(`{
			"query": "latest election results",
			"answer": "Counting is still underway.",
			"results": [
				{"title": "Election live blog", "url": "https://news.example/live", "content": "Votes are being counted.", "score": 0.97},
				{"title": "Results map", "url": "https://news.example/map", "content": "Interactive map of results.", "score": 0.91}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Search(context.Background(), "latest election results")
	require.NoError(t, err)

	assert.Equal(t, "Counting is still underway.", resp.Answer)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "Election live blog", resp.Results[0].Title)
	assert.Equal(t, "https://news.example/map", resp.Results[1].URL)
}

func TestClient_SearchCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		results := make([]map[string]string, 8)
		for i := range results {
			results[i] = map[string]string{"title": "t", "url": "u", "content": "c"}
		}
		json.NewEncoder(w).Encode(map[string]any{"results": results})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Len(t, resp.Results, 5)
}

func TestClient_SearchErrors(t *testing.T) {
	t.Run("empty query", func(t *testing.T) {
		_, err := newTestClient("http://unused").Search(context.Background(), "   ")
		assert.Error(t, err)
	})

	t.Run("missing api key", func(t *testing.T) {
		client := NewClient("")
		assert.False(t, client.IsConfigured())
		_, err := client.Search(context.Background(), "query")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("api failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid api key", http.StatusUnauthorized)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Search(context.Background(), "query")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})
}

func TestResponse_FormatContext(t *testing.T) {
	resp := &Response{
		Answer: "Short answer.",
		Results: []Result{
			{Title: "One", URL: "https://a.example", Content: "First snippet."},
			{Title: "Two", URL: "https://b.example", Content: "Second snippet."},
		},
	}

	formatted := resp.FormatContext()
	assert.Contains(t, formatted, "Answer summary: Short answer.")
	assert.Contains(t, formatted, "One (https://a.example)")
	assert.Contains(t, formatted, "Second snippet.")
}
