package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// tavilyRequest is the request body for the Tavily search API.
type tavilyRequest struct {
	APIKey        string `json:"api_key"`
	Query         string `json:"query"`
	SearchDepth   string `json:"search_depth,omitempty"` // basic or advanced
	IncludeAnswer bool   `json:"include_answer,omitempty"`
	MaxResults    int    `json:"max_results,omitempty"`
}

// tavilyResponse is the response body from the Tavily search API.
type tavilyResponse struct {
	Answer  string         `json:"answer,omitempty"`
	Query   string         `json:"query"`
	Results []tavilyResult `json:"results"`
}

// tavilyResult is a single search result.
type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// WebSearchOptions configures the web search tool.
type WebSearchOptions struct {
	// APIKey authenticates against the Tavily API.
	APIKey string
	// MaxResults bounds the number of results included in the summary.
	MaxResults int
	// SearchDepth is "basic" or "advanced".
	SearchDepth string
	// HTTPClient is the client used for API calls. The tool owns its client
	// lifecycle; callers override it for custom transports or tests.
	HTTPClient *http.Client
	// Endpoint overrides the search API URL.
	Endpoint string
}

// NewWebSearchTool returns a tool that searches the web via the Tavily API
// and returns a formatted summary of the top results.
func NewWebSearchTool(optFns ...func(o *WebSearchOptions)) *FunctionTool {
	opts := WebSearchOptions{
		MaxResults:  5,
		SearchDepth: "basic",
		HTTPClient:  &http.Client{Timeout: 30 * time.Second},
		Endpoint:    tavilyEndpoint,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return NewFunctionTool(
		"web_search",
		"Search the web for current information. Returns relevant search results with summaries and URLs.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query to execute",
				},
			},
			"required": []string{"query"},
		},
		func(ctx context.Context, args map[string]any) (any, error) {
			query, _ := args["query"].(string)
			if opts.APIKey == "" {
				return nil, fmt.Errorf("web search is not configured: set TAVILY_API_KEY")
			}
			resp, err := searchTavily(ctx, opts, query)
			if err != nil {
				return nil, err
			}
			return formatSearchResults(resp), nil
		},
	)
}

func searchTavily(ctx context.Context, opts WebSearchOptions, query string) (*tavilyResponse, error) {
	body, err := json.Marshal(tavilyRequest{
		APIKey:        opts.APIKey,
		Query:         query,
		SearchDepth:   opts.SearchDepth,
		IncludeAnswer: true,
		MaxResults:    opts.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.Endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := opts.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var out tavilyResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return &out, nil
}

// formatSearchResults renders the answer plus numbered results as plain text.
func formatSearchResults(resp *tavilyResponse) string {
	var b strings.Builder
	if resp.Answer != "" {
		b.WriteString(resp.Answer)
		b.WriteString("\n\n")
	}
	if len(resp.Results) == 0 && resp.Answer == "" {
		return "No results found."
	}
	for i, r := range resp.Results {
		fmt.Fprintf(&b, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.Content, r.URL)
	}
	return strings.TrimSpace(b.String())
}
