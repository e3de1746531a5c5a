package agent

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/websearch"
)

// SearchArgs are the arguments of the web_search tool.
type SearchArgs struct {
	Query string `json:"query"`
}

// SearchAgent answers time-sensitive questions by searching the web
// inside a bounded tool loop.
type SearchAgent struct {
	llm      ai.LLMService
	search   *websearch.Client
	maxSteps int
}

var _ Agent = (*SearchAgent)(nil)

// NewSearchAgent creates the web search adapter. maxSteps bounds the tool
// loop; zero means the default.
func NewSearchAgent(llm ai.LLMService, search *websearch.Client, maxSteps int) *SearchAgent {
	return &SearchAgent{llm: llm, search: search, maxSteps: maxSteps}
}

func (a *SearchAgent) Name() string { return "web_search" }

func (a *SearchAgent) Stream(ctx context.Context, turn *Turn, callback EventCallback) error {
	loop := newToolLoop(a.llm, []Tool{a.searchTool()}, a.maxSteps)
	messages := ai.FormatMessages(searchPrompt, turn.UserInput, turn.History)
	_, err := loop.run(ctx, messages, callback)
	return err
}

func (a *SearchAgent) searchTool() Tool {
	return Tool{
		Spec: ai.ToolSpec{
			Name:        "web_search",
			Description: "Search the web for current, factual information. Returns ranked results with source URLs.",
			Parameters: objectSchema(map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query",
				},
			}, "query"),
		},
		Run: func(ctx context.Context, raw string) (string, error) {
			var args SearchArgs
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				return "", errors.Wrap(err, "parse web_search arguments")
			}
			resp, err := a.search.Search(ctx, args.Query)
			if err != nil {
				return "", err
			}
			return resp.FormatContext(), nil
		},
	}
}
