package router

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// LLMClient is the one-call completion interface the delegated classifier
// needs. Kept narrow so tests can stub it.
type LLMClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIClient implements LLMClient over an OpenAI-compatible API using a
// small, cheap model; classification output is a single JSON object.
type OpenAIClient struct {
	client *openai.Client
	model  string
}

// OpenAIClientConfig holds configuration for the classification client.
type OpenAIClientConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAIClient creates a classification LLM client.
func NewOpenAIClient(cfg OpenAIClientConfig) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   256,
		Temperature: 0.1, // near-deterministic for classification
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// routingInstruction is the fixed contract sent to the classification model.
const routingInstruction = `You are a routing classifier for a chat assistant. Classify the user's message into exactly one agent category:

- weather: any question about weather conditions or weather gear (umbrella, jacket, raincoat), temperature, rain, snow, forecasts. Always route weather-gear and weather-condition questions here. When the message names a location, extract it.
- web_search: any question needing real-time or time-sensitive information: news, scores, prices, current events, anything about "latest" or "today".
- code_assistant: any request to write, run, execute, or debug code, or to build a UI artifact (page, component, form).
- general: everything else (conversation, explanations, advice, creative writing).

Respond with a single JSON object and nothing else:
{"agent": "<weather|web_search|code_assistant|general>", "confidence": <0..1>, "reason": "<short justification>", "extractedCity": "<location or omit>"}`

// DelegatedClassifier obtains a routing decision from an external language
// model in one round-trip. It is the terminal error boundary for routing:
// every failure path degrades into a safe general fallback, never an error.
type DelegatedClassifier struct {
	client  LLMClient
	timeout time.Duration
}

// NewDelegatedClassifier creates a delegated classifier.
func NewDelegatedClassifier(client LLMClient) *DelegatedClassifier {
	return &DelegatedClassifier{
		client:  client,
		timeout: 10 * time.Second,
	}
}

type delegatedResponse struct {
	Agent         string  `json:"agent"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
	ExtractedCity string  `json:"extractedCity"`
}

// Classify implements Classifier. History is accepted for interface parity
// but the instruction contract is over the current message alone.
func (c *DelegatedClassifier) Classify(ctx context.Context, input string, _ []string) *RoutingDecision {
	if c.client == nil {
		return fallbackDecision("classifier not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	response, err := c.client.Complete(ctx, routingInstruction, input)
	if err != nil {
		slog.Warn("delegated classification call failed", "error", err)
		return fallbackDecision("classification call failed: " + err.Error())
	}

	raw, err := extractJSONObject(response)
	if err != nil {
		slog.Warn("delegated classification returned no JSON", "error", err)
		return fallbackDecision("unparsable response: " + err.Error())
	}

	var parsed delegatedResponse
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return fallbackDecision("invalid JSON: " + err.Error())
	}

	agent := AgentType(strings.ToLower(strings.TrimSpace(parsed.Agent)))
	if !agent.IsValid() {
		mapped, ok := ParseAgentType(string(agent))
		if !ok {
			return fallbackDecision("unknown agent tag: " + parsed.Agent)
		}
		agent = mapped
	}

	decision := &RoutingDecision{
		Agent:      agent,
		Confidence: clampConfidence(parsed.Confidence),
		Reason:     parsed.Reason,
		Location:   strings.TrimSpace(parsed.ExtractedCity),
	}
	slog.Debug("intent classified by delegated model",
		"agent", decision.Agent,
		"confidence", decision.Confidence,
		"latency_ms", time.Since(start).Milliseconds())
	return decision
}

// fallbackDecision is the safe default when classification cannot complete.
func fallbackDecision(cause string) *RoutingDecision {
	return &RoutingDecision{
		Agent:      AgentGeneral,
		Confidence: 0.5,
		Reason:     "Fallback: " + cause,
	}
}

func clampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

// extractJSONObject strips markdown code fences and returns the first
// balanced JSON object found by bracket matching. Brace characters inside
// string literals are skipped.
func extractJSONObject(response string) (string, error) {
	response = strings.TrimSpace(response)
	if strings.HasPrefix(response, "```") {
		lines := strings.Split(response, "\n")
		var kept []string
		inFence := false
		for _, line := range lines {
			if strings.HasPrefix(strings.TrimSpace(line), "```") {
				inFence = !inFence
				continue
			}
			if inFence {
				kept = append(kept, line)
			}
		}
		if len(kept) > 0 {
			response = strings.Join(kept, "\n")
		}
	}

	start := strings.IndexByte(response, '{')
	if start < 0 {
		return "", fmt.Errorf("no JSON object found")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(response); i++ {
		ch := response[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return response[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object")
}
