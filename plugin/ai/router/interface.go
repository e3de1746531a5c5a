// Package router decides which agent answers a chat message. Two classifier
// strategies implement the same interface: a deterministic multi-signal
// engine over intent clusters, and a delegated single-call LLM classifier.
// The orchestrator wires the delegated one live; the deterministic engine
// stays available as an offline evaluator and fallback strategy.
package router

import "context"

// AgentType identifies one of the four response-generating capabilities.
type AgentType string

const (
	AgentWeather       AgentType = "weather"
	AgentWebSearch     AgentType = "web_search"
	AgentCodeAssistant AgentType = "code_assistant"
	AgentGeneral       AgentType = "general"
)

// canonicalAgents is the closed set of routable agents, in evaluation order.
var canonicalAgents = []AgentType{AgentWeather, AgentWebSearch, AgentCodeAssistant, AgentGeneral}

// IsValid reports whether t is one of the four canonical agent tags.
func (t AgentType) IsValid() bool {
	switch t {
	case AgentWeather, AgentWebSearch, AgentCodeAssistant, AgentGeneral:
		return true
	}
	return false
}

func (t AgentType) String() string {
	return string(t)
}

// ParseAgentType maps a raw string (possibly a near-miss emitted by a model)
// to a canonical agent tag.
func ParseAgentType(s string) (AgentType, bool) {
	switch AgentType(s) {
	case AgentWeather, AgentWebSearch, AgentCodeAssistant, AgentGeneral:
		return AgentType(s), true
	}
	// Tolerated aliases.
	switch s {
	case "search", "websearch", "web-search":
		return AgentWebSearch, true
	case "code", "coder", "code-assistant":
		return AgentCodeAssistant, true
	case "chat", "default":
		return AgentGeneral, true
	}
	return AgentGeneral, false
}

// RoutingDecision is the per-turn outcome of classification. It is not
// persisted standalone; the agent tag and display name are folded into the
// assistant message's metadata.
type RoutingDecision struct {
	Agent      AgentType `json:"agent"`
	Confidence float64   `json:"confidence"` // 0..1
	Reason     string    `json:"reason"`
	// Location is the extracted place name for weather routing, when present.
	Location string `json:"location,omitempty"`
}

// Classifier is the pluggable routing strategy. Implementations never fail:
// any internal error degrades into a low-confidence general decision.
type Classifier interface {
	Classify(ctx context.Context, input string, history []string) *RoutingDecision
}
