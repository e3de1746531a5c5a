package router

import (
	"context"
	"log/slog"
	"time"
)

// AgentMeta is the static display metadata of one registered agent. This is
// data, not logic; it exists so clients can render which capability answers.
type AgentMeta struct {
	ID          AgentType `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Emoji       string    `json:"emoji"`
	Active      bool      `json:"active"`
}

// agentRegistry holds the static metadata in evaluation order.
var agentRegistry = []AgentMeta{
	{
		ID:          AgentWeather,
		Name:        "Weather",
		Description: "Live conditions and forecasts grounded in real data",
		Emoji:       "🌦️",
		Active:      true,
	},
	{
		ID:          AgentWebSearch,
		Name:        "Web Search",
		Description: "Real-time information from the web with cited sources",
		Emoji:       "🔎",
		Active:      true,
	},
	{
		ID:          AgentCodeAssistant,
		Name:        "Code Assistant",
		Description: "Writes and runs code, builds UI previews",
		Emoji:       "💻",
		Active:      true,
	},
	{
		ID:          AgentGeneral,
		Name:        "Assistant",
		Description: "General conversation and reasoning",
		Emoji:       "💬",
		Active:      true,
	},
}

// MetaFor looks up registry metadata for an agent tag. Unknown tags
// resolve to the general agent's metadata.
func MetaFor(agent AgentType) AgentMeta {
	for _, meta := range agentRegistry {
		if meta.ID == agent {
			return meta
		}
	}
	return MetaFor(AgentGeneral)
}

// Decision is a routing decision joined with its display metadata.
type Decision struct {
	RoutingDecision
	AgentName string `json:"agent_name"`
}

// Service is the single routing entry point consumed by the orchestrator.
// It wraps a pluggable Classifier and normalizes the result shape.
type Service struct {
	classifier Classifier
}

// NewService creates a router service around the given classifier strategy.
func NewService(classifier Classifier) *Service {
	return &Service{classifier: classifier}
}

// Route classifies the input and attaches display metadata.
func (s *Service) Route(ctx context.Context, input string, history []string) *Decision {
	start := time.Now()
	decision := s.classifier.Classify(ctx, input, history)
	meta := MetaFor(decision.Agent)
	// Normalize: the decision's tag always reflects the metadata we serve.
	decision.Agent = meta.ID

	slog.Info("chat routed",
		"agent", decision.Agent,
		"confidence", decision.Confidence,
		"latency_ms", time.Since(start).Milliseconds())

	return &Decision{
		RoutingDecision: *decision,
		AgentName:       meta.Name,
	}
}

// ListAgents returns the static metadata of every registered agent.
func (s *Service) ListAgents() []AgentMeta {
	agents := make([]AgentMeta, len(agentRegistry))
	copy(agents, agentRegistry)
	return agents
}
