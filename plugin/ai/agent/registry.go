package agent

import (
	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/ai/router"
	"github.com/praka2hb/synergi/plugin/sandbox"
	"github.com/praka2hb/synergi/plugin/weather"
	"github.com/praka2hb/synergi/plugin/websearch"
)

// Registry holds the adapter for each routing tag.
type Registry struct {
	agents map[router.AgentType]Agent
}

// NewRegistry wires the four adapters to their routing tags.
func NewRegistry(llm ai.LLMService, weatherClient *weather.Client, searchClient *websearch.Client, sandboxClient *sandbox.Client, maxToolSteps int) *Registry {
	return &Registry{agents: map[router.AgentType]Agent{
		router.AgentWeather:       NewWeatherAgent(llm, weatherClient),
		router.AgentWebSearch:     NewSearchAgent(llm, searchClient, maxToolSteps),
		router.AgentCodeAssistant: NewCoderAgent(llm, sandboxClient, maxToolSteps),
		router.AgentGeneral:       NewGeneralAgent(llm),
	}}
}

// Get returns the adapter for a routing tag, falling back to general.
func (r *Registry) Get(agent router.AgentType) Agent {
	if a, ok := r.agents[agent]; ok {
		return a
	}
	return r.agents[router.AgentGeneral]
}

// Register replaces the adapter for a tag. Tests use this to install
// fakes behind real routing decisions.
func (r *Registry) Register(agent router.AgentType, a Agent) {
	r.agents[agent] = a
}
