// Package agent implements the capability adapters behind the chat router.
// Each adapter turns one user message into an ordered stream of typed
// events: text deltas, tool activity and structured payloads. The
// orchestrator forwards these events to the client and folds selected
// payloads into the persisted message metadata.
package agent

import (
	"context"
	"encoding/json"

	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/weather"
)

// EventType identifies one kind of adapter event.
type EventType string

const (
	// EventTextDelta carries one increment of generated text.
	EventTextDelta EventType = "text_delta"
	// EventToolCall announces a tool invocation before it runs.
	EventToolCall EventType = "tool_call"
	// EventToolResult carries the outcome of a tool invocation. It always
	// follows the matching EventToolCall.
	EventToolResult EventType = "tool_result"
	// EventWeatherData carries a structured weather report, emitted before
	// any text deltas narrate it.
	EventWeatherData EventType = "weather_data"
)

// ToolCallData describes a tool invocation.
type ToolCallData struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// ToolResultData describes a tool outcome. Success false means the tool
// failed; the loop continues and the model sees the failure text.
type ToolResultData struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Success bool   `json:"success"`
	Content string `json:"content"`
}

// Event is one element of an adapter's output stream. Exactly one
// payload field is set, matching Type.
type Event struct {
	Type       EventType       `json:"type"`
	Text       string          `json:"text,omitempty"`
	ToolCall   *ToolCallData   `json:"tool_call,omitempty"`
	ToolResult *ToolResultData `json:"tool_result,omitempty"`
	Weather    *weather.Report `json:"weather,omitempty"`
}

// EventCallback receives adapter events in order. Returning an error
// aborts the adapter run.
type EventCallback func(event Event) error

// Turn is the input to one adapter run.
type Turn struct {
	UserInput string
	History   []ai.Message
	// Location is the slot extracted by the classifier, when present.
	Location string
}

// Agent is a capability adapter.
type Agent interface {
	// Name returns the adapter's stable identifier.
	Name() string

	// Stream executes the turn, delivering events through callback. The
	// returned error means the adapter could not produce an answer; any
	// events already delivered remain valid.
	Stream(ctx context.Context, turn *Turn, callback EventCallback) error
}

// streamLLM forwards model deltas through the callback and returns the
// accumulated text.
func streamLLM(ctx context.Context, llm ai.LLMService, messages []ai.Message, callback EventCallback) (string, error) {
	contentChan, errChan := llm.ChatStream(ctx, messages)

	var accumulated []byte
	for contentChan != nil || errChan != nil {
		select {
		case chunk, ok := <-contentChan:
			if !ok {
				contentChan = nil
				continue
			}
			accumulated = append(accumulated, chunk...)
			if err := callback(Event{Type: EventTextDelta, Text: chunk}); err != nil {
				return string(accumulated), err
			}
		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			if err != nil {
				return string(accumulated), err
			}
		case <-ctx.Done():
			return string(accumulated), ctx.Err()
		}
	}
	return string(accumulated), nil
}

// parseArguments decodes a model-emitted JSON argument object. Malformed
// arguments yield an empty map rather than an error; the tool itself
// reports what is missing.
func parseArguments(raw string) map[string]any {
	args := map[string]any{}
	if raw == "" {
		return args
	}
	_ = json.Unmarshal([]byte(raw), &args)
	return args
}
