package agent

import (
	"context"

	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/plugin/ai"
)

// DefaultMaxToolSteps bounds the tool loop when no limit is configured.
const DefaultMaxToolSteps = 5

// Tool pairs a declared tool spec with its executor. Run receives the raw
// JSON argument object the model emitted.
type Tool struct {
	Spec ai.ToolSpec
	Run  func(ctx context.Context, args string) (string, error)
}

// toolLoop drives a bounded function-calling conversation. Each model turn
// either finishes with content or requests tool calls; every call is
// announced, executed and answered before the model generates again. Tool
// failures are reported to the model as results, not raised, so a single
// bad call does not end the turn.
type toolLoop struct {
	llm      ai.LLMService
	tools    []Tool
	maxSteps int
}

func newToolLoop(llm ai.LLMService, tools []Tool, maxSteps int) *toolLoop {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxToolSteps
	}
	return &toolLoop{llm: llm, tools: tools, maxSteps: maxSteps}
}

func (l *toolLoop) run(ctx context.Context, messages []ai.Message, callback EventCallback) (string, error) {
	specs := make([]ai.ToolSpec, 0, len(l.tools))
	for _, tool := range l.tools {
		specs = append(specs, tool.Spec)
	}

	for step := 0; step < l.maxSteps; step++ {
		turn, err := l.llm.ChatWithTools(ctx, messages, specs)
		if err != nil {
			return "", errors.Wrap(err, "tool loop turn")
		}

		if len(turn.ToolCalls) == 0 {
			if turn.Content != "" {
				if err := callback(Event{Type: EventTextDelta, Text: turn.Content}); err != nil {
					return turn.Content, err
				}
			}
			return turn.Content, nil
		}

		messages = append(messages, ai.Message{
			Role:      "assistant",
			Content:   turn.Content,
			ToolCalls: turn.ToolCalls,
		})

		for _, call := range turn.ToolCalls {
			if err := callback(Event{Type: EventToolCall, ToolCall: &ToolCallData{
				ID:        call.ID,
				Name:      call.Name,
				Arguments: parseArguments(call.Arguments),
			}}); err != nil {
				return "", err
			}

			content, runErr := l.dispatch(ctx, call)
			success := runErr == nil
			if runErr != nil {
				content = "tool failed: " + runErr.Error()
			}

			if err := callback(Event{Type: EventToolResult, ToolResult: &ToolResultData{
				ID:      call.ID,
				Name:    call.Name,
				Success: success,
				Content: content,
			}}); err != nil {
				return "", err
			}

			messages = append(messages, ai.ToolResultMessage(call, content))
		}
	}

	// Step budget spent. One last turn without tools forces an answer from
	// whatever the model has gathered.
	final, err := l.llm.Chat(ctx, messages)
	if err != nil {
		return "", errors.Wrap(err, "tool loop final turn")
	}
	if final != "" {
		if err := callback(Event{Type: EventTextDelta, Text: final}); err != nil {
			return final, err
		}
	}
	return final, nil
}

func (l *toolLoop) dispatch(ctx context.Context, call ai.ToolCall) (string, error) {
	for _, tool := range l.tools {
		if tool.Spec.Name == call.Name {
			return tool.Run(ctx, call.Arguments)
		}
	}
	return "", errors.Errorf("unknown tool %q", call.Name)
}

// objectSchema builds the JSON-schema parameter object for a tool spec.
func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
