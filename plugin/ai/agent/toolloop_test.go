package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praka2hb/synergi/plugin/ai"
)

// eventRecorder collects every event an adapter emits, in order.
type eventRecorder struct {
	events []Event
}

func (r *eventRecorder) callback(event Event) error {
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

func echoTool(name string) Tool {
	return Tool{
		Spec: ai.ToolSpec{Name: name, Description: "echo", Parameters: objectSchema(nil)},
		Run: func(_ context.Context, args string) (string, error) {
			return "echo:" + args, nil
		},
	}
}

func TestToolLoop_CallThenAnswer(t *testing.T) {
	llm := &ai.MockLLM{
		ToolTurns: []*ai.ToolTurn{
			{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "lookup", Arguments: `{"q": "rain"}`}}},
			{Content: "It will rain."},
		},
	}

	loop := newToolLoop(llm, []Tool{echoTool("lookup")}, 5)
	rec := &eventRecorder{}

	final, err := loop.run(context.Background(), []ai.Message{ai.UserMessage("rain?")}, rec.callback)
	require.NoError(t, err)
	assert.Equal(t, "It will rain.", final)

	require.Equal(t, []EventType{EventToolCall, EventToolResult, EventTextDelta}, rec.types())
	assert.Equal(t, "lookup", rec.events[0].ToolCall.Name)
	assert.Equal(t, "rain", rec.events[0].ToolCall.Arguments["q"])
	assert.True(t, rec.events[1].ToolResult.Success)
	assert.Equal(t, `echo:{"q": "rain"}`, rec.events[1].ToolResult.Content)
}

func TestToolLoop_ToolFailureContinues(t *testing.T) {
	failing := Tool{
		Spec: ai.ToolSpec{Name: "flaky", Description: "fails", Parameters: objectSchema(nil)},
		Run: func(context.Context, string) (string, error) {
			return "", assert.AnError
		},
	}
	llm := &ai.MockLLM{
		ToolTurns: []*ai.ToolTurn{
			{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "flaky", Arguments: "{}"}}},
			{Content: "Could not verify, but here is what I know."},
		},
	}

	loop := newToolLoop(llm, []Tool{failing}, 5)
	rec := &eventRecorder{}

	final, err := loop.run(context.Background(), nil, rec.callback)
	require.NoError(t, err)
	assert.NotEmpty(t, final)

	require.Equal(t, []EventType{EventToolCall, EventToolResult, EventTextDelta}, rec.types())
	assert.False(t, rec.events[1].ToolResult.Success)
	assert.Contains(t, rec.events[1].ToolResult.Content, "tool failed")
}

func TestToolLoop_UnknownToolReportedAsFailure(t *testing.T) {
	llm := &ai.MockLLM{
		ToolTurns: []*ai.ToolTurn{
			{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "nonexistent", Arguments: "{}"}}},
			{Content: "done"},
		},
	}

	loop := newToolLoop(llm, []Tool{echoTool("lookup")}, 5)
	rec := &eventRecorder{}

	_, err := loop.run(context.Background(), nil, rec.callback)
	require.NoError(t, err)
	assert.False(t, rec.events[1].ToolResult.Success)
	assert.Contains(t, rec.events[1].ToolResult.Content, "unknown tool")
}

func TestToolLoop_StepBudgetForcesAnswer(t *testing.T) {
	// The model keeps asking for tools; after maxSteps the loop makes one
	// final call without tools.
	llm := &ai.MockLLM{
		ToolTurns: []*ai.ToolTurn{
			{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "lookup", Arguments: "{}"}}},
			{ToolCalls: []ai.ToolCall{{ID: "c2", Name: "lookup", Arguments: "{}"}}},
			{ToolCalls: []ai.ToolCall{{ID: "c3", Name: "lookup", Arguments: "{}"}}},
		},
		ChatResponse: "Best effort answer.",
	}

	loop := newToolLoop(llm, []Tool{echoTool("lookup")}, 2)
	rec := &eventRecorder{}

	final, err := loop.run(context.Background(), nil, rec.callback)
	require.NoError(t, err)
	assert.Equal(t, "Best effort answer.", final)

	// Two loop steps ran, then the forced answer.
	assert.Equal(t, []EventType{
		EventToolCall, EventToolResult,
		EventToolCall, EventToolResult,
		EventTextDelta,
	}, rec.types())
}

func TestToolLoop_CallbackErrorAborts(t *testing.T) {
	llm := &ai.MockLLM{
		ToolTurns: []*ai.ToolTurn{
			{ToolCalls: []ai.ToolCall{{ID: "c1", Name: "lookup", Arguments: "{}"}}},
		},
	}

	loop := newToolLoop(llm, []Tool{echoTool("lookup")}, 5)
	_, err := loop.run(context.Background(), nil, func(Event) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}
