package agent

import (
	"context"

	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/ai/signal"
)

// GeneralAgent handles open conversation. It is also the fallback when
// routing cannot pick a specialist.
type GeneralAgent struct {
	llm ai.LLMService
}

var _ Agent = (*GeneralAgent)(nil)

// NewGeneralAgent creates the general conversation adapter.
func NewGeneralAgent(llm ai.LLMService) *GeneralAgent {
	return &GeneralAgent{llm: llm}
}

func (a *GeneralAgent) Name() string { return "general" }

// Stream generates a conversational reply, tuning tone to the detected
// emotion of the message.
func (a *GeneralAgent) Stream(ctx context.Context, turn *Turn, callback EventCallback) error {
	prompt := generalPrompt + emotionHint(signal.DetectEmotion(turn.UserInput))
	messages := ai.FormatMessages(prompt, turn.UserInput, turn.History)
	_, err := streamLLM(ctx, a.llm, messages, callback)
	return err
}
