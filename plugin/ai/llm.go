package ai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sashabaranov/go-openai"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant, tool
	Content string

	// ToolCalls is set on assistant messages that requested tool use.
	ToolCalls []ToolCall
	// ToolCallID and Name are set on tool messages carrying a result back.
	ToolCallID string
	Name       string
}

// ToolCall is a model-initiated invocation of a declared tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string // raw JSON argument object as emitted by the model
}

// ToolSpec declares a tool the model may call, with a JSON-schema parameter
// description.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  any
}

// ToolTurn is one model response inside a tool loop: either final content,
// or one or more tool calls to satisfy before generating again.
type ToolTurn struct {
	Content   string
	ToolCalls []ToolCall
}

// LLMService is the LLM service interface.
type LLMService interface {
	// Chat performs synchronous chat.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatStream performs streaming chat. The content channel closes when
	// the stream ends; the error channel carries at most one error.
	ChatStream(ctx context.Context, messages []Message) (<-chan string, <-chan error)

	// ChatWithTools performs one non-streaming turn with tools declared.
	ChatWithTools(ctx context.Context, messages []Message, tools []ToolSpec) (*ToolTurn, error)
}

type llmService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewLLMService creates a new LLMService backed by an OpenAI-compatible API.
func NewLLMService(cfg *LLMConfig) (LLMService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	applyDefaults(cfg)
	return &llmService{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

func (s *llmService) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    convertMessages(messages),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func (s *llmService) ChatStream(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	contentChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(contentChan)
		defer close(errChan)

		stream, err := s.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
			Model:       s.model,
			MaxTokens:   s.maxTokens,
			Temperature: s.temperature,
			Messages:    convertMessages(messages),
			Stream:      true,
		})
		if err != nil {
			errChan <- err
			return
		}
		defer stream.Close()

		for {
			chunk, err := stream.Recv()
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errChan <- err
				}
				return
			}
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			select {
			case contentChan <- delta:
			case <-ctx.Done():
				return
			}
		}
	}()

	return contentChan, errChan
}

func (s *llmService) ChatWithTools(ctx context.Context, messages []Message, tools []ToolSpec) (*ToolTurn, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
		Messages:    convertMessages(messages),
	}
	for _, tool := range tools {
		req.Tools = append(req.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response")
	}

	choice := resp.Choices[0].Message
	turn := &ToolTurn{Content: choice.Content}
	for _, call := range choice.ToolCalls {
		turn.ToolCalls = append(turn.ToolCalls, ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return turn, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	converted := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msg := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			Name:       m.Name,
			ToolCallID: m.ToolCallID,
		}
		for _, call := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		converted = append(converted, msg)
	}
	return converted
}

// SystemPrompt creates a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage creates a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// AssistantMessage creates an assistant message.
func AssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// ToolResultMessage creates a tool message answering the given call.
func ToolResultMessage(call ToolCall, content string) Message {
	return Message{Role: "tool", Content: content, ToolCallID: call.ID, Name: call.Name}
}

// FormatMessages assembles a prompt from a system prompt, prior history and
// the current user content.
func FormatMessages(systemPrompt string, userContent string, history []Message) []Message {
	messages := []Message{}
	if systemPrompt != "" {
		messages = append(messages, SystemPrompt(systemPrompt))
	}
	messages = append(messages, history...)
	messages = append(messages, UserMessage(userContent))
	return messages
}
