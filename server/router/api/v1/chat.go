package v1

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/ai/agent"
	"github.com/praka2hb/synergi/plugin/ai/router"
	apierrors "github.com/praka2hb/synergi/server/internal/errors"
	"github.com/praka2hb/synergi/server/internal/observability"
	"github.com/praka2hb/synergi/store"
)

const (
	historyLimit   = 20
	apologyContent = "I'm sorry, I ran into a problem answering that. Please try again."
)

type chatStreamRequest struct {
	Message         string `json:"message"`
	ConversationUID string `json:"conversation_uid"`
}

// ChatStream executes one chat turn and streams it as server-sent
// events: conversation, user_message, agent_selected, ai_start, then
// deltas and tool activity, then ai_complete, an optional
// title_generated, and done. Failures before generation starts emit a
// single error event instead.
func (s *APIV1Service) ChatStream(c echo.Context) error {
	ctx := c.Request().Context()

	var req chatStreamRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, apierrors.InvalidArgument("malformed request body"))
	}

	userID, chatErr := currentUserID(c)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}

	stream := newSSEWriter(c)

	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return sendError(stream, apierrors.InvalidArgument("empty message"))
	}
	if s.LLM == nil {
		return sendError(stream, apierrors.LLMUnavailable("no model backend configured"))
	}
	if !s.turnSemaphore.TryAcquire(1) {
		return sendError(stream, apierrors.TooManyRequests("too many concurrent turns"))
	}
	defer s.turnSemaphore.Release(1)

	reqCtx := observability.NewRequestContext(slog.Default(), userID)

	conversation, chatErr := s.resolveConversation(ctx, userID, req.ConversationUID)
	if chatErr != nil {
		return sendError(stream, chatErr)
	}

	// One turn at a time per conversation keeps message order stable.
	release := s.lockConversation(conversation.UID)
	defer release()

	if err := stream.Send(eventConversation, toConversationDTO(conversation)); err != nil {
		return nil
	}

	userMessage, err := s.Store.CreateMessage(ctx, &store.Message{
		ConversationID: conversation.ID,
		Role:           store.MessageRoleUser,
		Content:        req.Message,
	})
	if err != nil {
		return sendError(stream, apierrors.Internal("failed to persist message", err))
	}
	if err := stream.Send(eventUserMessage, toMessageDTO(userMessage)); err != nil {
		return nil
	}

	history, chatErr := s.loadHistory(ctx, conversation.ID, userMessage.ID)
	if chatErr != nil {
		return sendError(stream, chatErr)
	}

	decision := s.Router.Route(ctx, req.Message, historyTexts(history))
	reqCtx.SetAgent(string(decision.Agent))
	if err := stream.Send(eventAgentSelected, decision); err != nil {
		return nil
	}
	if err := stream.Send(eventAIStart, map[string]any{"agent": decision.Agent}); err != nil {
		return nil
	}

	result := s.runAgent(ctx, reqCtx, stream, decision, req.Message, history)

	metadata := result.metadata
	metadata["agent"] = string(decision.Agent)
	metadata["agent_name"] = decision.AgentName
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		metadataJSON = []byte("{}")
	}

	assistantMessage, err := s.Store.CreateMessage(ctx, &store.Message{
		ConversationID: conversation.ID,
		Role:           store.MessageRoleAssistant,
		Content:        result.content,
		Metadata:       string(metadataJSON),
	})
	if err != nil {
		return sendError(stream, apierrors.Internal("failed to persist message", err))
	}
	if err := stream.Send(eventAIComplete, toMessageDTO(assistantMessage)); err != nil {
		return nil
	}

	s.finishConversation(ctx, reqCtx, stream, conversation, decision, req.Message)

	reqCtx.Info("chat turn complete",
		slog.String(observability.LogFieldConversation, conversation.UID),
		slog.Int64(observability.LogFieldDuration, reqCtx.DurationMs()),
		slog.Bool("agent_failed", result.failed))

	return stream.Send(eventDone, map[string]any{})
}

// agentResult is what one adapter run leaves behind.
type agentResult struct {
	content  string
	metadata map[string]any
	failed   bool
}

// runAgent drives the selected adapter, forwarding its events to the
// stream and folding structured payloads into the metadata accumulator.
// Adapter failure degrades to an apology instead of killing the stream.
func (s *APIV1Service) runAgent(ctx context.Context, reqCtx *observability.RequestContext, stream *sseWriter, decision *router.Decision, message string, history []ai.Message) *agentResult {
	result := &agentResult{metadata: map[string]any{}}
	var content strings.Builder

	selected := s.Agents.Get(decision.Agent)
	err := selected.Stream(ctx, &agent.Turn{
		UserInput: message,
		History:   history,
		Location:  decision.Location,
	}, func(event agent.Event) error {
		switch event.Type {
		case agent.EventTextDelta:
			content.WriteString(event.Text)
			return stream.Send(eventAIChunk, map[string]any{"text": event.Text})
		case agent.EventToolCall:
			foldToolCall(result.metadata, event.ToolCall)
			return stream.Send(eventToolCall, event.ToolCall)
		case agent.EventToolResult:
			foldToolResult(result.metadata, event.ToolResult)
			return stream.Send(eventToolResult, event.ToolResult)
		case agent.EventWeatherData:
			result.metadata["weather"] = event.Weather
			return stream.Send(eventWeatherData, event.Weather)
		default:
			return nil
		}
	})

	result.content = content.String()
	if err != nil {
		reqCtx.Error("agent execution failed", err)
		result.failed = true
		result.metadata["error"] = err.Error()
		if result.content == "" {
			result.content = apologyContent
			_ = stream.Send(eventAIChunk, map[string]any{"text": apologyContent})
		}
	}
	return result
}

// foldToolCall captures structured arguments worth persisting with the
// assistant message.
func foldToolCall(metadata map[string]any, call *agent.ToolCallData) {
	switch call.Name {
	case "execute_code":
		if code, ok := call.Arguments["code"].(string); ok {
			metadata["code"] = code
		}
		if language, ok := call.Arguments["language"].(string); ok {
			metadata["language"] = language
		}
	case "generate_ui":
		if markup, ok := call.Arguments["markup"].(string); ok {
			metadata["ui_markup"] = markup
		}
		if framework, ok := call.Arguments["framework"].(string); ok {
			metadata["ui_framework"] = framework
		}
	}
}

func foldToolResult(metadata map[string]any, result *agent.ToolResultData) {
	if result.Name == "execute_code" && result.Success {
		metadata["code_output"] = result.Content
	}
}

// resolveConversation loads the referenced conversation or creates a
// fresh one for the caller.
func (s *APIV1Service) resolveConversation(ctx context.Context, userID int32, uid string) (*store.Conversation, *apierrors.ChatError) {
	if uid == "" {
		conversation, err := s.Store.CreateConversation(ctx, &store.Conversation{CreatorID: userID})
		if err != nil {
			return nil, apierrors.Internal("failed to create conversation", err)
		}
		return conversation, nil
	}

	conversation, err := s.Store.GetConversation(ctx, &store.FindConversation{UID: &uid})
	if err != nil {
		return nil, apierrors.Internal("failed to load conversation", err)
	}
	if conversation == nil || conversation.CreatorID != userID {
		return nil, apierrors.NotFound("conversation not found")
	}
	return conversation, nil
}

// loadHistory returns the turn history before the current user message.
func (s *APIV1Service) loadHistory(ctx context.Context, conversationID int32, currentMessageID int32) ([]ai.Message, *apierrors.ChatError) {
	messages, err := s.Store.ListMessages(ctx, &store.FindMessage{ConversationID: &conversationID})
	if err != nil {
		return nil, apierrors.Internal("failed to load history", err)
	}

	history := make([]ai.Message, 0, len(messages))
	for _, m := range messages {
		if m.ID == currentMessageID {
			continue
		}
		history = append(history, ai.Message{Role: roleToWire(m.Role), Content: m.Content})
	}
	if len(history) > historyLimit {
		history = history[len(history)-historyLimit:]
	}
	return history, nil
}

// historyTexts extracts prior user inputs for the classifier.
func historyTexts(history []ai.Message) []string {
	texts := make([]string, 0, len(history))
	for _, m := range history {
		if m.Role == "user" {
			texts = append(texts, m.Content)
		}
	}
	return texts
}

// finishConversation stamps the routed agent, bumps the update time and
// generates a title after the first exchange.
func (s *APIV1Service) finishConversation(ctx context.Context, reqCtx *observability.RequestContext, stream *sseWriter, conversation *store.Conversation, decision *router.Decision, message string) {
	agentID := string(decision.Agent)
	update := &store.UpdateConversation{ID: conversation.ID, AgentID: &agentID}

	if conversation.Title == "" {
		title := GenerateTitle(message)
		update.Title = &title
	}

	updated, err := s.Store.UpdateConversation(ctx, update)
	if err != nil {
		reqCtx.Warn("failed to finalize conversation",
			slog.String(observability.LogFieldConversation, conversation.UID),
			slog.String("error", err.Error()))
		return
	}
	if update.Title != nil {
		_ = stream.Send(eventTitleGenerated, map[string]any{"title": updated.Title})
	}
}

func sendError(stream *sseWriter, chatErr *apierrors.ChatError) error {
	slog.Warn("chat stream aborted",
		"code", string(chatErr.Code),
		"error", chatErr.Error())
	return stream.Send(eventError, map[string]any{
		"code":    string(chatErr.Code),
		"message": chatErr.Message,
	})
}
