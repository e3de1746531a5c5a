package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apierrors "github.com/praka2hb/synergi/server/internal/errors"
	"github.com/praka2hb/synergi/store"
)

// ConversationDTO is the wire shape of a conversation. Title is null
// until one has been generated.
type ConversationDTO struct {
	UID       string  `json:"uid"`
	Title     *string `json:"title"`
	AgentID   string  `json:"agent_id,omitempty"`
	CreatedTs int64   `json:"created_ts"`
	UpdatedTs int64   `json:"updated_ts"`
}

// MessageDTO is the wire shape of a message. Metadata is the raw JSON
// object persisted with the row.
type MessageDTO struct {
	UID       string          `json:"uid"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedTs int64           `json:"created_ts"`
}

func toConversationDTO(c *store.Conversation) *ConversationDTO {
	dto := &ConversationDTO{
		UID:       c.UID,
		AgentID:   c.AgentID,
		CreatedTs: c.CreatedTs,
		UpdatedTs: c.UpdatedTs,
	}
	if c.Title != "" {
		title := c.Title
		dto.Title = &title
	}
	return dto
}

func toMessageDTO(m *store.Message) *MessageDTO {
	metadata := m.Metadata
	if metadata == "" {
		metadata = "{}"
	}
	return &MessageDTO{
		UID:       m.UID,
		Role:      roleToWire(m.Role),
		Content:   m.Content,
		Metadata:  json.RawMessage(metadata),
		CreatedTs: m.CreatedTs,
	}
}

// roleToWire maps storage roles onto the lowercase role domain the API
// and the model prompt use.
func roleToWire(role store.MessageRole) string {
	switch role {
	case store.MessageRoleAssistant:
		return "assistant"
	case store.MessageRoleSystem:
		return "system"
	default:
		return "user"
	}
}

// pageParams parses optional limit/offset query parameters. Offset is
// respected only together with a limit, matching the store drivers.
func pageParams(c echo.Context) (*int, *int) {
	var limit, offset *int
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil && v > 0 {
		limit = &v
	}
	if v, err := strconv.Atoi(c.QueryParam("offset")); err == nil && v > 0 {
		offset = &v
	}
	return limit, offset
}

// findOwnedConversation loads a conversation by UID and checks ownership.
func (s *APIV1Service) findOwnedConversation(c echo.Context, userID int32) (*store.Conversation, *apierrors.ChatError) {
	uid := c.Param("uid")
	if uid == "" {
		return nil, apierrors.InvalidArgument("missing conversation uid")
	}
	conversation, err := s.Store.GetConversation(c.Request().Context(), &store.FindConversation{UID: &uid})
	if err != nil {
		return nil, apierrors.Internal("failed to load conversation", err)
	}
	if conversation == nil || conversation.CreatorID != userID {
		// Same answer for missing and foreign rows.
		return nil, apierrors.NotFound("conversation not found")
	}
	return conversation, nil
}

// ListConversations returns the caller's conversations, newest first.
func (s *APIV1Service) ListConversations(c echo.Context) error {
	userID, chatErr := currentUserID(c)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}

	find := &store.FindConversation{CreatorID: &userID}
	find.Limit, find.Offset = pageParams(c)
	list, err := s.Store.ListConversations(c.Request().Context(), find)
	if err != nil {
		return jsonError(c, apierrors.Internal("failed to list conversations", err))
	}

	dtos := make([]*ConversationDTO, 0, len(list))
	for _, conversation := range list {
		dtos = append(dtos, toConversationDTO(conversation))
	}
	return c.JSON(http.StatusOK, map[string]any{"conversations": dtos})
}

// GetConversation returns one conversation.
func (s *APIV1Service) GetConversation(c echo.Context) error {
	userID, chatErr := currentUserID(c)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}
	conversation, chatErr := s.findOwnedConversation(c, userID)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}
	return c.JSON(http.StatusOK, toConversationDTO(conversation))
}

// ListConversationMessages returns a conversation's messages in order.
func (s *APIV1Service) ListConversationMessages(c echo.Context) error {
	userID, chatErr := currentUserID(c)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}
	conversation, chatErr := s.findOwnedConversation(c, userID)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}

	find := &store.FindMessage{ConversationID: &conversation.ID}
	find.Limit, find.Offset = pageParams(c)
	messages, err := s.Store.ListMessages(c.Request().Context(), find)
	if err != nil {
		return jsonError(c, apierrors.Internal("failed to list messages", err))
	}

	dtos := make([]*MessageDTO, 0, len(messages))
	for _, message := range messages {
		dtos = append(dtos, toMessageDTO(message))
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": dtos})
}

type updateConversationRequest struct {
	Title *string `json:"title"`
}

// UpdateConversation renames a conversation.
func (s *APIV1Service) UpdateConversation(c echo.Context) error {
	userID, chatErr := currentUserID(c)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}
	conversation, chatErr := s.findOwnedConversation(c, userID)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}

	var req updateConversationRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, apierrors.InvalidArgument("malformed request body"))
	}
	if req.Title == nil {
		return jsonError(c, apierrors.InvalidArgument("nothing to update"))
	}

	updated, err := s.Store.UpdateConversation(c.Request().Context(), &store.UpdateConversation{
		ID:    conversation.ID,
		Title: req.Title,
	})
	if err != nil {
		return jsonError(c, apierrors.Internal("failed to update conversation", err))
	}
	return c.JSON(http.StatusOK, toConversationDTO(updated))
}

// DeleteConversation removes a conversation and its messages.
func (s *APIV1Service) DeleteConversation(c echo.Context) error {
	userID, chatErr := currentUserID(c)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}
	conversation, chatErr := s.findOwnedConversation(c, userID)
	if chatErr != nil {
		return jsonError(c, chatErr)
	}

	if err := s.Store.DeleteConversation(c.Request().Context(), &store.DeleteConversation{ID: conversation.ID}); err != nil {
		return jsonError(c, apierrors.Internal("failed to delete conversation", err))
	}
	return c.NoContent(http.StatusNoContent)
}
