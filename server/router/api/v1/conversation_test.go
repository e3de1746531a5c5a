package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praka2hb/synergi/plugin/ai/router"
	"github.com/praka2hb/synergi/store"
)

func doJSON(t *testing.T, svc *APIV1Service, method, path, userID, body string, paramUID string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if paramUID != "" {
		c.SetParamNames("uid")
		c.SetParamValues(paramUID)
	}

	var handler echo.HandlerFunc
	switch {
	case method == http.MethodGet && paramUID == "":
		handler = svc.ListConversations
	case method == http.MethodGet && strings.HasSuffix(path, "/messages"):
		handler = svc.ListConversationMessages
	case method == http.MethodGet:
		handler = svc.GetConversation
	case method == http.MethodPatch:
		handler = svc.UpdateConversation
	case method == http.MethodDelete:
		handler = svc.DeleteConversation
	default:
		t.Fatalf("no handler for %s %s", method, path)
	}
	require.NoError(t, handler(c))
	return rec
}

func TestListConversations(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	ctx := context.Background()

	mine, err := svc.Store.CreateConversation(ctx, &store.Conversation{CreatorID: 1, Title: "Mine"})
	require.NoError(t, err)
	_, err = svc.Store.CreateConversation(ctx, &store.Conversation{CreatorID: 2, Title: "Theirs"})
	require.NoError(t, err)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/conversations", "1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Conversations []ConversationDTO `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Conversations, 1)
	assert.Equal(t, mine.UID, payload.Conversations[0].UID)
	require.NotNil(t, payload.Conversations[0].Title)
	assert.Equal(t, "Mine", *payload.Conversations[0].Title)
}

func TestListConversationsPagination(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	ctx := context.Background()

	uids := make([]string, 0, 3)
	for _, title := range []string{"First", "Second", "Third"} {
		conversation, err := svc.Store.CreateConversation(ctx, &store.Conversation{CreatorID: 1, Title: title})
		require.NoError(t, err)
		uids = append(uids, conversation.UID)
	}

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/conversations?limit=1&offset=1", "1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Conversations []ConversationDTO `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Conversations, 1)
	// Newest first; the offset lands on the middle conversation.
	assert.Equal(t, uids[1], payload.Conversations[0].UID)
}

func TestGetConversationNullTitle(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	conversation, err := svc.Store.CreateConversation(context.Background(), &store.Conversation{CreatorID: 1})
	require.NoError(t, err)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/conversations/"+conversation.UID, "1", "", conversation.UID)
	require.Equal(t, http.StatusOK, rec.Code)

	// Title must serialize as JSON null until one is generated.
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["title"]))
}

func TestGetConversationHidesForeignRows(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	conversation, err := svc.Store.CreateConversation(context.Background(), &store.Conversation{CreatorID: 1})
	require.NoError(t, err)

	for _, uid := range []string{conversation.UID, "does-not-exist"} {
		rec := doJSON(t, svc, http.MethodGet, "/api/v1/conversations/"+uid, "2", "", uid)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
		assert.Equal(t, "NOT_FOUND", payload["code"])
	}
}

func TestListConversationMessages(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	ctx := context.Background()

	conversation, err := svc.Store.CreateConversation(ctx, &store.Conversation{CreatorID: 1})
	require.NoError(t, err)
	_, err = svc.Store.CreateMessage(ctx, &store.Message{
		ConversationID: conversation.ID,
		Role:           store.MessageRoleUser,
		Content:        "hello",
	})
	require.NoError(t, err)
	_, err = svc.Store.CreateMessage(ctx, &store.Message{
		ConversationID: conversation.ID,
		Role:           store.MessageRoleAssistant,
		Content:        "hi",
		Metadata:       `{"agent":"general"}`,
	})
	require.NoError(t, err)

	rec := doJSON(t, svc, http.MethodGet, "/api/v1/conversations/"+conversation.UID+"/messages", "1", "", conversation.UID)
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Messages []MessageDTO `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Messages, 2)
	assert.Equal(t, "user", payload.Messages[0].Role)
	assert.Equal(t, "{}", string(payload.Messages[0].Metadata))
	assert.Equal(t, "assistant", payload.Messages[1].Role)
	assert.JSONEq(t, `{"agent":"general"}`, string(payload.Messages[1].Metadata))
}

func TestRoleToWire(t *testing.T) {
	tests := []struct {
		role store.MessageRole
		want string
	}{
		{store.MessageRoleUser, "user"},
		{store.MessageRoleAssistant, "assistant"},
		{store.MessageRoleSystem, "system"},
		{store.MessageRole("SOMETHING_ELSE"), "user"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roleToWire(tt.role))
	}
}

func TestUpdateConversationTitle(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	conversation, err := svc.Store.CreateConversation(context.Background(), &store.Conversation{CreatorID: 1, Title: "Old"})
	require.NoError(t, err)

	rec := doJSON(t, svc, http.MethodPatch, "/api/v1/conversations/"+conversation.UID, "1",
		`{"title":"Renamed"}`, conversation.UID)
	require.Equal(t, http.StatusOK, rec.Code)

	var dto ConversationDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	require.NotNil(t, dto.Title)
	assert.Equal(t, "Renamed", *dto.Title)

	rec = doJSON(t, svc, http.MethodPatch, "/api/v1/conversations/"+conversation.UID, "1", `{}`, conversation.UID)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteConversationCascades(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})
	ctx := context.Background()

	conversation, err := svc.Store.CreateConversation(ctx, &store.Conversation{CreatorID: 1})
	require.NoError(t, err)
	_, err = svc.Store.CreateMessage(ctx, &store.Message{
		ConversationID: conversation.ID,
		Role:           store.MessageRoleUser,
		Content:        "hello",
	})
	require.NoError(t, err)

	rec := doJSON(t, svc, http.MethodDelete, "/api/v1/conversations/"+conversation.UID, "1", "", conversation.UID)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	got, err := svc.Store.GetConversation(ctx, &store.FindConversation{UID: &conversation.UID})
	require.NoError(t, err)
	assert.Nil(t, got)

	messages, err := svc.Store.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestListAgentsEndpoint(t *testing.T) {
	svc := newTestService(&router.RoutingDecision{Agent: router.AgentGeneral})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/agents", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, svc.ListAgents(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Agents []router.AgentMeta `json:"agents"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload.Agents, 4)
	assert.Equal(t, router.AgentWeather, payload.Agents[0].ID)
	assert.Equal(t, router.AgentGeneral, payload.Agents[3].ID)
}
