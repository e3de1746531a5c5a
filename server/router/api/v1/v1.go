// Package v1 implements the HTTP API: the streaming chat endpoint, the
// agent catalog and conversation management.
package v1

import (
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/semaphore"

	"github.com/praka2hb/synergi/internal/profile"
	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/ai/agent"
	"github.com/praka2hb/synergi/plugin/ai/router"
	apierrors "github.com/praka2hb/synergi/server/internal/errors"
	"github.com/praka2hb/synergi/store"
)

// userIDHeader carries the authenticated user id, set by the session
// layer in front of this API.
const userIDHeader = "x-user-id"

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Router  *router.Service
	Agents  *agent.Registry
	LLM     ai.LLMService

	// turnSemaphore caps concurrent streaming turns across all users.
	turnSemaphore *semaphore.Weighted
	// convLocks serializes turns per conversation. Entries are reference
	// counted and removed once the last holder releases.
	convMu    sync.Mutex
	convLocks map[string]*conversationLock
}

type conversationLock struct {
	mu   sync.Mutex
	refs int
}

// NewAPIV1Service creates the API service. llm may be nil when no model
// backend is configured; chat then fails with LLM_UNAVAILABLE while
// conversation management keeps working.
func NewAPIV1Service(profile *profile.Profile, st *store.Store, routerService *router.Service, agents *agent.Registry, llm ai.LLMService) *APIV1Service {
	maxTurns := int64(profile.MaxConcurrentTurns)
	if maxTurns <= 0 {
		maxTurns = 32
	}
	return &APIV1Service{
		Profile:       profile,
		Store:         st,
		Router:        routerService,
		Agents:        agents,
		LLM:           llm,
		turnSemaphore: semaphore.NewWeighted(maxTurns),
		convLocks:     map[string]*conversationLock{},
	}
}

// Register mounts all v1 routes on the given group.
func (s *APIV1Service) Register(g *echo.Group) {
	g.POST("/chat/stream", s.ChatStream)
	g.GET("/agents", s.ListAgents)

	g.GET("/conversations", s.ListConversations)
	g.GET("/conversations/:uid", s.GetConversation)
	g.GET("/conversations/:uid/messages", s.ListConversationMessages)
	g.PATCH("/conversations/:uid", s.UpdateConversation)
	g.DELETE("/conversations/:uid", s.DeleteConversation)
}

// ListAgents returns the static agent catalog.
func (s *APIV1Service) ListAgents(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"agents": s.Router.ListAgents(),
	})
}

// currentUserID extracts the authenticated user from the request.
func currentUserID(c echo.Context) (int32, *apierrors.ChatError) {
	raw := c.Request().Header.Get(userIDHeader)
	if raw == "" {
		return 0, apierrors.Unauthorized("missing user identity")
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, apierrors.Unauthorized("invalid user identity")
	}
	return int32(id), nil
}

// lockConversation serializes turns for one conversation UID. The
// returned release function must be called exactly once; the lock entry
// is dropped when no turn holds or awaits it.
func (s *APIV1Service) lockConversation(uid string) (release func()) {
	s.convMu.Lock()
	lock, ok := s.convLocks[uid]
	if !ok {
		lock = &conversationLock{}
		s.convLocks[uid] = lock
	}
	lock.refs++
	s.convMu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		s.convMu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(s.convLocks, uid)
		}
		s.convMu.Unlock()
	}
}

func jsonError(c echo.Context, chatErr *apierrors.ChatError) error {
	slog.Warn("request failed",
		"code", string(chatErr.Code),
		"path", c.Path(),
		"error", chatErr.Error())
	return c.JSON(chatErr.HTTPStatus(), map[string]any{
		"code":    string(chatErr.Code),
		"message": chatErr.Message,
	})
}
