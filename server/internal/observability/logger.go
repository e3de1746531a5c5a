// Package observability provides structured per-request logging.
package observability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// LogFieldRequestID is the field name for request ID.
	LogFieldRequestID = "request_id"
	// LogFieldUserID is the field name for user ID.
	LogFieldUserID = "user_id"
	// LogFieldAgentType is the field name for the routed agent.
	LogFieldAgentType = "agent_type"
	// LogFieldDuration is the field name for duration in milliseconds.
	LogFieldDuration = "duration_ms"
	// LogFieldConversation is the field name for the conversation UID.
	LogFieldConversation = "conversation_uid"
)

// RequestContext carries the identity of one chat turn through the
// orchestrator, tagging every log line with the same request id.
type RequestContext struct {
	RequestID string
	UserID    int32
	AgentType string
	StartTime time.Time
	Logger    *slog.Logger
}

// NewRequestContext creates a request context with a generated request ID.
func NewRequestContext(logger *slog.Logger, userID int32) *RequestContext {
	return &RequestContext{
		RequestID: uuid.New().String(),
		UserID:    userID,
		StartTime: time.Now(),
		Logger:    logger,
	}
}

// SetAgent records the routed agent once the decision is made.
func (r *RequestContext) SetAgent(agentType string) {
	r.AgentType = agentType
}

// Info logs an info message with the request's base fields.
func (r *RequestContext) Info(msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(context.Background(), slog.LevelInfo, msg, r.combined(attrs)...)
}

// Warn logs a warning with the request's base fields.
func (r *RequestContext) Warn(msg string, attrs ...slog.Attr) {
	r.Logger.LogAttrs(context.Background(), slog.LevelWarn, msg, r.combined(attrs)...)
}

// Error logs an error with the request's base fields.
func (r *RequestContext) Error(msg string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("error", err.Error()))
	r.Logger.LogAttrs(context.Background(), slog.LevelError, msg, r.combined(attrs)...)
}

// DurationMs returns the elapsed time in milliseconds.
func (r *RequestContext) DurationMs() int64 {
	return time.Since(r.StartTime).Milliseconds()
}

func (r *RequestContext) combined(attrs []slog.Attr) []slog.Attr {
	base := []slog.Attr{
		slog.String(LogFieldRequestID, r.RequestID),
		slog.Int64(LogFieldUserID, int64(r.UserID)),
	}
	if r.AgentType != "" {
		base = append(base, slog.String(LogFieldAgentType, r.AgentType))
	}
	return append(base, attrs...)
}
