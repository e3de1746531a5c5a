package v1

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Stream event names, in the order a successful turn emits them.
const (
	eventConversation   = "conversation"
	eventUserMessage    = "user_message"
	eventAgentSelected  = "agent_selected"
	eventAIStart        = "ai_start"
	eventAIChunk        = "ai_chunk"
	eventToolCall       = "tool_call"
	eventToolResult     = "tool_result"
	eventWeatherData    = "weather_data"
	eventAIComplete     = "ai_complete"
	eventTitleGenerated = "title_generated"
	eventDone           = "done"
	eventError          = "error"
)

// sseWriter emits named server-sent events over an echo response.
type sseWriter struct {
	response *echo.Response
}

func newSSEWriter(c echo.Context) *sseWriter {
	response := c.Response()
	header := response.Header()
	header.Set(echo.HeaderContentType, "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	response.WriteHeader(http.StatusOK)
	return &sseWriter{response: response}
}

// Send writes one named event with a JSON payload and flushes it.
func (w *sseWriter) Send(event string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "marshal %s event", event)
	}
	if _, err := w.response.Write([]byte("event: " + event + "\ndata: " + string(data) + "\n\n")); err != nil {
		return errors.Wrapf(err, "write %s event", event)
	}
	w.response.Flush()
	return nil
}
