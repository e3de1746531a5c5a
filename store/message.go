package store

type MessageRole string

const (
	MessageRoleUser      MessageRole = "USER"
	MessageRoleAssistant MessageRole = "ASSISTANT"
	MessageRoleSystem    MessageRole = "SYSTEM"
)

// Message is one persisted chat message. Metadata is a JSON object
// carrying agent attribution and any structured payloads folded in
// during streaming (weather report, generated code, UI component).
type Message struct {
	ID             int32
	UID            string
	ConversationID int32
	Role           MessageRole
	Content        string
	Metadata       string
	CreatedTs      int64
}

type FindMessage struct {
	ID             *int32
	UID            *string
	ConversationID *int32
	Limit          *int
	Offset         *int
}

type DeleteMessage struct {
	ID             *int32
	ConversationID *int32
}
