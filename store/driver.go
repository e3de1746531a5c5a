package store

import (
	"context"
	"database/sql"
)

// Driver is the database access interface. Each backend implements the
// full set of model operations.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	// Migrate brings the schema up to date. Safe to call on every start.
	Migrate(ctx context.Context) error

	// Conversation model related methods.
	CreateConversation(ctx context.Context, create *Conversation) (*Conversation, error)
	ListConversations(ctx context.Context, find *FindConversation) ([]*Conversation, error)
	UpdateConversation(ctx context.Context, update *UpdateConversation) (*Conversation, error)
	DeleteConversation(ctx context.Context, delete *DeleteConversation) error

	// Message model related methods.
	CreateMessage(ctx context.Context, create *Message) (*Message, error)
	ListMessages(ctx context.Context, find *FindMessage) ([]*Message, error)
	DeleteMessage(ctx context.Context, delete *DeleteMessage) error
}
