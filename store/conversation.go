package store

// Conversation is one chat thread owned by a user.
type Conversation struct {
	ID        int32
	UID       string
	CreatorID int32
	// Title is empty until the first exchange generates one.
	Title string
	// AgentID is the tag of the agent that answered most recently.
	AgentID   string
	CreatedTs int64
	UpdatedTs int64
}

type FindConversation struct {
	ID        *int32
	UID       *string
	CreatorID *int32
	Limit     *int
	Offset    *int
}

type UpdateConversation struct {
	ID        int32
	Title     *string
	AgentID   *string
	UpdatedTs *int64
}

type DeleteConversation struct {
	ID int32
}
