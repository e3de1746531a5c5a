package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praka2hb/synergi/store"
	teststore "github.com/praka2hb/synergi/store/test"
)

func TestStore_ConversationLifecycle(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewStore()

	created, err := ts.CreateConversation(ctx, &store.Conversation{CreatorID: 1})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.UID)
	assert.NotZero(t, created.CreatedTs)
	assert.Empty(t, created.Title)

	found, err := ts.GetConversation(ctx, &store.FindConversation{UID: &created.UID})
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)

	title := "Weather in Mumbai"
	updated, err := ts.UpdateConversation(ctx, &store.UpdateConversation{ID: created.ID, Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	require.NoError(t, ts.DeleteConversation(ctx, &store.DeleteConversation{ID: created.ID}))

	found, err = ts.GetConversation(ctx, &store.FindConversation{ID: &created.ID})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_GetConversationMissing(t *testing.T) {
	ts := teststore.NewStore()
	uid := "does-not-exist"
	found, err := ts.GetConversation(context.Background(), &store.FindConversation{UID: &uid})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestStore_MessagesOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewStore()

	conv, err := ts.CreateConversation(ctx, &store.Conversation{CreatorID: 1})
	require.NoError(t, err)

	for i, content := range []string{"first", "second", "third"} {
		_, err := ts.CreateMessage(ctx, &store.Message{
			ConversationID: conv.ID,
			Role:           store.MessageRoleUser,
			Content:        content,
			CreatedTs:      int64(100 + i),
		})
		require.NoError(t, err)
	}

	messages, err := ts.ListMessages(ctx, &store.FindMessage{ConversationID: &conv.ID})
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "third", messages[2].Content)
	// Empty metadata is normalized to an empty JSON object.
	assert.Equal(t, "{}", messages[0].Metadata)
}

func TestStore_DeleteConversationRemovesMessages(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewStore()

	conv, err := ts.CreateConversation(ctx, &store.Conversation{CreatorID: 1})
	require.NoError(t, err)
	_, err = ts.CreateMessage(ctx, &store.Message{ConversationID: conv.ID, Role: store.MessageRoleUser, Content: "hi"})
	require.NoError(t, err)

	require.NoError(t, ts.DeleteConversation(ctx, &store.DeleteConversation{ID: conv.ID}))

	messages, err := ts.ListMessages(ctx, &store.FindMessage{ConversationID: &conv.ID})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestStore_ListConversationsByCreator(t *testing.T) {
	ctx := context.Background()
	ts := teststore.NewStore()

	for creator := int32(1); creator <= 2; creator++ {
		_, err := ts.CreateConversation(ctx, &store.Conversation{CreatorID: creator})
		require.NoError(t, err)
	}

	creator := int32(1)
	list, err := ts.ListConversations(ctx, &store.FindConversation{CreatorID: &creator})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, creator, list[0].CreatorID)
}
