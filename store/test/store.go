// Package teststore provides an in-memory store driver so higher layers
// can be tested without a database file.
package teststore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"

	"github.com/praka2hb/synergi/store"
)

// Driver implements store.Driver on maps.
type Driver struct {
	mu sync.Mutex

	conversations map[int32]*store.Conversation
	messages      map[int32]*store.Message
	nextConvID    int32
	nextMsgID     int32
}

var _ store.Driver = (*Driver)(nil)

// NewDriver creates an empty in-memory driver.
func NewDriver() *Driver {
	return &Driver{
		conversations: make(map[int32]*store.Conversation),
		messages:      make(map[int32]*store.Message),
		nextConvID:    1,
		nextMsgID:     1,
	}
}

// NewStore creates a Store over a fresh in-memory driver.
func NewStore() *store.Store {
	return store.New(NewDriver(), nil)
}

func (d *Driver) GetDB() *sql.DB { return nil }

func (d *Driver) Close() error { return nil }

func (d *Driver) Migrate(context.Context) error { return nil }

func (d *Driver) CreateConversation(_ context.Context, create *store.Conversation) (*store.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	create.ID = d.nextConvID
	d.nextConvID++
	copied := *create
	d.conversations[create.ID] = &copied
	return create, nil
}

func (d *Driver) ListConversations(_ context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := make([]*store.Conversation, 0)
	for _, c := range d.conversations {
		if find.ID != nil && c.ID != *find.ID {
			continue
		}
		if find.UID != nil && c.UID != *find.UID {
			continue
		}
		if find.CreatorID != nil && c.CreatorID != *find.CreatorID {
			continue
		}
		copied := *c
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].UpdatedTs != list[j].UpdatedTs {
			return list[i].UpdatedTs > list[j].UpdatedTs
		}
		return list[i].ID > list[j].ID
	})
	list = window(list, find.Limit, find.Offset)
	return list, nil
}

func (d *Driver) UpdateConversation(_ context.Context, update *store.UpdateConversation) (*store.Conversation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.conversations[update.ID]
	if !ok {
		return nil, fmt.Errorf("conversation not found")
	}
	if update.Title != nil {
		c.Title = *update.Title
	}
	if update.AgentID != nil {
		c.AgentID = *update.AgentID
	}
	if update.UpdatedTs != nil {
		c.UpdatedTs = *update.UpdatedTs
	}
	copied := *c
	return &copied, nil
}

func (d *Driver) DeleteConversation(_ context.Context, del *store.DeleteConversation) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.conversations[del.ID]; !ok {
		return fmt.Errorf("conversation not found")
	}
	for id, m := range d.messages {
		if m.ConversationID == del.ID {
			delete(d.messages, id)
		}
	}
	delete(d.conversations, del.ID)
	return nil
}

func (d *Driver) CreateMessage(_ context.Context, create *store.Message) (*store.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	create.ID = d.nextMsgID
	d.nextMsgID++
	copied := *create
	d.messages[create.ID] = &copied
	return create, nil
}

func (d *Driver) ListMessages(_ context.Context, find *store.FindMessage) ([]*store.Message, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	list := make([]*store.Message, 0)
	for _, m := range d.messages {
		if find.ID != nil && m.ID != *find.ID {
			continue
		}
		if find.UID != nil && m.UID != *find.UID {
			continue
		}
		if find.ConversationID != nil && m.ConversationID != *find.ConversationID {
			continue
		}
		copied := *m
		list = append(list, &copied)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedTs != list[j].CreatedTs {
			return list[i].CreatedTs < list[j].CreatedTs
		}
		return list[i].ID < list[j].ID
	})
	list = window(list, find.Limit, find.Offset)
	return list, nil
}

func (d *Driver) DeleteMessage(_ context.Context, del *store.DeleteMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if del.ID == nil && del.ConversationID == nil {
		return fmt.Errorf("no filter to delete messages")
	}
	for id, m := range d.messages {
		if del.ID != nil && m.ID != *del.ID {
			continue
		}
		if del.ConversationID != nil && m.ConversationID != *del.ConversationID {
			continue
		}
		delete(d.messages, id)
	}
	return nil
}

// window applies limit/offset the way the SQL drivers do: offset only
// matters when a limit is set.
func window[T any](list []T, limit, offset *int) []T {
	if limit == nil {
		return list
	}
	if offset != nil {
		if *offset >= len(list) {
			return nil
		}
		list = list[*offset:]
	}
	if len(list) > *limit {
		list = list[:*limit]
	}
	return list
}
