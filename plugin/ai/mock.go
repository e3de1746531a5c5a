package ai

import "context"

// MockLLM is a scripted LLMService for tests. Stream chunks feed
// ChatStream; tool turns are consumed in order by ChatWithTools, after
// which ChatResponse answers any further call.
type MockLLM struct {
	ChatResponse string
	ChatErr      error

	StreamChunks []string
	StreamErr    error

	ToolTurns []*ToolTurn
	ToolErr   error

	// Requests records every message slice passed in, across all methods.
	Requests [][]Message

	toolIndex int
}

var _ LLMService = (*MockLLM)(nil)

func (m *MockLLM) Chat(_ context.Context, messages []Message) (string, error) {
	m.Requests = append(m.Requests, messages)
	return m.ChatResponse, m.ChatErr
}

func (m *MockLLM) ChatStream(ctx context.Context, messages []Message) (<-chan string, <-chan error) {
	m.Requests = append(m.Requests, messages)

	contentChan := make(chan string)
	errChan := make(chan error, 1)
	go func() {
		defer close(contentChan)
		defer close(errChan)
		if m.StreamErr != nil {
			errChan <- m.StreamErr
			return
		}
		for _, chunk := range m.StreamChunks {
			select {
			case contentChan <- chunk:
			case <-ctx.Done():
				return
			}
		}
	}()
	return contentChan, errChan
}

func (m *MockLLM) ChatWithTools(_ context.Context, messages []Message, _ []ToolSpec) (*ToolTurn, error) {
	m.Requests = append(m.Requests, messages)
	if m.ToolErr != nil {
		return nil, m.ToolErr
	}
	if m.toolIndex < len(m.ToolTurns) {
		turn := m.ToolTurns[m.toolIndex]
		m.toolIndex++
		return turn, nil
	}
	return &ToolTurn{Content: m.ChatResponse}, nil
}
