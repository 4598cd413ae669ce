package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. A non-nil Err is returned instead of
// Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockCall is a request the mock received, with the purpose it was tagged
// with.
type MockCall struct {
	Request
	Purpose Purpose
}

// MockProvider replays scripted replies in order. It backs the "mock"
// provider setting and the planner, quiz and ai tests.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []MockCall
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate pops the next reply. Once the script runs out every call fails
// with ErrProviderUnavailable, so a missing reply shows up as a failed
// generation rather than a hang.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Request: req, Purpose: PurposeFrom(ctx)})
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.replies[0]
	m.replies = m.replies[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{Content: next.Content, Usage: next.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse queues another reply.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.replies = append(m.replies, resp)
	m.mu.Unlock()
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
