package router

import "context"

// MockClassifier returns a fixed decision; used in tests and as a stand-in
// when no LLM backend is configured.
type MockClassifier struct {
	Decision *RoutingDecision
}

// NewMockClassifier creates a classifier that always returns decision.
func NewMockClassifier(decision *RoutingDecision) *MockClassifier {
	return &MockClassifier{Decision: decision}
}

// Classify implements Classifier.
func (m *MockClassifier) Classify(context.Context, string, []string) *RoutingDecision {
	if m.Decision == nil {
		return fallbackDecision("mock classifier has no decision")
	}
	copied := *m.Decision
	return &copied
}

// MockLLMClient returns a canned completion or error; used to exercise the
// delegated classifier without a network.
type MockLLMClient struct {
	Response string
	Err      error
}

func (m *MockLLMClient) Complete(context.Context, string, string) (string, error) {
	return m.Response, m.Err
}
