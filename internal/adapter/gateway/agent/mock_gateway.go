package agent

import (
	"context"
	"errors"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/application/port/output"
)

// MockCall records one request made against a MockGateway.
type MockCall struct {
	System string
	User   string
}

// MockGateway returns scripted completions in order, so pipeline behavior can
// be exercised without a live backend. Errors at a given position take
// precedence over the response at that position.
type MockGateway struct {
	Responses []string
	Errors    []error

	Calls []MockCall
}

// Complete returns the next scripted response or error.
func (m *MockGateway) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	i := len(m.Calls)
	m.Calls = append(m.Calls, MockCall{System: systemPrompt, User: userContent})

	if i < len(m.Errors) && m.Errors[i] != nil {
		return "", m.Errors[i]
	}
	if i < len(m.Responses) {
		return m.Responses[i], nil
	}
	return "", &TransportError{Err: errors.New("no scripted response")}
}

var _ output.AgentGateway = (*MockGateway)(nil)
