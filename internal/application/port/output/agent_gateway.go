package output

import "context"

// AgentGateway is the interface for the text generation backend.
// This abstraction allows swapping backends and mocking in tests.
type AgentGateway interface {
	// Complete sends a system instruction and user content to the backend
	// and returns the generated text. One synchronous attempt, no retry,
	// no streaming; any failure surfaces immediately.
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}
