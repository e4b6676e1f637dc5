package agent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/brsteele1975/qa-artifact-compression-workflow/internal/application/port/output"
)

const (
	defaultBaseURL = "https://api.openai.com"
	completionPath = "/v1/chat/completions"
)

// TransportError reports a failed call to the generation backend. The run
// makes exactly one attempt; there is no retry or backoff.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "generation request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// OpenAIGateway implements AgentGateway against the OpenAI chat completions
// API. Configuration is fixed and deterministic: one pinned model, temperature
// zero, no per-call tuning.
type OpenAIGateway struct {
	httpc *resty.Client
	model string
}

// NewOpenAIGateway creates a gateway with the given credential and model.
// The credential is resolved once at startup and passed in by composition,
// never looked up at call time.
func NewOpenAIGateway(apiKey, model string, timeout time.Duration) *OpenAIGateway {
	httpc := resty.New()
	httpc.SetBaseURL(defaultBaseURL)
	httpc.SetHeader("Authorization", "Bearer "+apiKey)
	httpc.SetTimeout(timeout)

	return &OpenAIGateway{
		httpc: httpc,
		model: model,
	}
}

// Complete sends one synchronous chat completion request and returns the
// generated text.
func (g *OpenAIGateway) Complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	req := chatRequest{
		Model:       g.model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
	}

	var result chatResponse
	resp, err := g.httpc.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post(completionPath)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.IsError() {
		if result.Error != nil && result.Error.Message != "" {
			return "", &TransportError{
				Err: fmt.Errorf("API error (%d): %s - %s", resp.StatusCode(), result.Error.Type, result.Error.Message),
			}
		}
		return "", &TransportError{Err: fmt.Errorf("API error: status %d", resp.StatusCode())}
	}

	if len(result.Choices) == 0 {
		return "", &TransportError{Err: errors.New("response contained no choices")}
	}
	return result.Choices[0].Message.Content, nil
}

// OpenAI chat completions request/response types
type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Choices []chatChoice `json:"choices"`
	Error   *apiError    `json:"error,omitempty"`
}

type chatChoice struct {
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type apiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

var _ output.AgentGateway = (*OpenAIGateway)(nil)
