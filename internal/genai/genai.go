// Package genai provides the text-understanding client used to normalize
// ambiguous user input via the OpenAI API.
//
// The client is strictly an input-understanding collaborator: it never drives
// conversation flow. Every caller has a deterministic fallback, so construction
// failure and per-call errors are tolerated, not fatal.
package genai

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/claimpilot/claimpilot/internal/models"
)

// DefaultTimeout bounds a single understanding call. No retries are performed;
// a failed attempt immediately falls back to deterministic behavior.
const DefaultTimeout = 10 * time.Second

// ClientInterface defines the understanding operations consumed by the flow package.
type ClientInterface interface {
	// Classify sends a system/user prompt pair and returns the model's reply text.
	Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Opts holds configuration options for the GenAI client.
type Opts struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Option configures the GenAI client.
type Option func(*Opts)

// WithAPIKey sets the OpenAI API key.
func WithAPIKey(key string) Option {
	return func(o *Opts) { o.APIKey = key }
}

// WithModel sets the chat model.
func WithModel(model string) Option {
	return func(o *Opts) { o.Model = model }
}

// WithTimeout sets the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *Opts) { o.Timeout = d }
}

// Client wraps the OpenAI chat completion service for input understanding.
type Client struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewClient initializes a new GenAI client. The API key is taken from options
// or the OPENAI_API_KEY environment variable. Callers should treat an error as
// "service unavailable" and run without a client rather than aborting startup.
func NewClient(opts ...Option) (*Client, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY not set", models.ErrServiceUnavailable)
	}
	if cfg.Model == "" {
		cfg.Model = openai.ChatModelGPT4oMini
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	slog.Debug("genai.NewClient: creating client", "model", cfg.Model, "timeout", cfg.Timeout)
	return &Client{
		client:  openai.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Classify sends a system/user prompt pair and returns the model's reply text.
func (c *Client) Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		slog.Warn("genai.Classify: completion failed", "error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		slog.Warn("genai.Classify: no choices returned")
		return "", fmt.Errorf("no choices returned")
	}
	slog.Debug("genai.Classify: completion succeeded", "responseLength", len(resp.Choices[0].Message.Content))
	return resp.Choices[0].Message.Content, nil
}
