package genai

import (
	"errors"
	"testing"
	"time"

	"github.com/claimpilot/claimpilot/internal/models"
)

func TestNewClientRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewClient()
	if !errors.Is(err, models.ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable without a key, got %v", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(WithAPIKey("test-key"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.model == "" {
		t.Error("expected a default model")
	}
	if client.timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", client.timeout, DefaultTimeout)
	}
}

func TestNewClientOptions(t *testing.T) {
	client, err := NewClient(
		WithAPIKey("test-key"),
		WithModel("gpt-4o"),
		WithTimeout(3*time.Second),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.model != "gpt-4o" {
		t.Errorf("model = %q, want gpt-4o", client.model)
	}
	if client.timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", client.timeout)
	}
}

func TestNewClientKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")
	if _, err := NewClient(); err != nil {
		t.Errorf("expected env key to be accepted, got %v", err)
	}
}
