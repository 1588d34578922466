package flow

import (
	"context"
	"errors"
)

// stubClassifier is a scripted understanding-service client for tests. It
// records every call so purity properties can assert the service was not hit.
type stubClassifier struct {
	reply string
	err   error
	calls int

	// lastUserPrompt captures the most recent user prompt for inspection.
	lastUserPrompt string
}

func (s *stubClassifier) Classify(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	s.lastUserPrompt = userPrompt
	return s.reply, s.err
}

var errServiceDown = errors.New("service down")
