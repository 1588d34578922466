package flow

import (
	"context"
	"strings"
	"testing"
)

func TestChatResponder_TopicReplies(t *testing.T) {
	r := NewChatResponder(nil)
	ctx := context.Background()

	cases := []struct {
		input    string
		fragment string
	}{
		{"good morning", "Hello! I'm here to help you"},
		{"what can you do", "various insurance services"},
		{"explain insurance to me", "financial product"},
		{"tell me about my policies", "dashboard"},
		{"what is covered", "Coverage details vary"},
		{"when is my premium due", "premium information"},
		{"I want to know more", "general questions about insurance"},
	}
	for _, tc := range cases {
		out := r.Respond(ctx, tc.input)
		if !strings.Contains(out, tc.fragment) {
			t.Errorf("input %q: expected reply containing %q, got %q", tc.input, tc.fragment, out)
		}
	}
}

func TestChatResponder_OrderDecidesPrecedence(t *testing.T) {
	r := NewChatResponder(nil)
	// Matches both the greeting and premium topics; the greeting topic is
	// earlier in the chain and must win.
	out := r.Respond(context.Background(), "hi, how do I pay my bill")
	if !strings.Contains(out, "Hello! I'm here to help you") {
		t.Errorf("expected greeting reply to take precedence, got %q", out)
	}
}

func TestChatResponder_ServiceReplyAccepted(t *testing.T) {
	client := &stubClassifier{reply: "Renters insurance covers your belongings."}
	r := NewChatResponder(client)
	out := r.Respond(context.Background(), "do renters need it?")
	if out != "Renters insurance covers your belongings." {
		t.Errorf("expected service reply, got %q", out)
	}
	if client.calls != 1 {
		t.Errorf("expected one service call, got %d", client.calls)
	}
}

func TestChatResponder_ShortServiceReplyFallsBack(t *testing.T) {
	r := NewChatResponder(&stubClassifier{reply: "ok."})
	out := r.Respond(context.Background(), "hmm?")
	if out != fallbackReply {
		t.Errorf("expected generic fallback for short service reply, got %q", out)
	}
}

func TestChatResponder_ServiceFailureFallsBack(t *testing.T) {
	r := NewChatResponder(&stubClassifier{err: errServiceDown})
	out := r.Respond(context.Background(), "hmm?")
	if out != fallbackReply {
		t.Errorf("expected generic fallback on service failure, got %q", out)
	}
}

func TestChatResponder_NoServiceFallsBack(t *testing.T) {
	r := NewChatResponder(nil)
	out := r.Respond(context.Background(), "hmm?")
	if out != fallbackReply {
		t.Errorf("expected generic fallback without a service, got %q", out)
	}
}
