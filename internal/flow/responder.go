// Package flow provides the layered chat responder for conversational mode.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claimpilot/claimpilot/internal/genai"
)

// minServiceReplyLength is the minimum length for an understanding-service
// reply to be accepted as a conversational response.
const minServiceReplyLength = 10

// fallbackReply is the generic response when no topic matches and the
// understanding service produces nothing usable.
const fallbackReply = "I understand. I'm here to help with your insurance needs. Would you like to file a claim, or do you have other questions?"

// topicResponder pairs a keyword predicate with a fixed reply. Topics are
// evaluated in a fixed order; the first match wins, so ordering decides
// precedence when several topics could match.
type topicResponder struct {
	name     string
	keywords []string
	reply    string
}

func (t *topicResponder) matches(lower string) bool {
	for _, keyword := range t.keywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// chatTopics is the ordered chain of fixed topical replies.
var chatTopics = []topicResponder{
	{
		name:     "greeting",
		keywords: []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"},
		reply:    "Hello! I'm here to help you with your insurance needs. How can I assist you today?",
	},
	{
		name:     "help",
		keywords: []string{"help", "what can you do", "what do you do"},
		reply:    "I can help you with various insurance services including filing claims, checking policy information, and answering questions about coverage. What would you like to know?",
	},
	{
		name:     "insurance-definition",
		keywords: []string{"what is insurance", "what is insuracne", "explain insurance", "insurance meaning"},
		reply:    "Insurance is a financial product that provides protection against financial loss. It helps cover costs for unexpected events like accidents, theft, or damage. Would you like to know more about your policies, or do you need to file a claim?",
	},
	{
		name:     "policy",
		keywords: []string{"policy", "policies", "my policy", "my policies"},
		reply:    "You can view all your policies on the dashboard. I can help you file a claim for any of your policies. Would you like to file a claim?",
	},
	{
		name:     "coverage",
		keywords: []string{"coverage", "what does my policy cover", "what is covered"},
		reply:    "Coverage details vary by policy type. You can see your coverage information in the policy details on the dashboard. For specific coverage questions, please contact our customer service team. Would you like to file a claim instead?",
	},
	{
		name:     "premium",
		keywords: []string{"premium", "payment", "pay", "bill", "cost"},
		reply:    "You can see your premium information for each policy on the dashboard. For payment-related questions, please contact our customer service team. Is there anything else I can help with, or would you like to file a claim?",
	},
	{
		name:     "general-question",
		keywords: []string{"question", "ask", "inquire", "want to know"},
		reply:    "I'm here to help! I can assist you with filing a claim, or you can ask me general questions about insurance. What would you like to know?",
	},
}

// responderSystemPrompt frames contextual replies from the understanding service.
const responderSystemPrompt = "You are a friendly insurance assistant. Provide helpful, brief responses about insurance topics."

// ChatResponder produces conversational replies for messages that carry no
// claim intent: fixed topical replies first, then the understanding service,
// then a generic fallback.
type ChatResponder struct {
	client genai.ClientInterface
	topics []topicResponder
}

// NewChatResponder creates a responder. A nil client skips the contextual
// layer and falls straight through to the generic fallback.
func NewChatResponder(client genai.ClientInterface) *ChatResponder {
	return &ChatResponder{client: client, topics: chatTopics}
}

// Respond returns a conversational reply for the given input. It never fails;
// every layer degrades to the next one.
func (r *ChatResponder) Respond(ctx context.Context, userInput string) string {
	lower := strings.ToLower(userInput)

	for i := range r.topics {
		if r.topics[i].matches(lower) {
			slog.Debug("ChatResponder.Respond: topic matched", "topic", r.topics[i].name)
			return r.topics[i].reply
		}
	}

	if r.client != nil {
		userPrompt := fmt.Sprintf("The user asked: %q\n\nProvide a helpful, friendly response about insurance. Keep it brief (1-2 sentences). If the question is about filing a claim, mention that you can help with that. Otherwise, provide a helpful answer or suggest filing a claim.\n\nRespond naturally and conversationally.", userInput)
		reply, err := r.client.Classify(ctx, responderSystemPrompt, userPrompt)
		if err != nil {
			slog.Warn("ChatResponder.Respond: understanding service failed, using fallback", "error", err)
		} else if trimmed := strings.TrimSpace(reply); len(trimmed) > minServiceReplyLength {
			slog.Debug("ChatResponder.Respond: using service reply", "length", len(trimmed))
			return trimmed
		}
	}

	return fallbackReply
}
