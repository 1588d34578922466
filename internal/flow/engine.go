// Package flow provides the conversation state machine for claim intake.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/claimpilot/claimpilot/internal/genai"
	"github.com/claimpilot/claimpilot/internal/models"
)

// Canned reply texts.
const (
	greetingReply   = "Hello! I'm here to help you with your insurance needs. How can I assist you today?"
	intakeIntro     = "I'll help you file a claim. Let's get started with some information."
	completionReply = "Thank you! Your claim has been submitted successfully. We will process your claim shortly."
	invalidPreamble = "Please provide a valid answer. "
)

// resetCommand restarts the conversation with a fresh session state.
const resetCommand = "reset"

// greetingLiterals are chat-mode inputs answered with the canned greeting
// instead of being routed through intent detection.
var greetingLiterals = map[string]struct{}{
	"":      {},
	"start": {},
	"hi":    {},
	"hello": {},
	"begin": {},
}

// intakeRestartLiterals re-emit the first question without consuming the
// message as an answer when intake has just begun.
var intakeRestartLiterals = map[string]struct{}{
	"":      {},
	"start": {},
	"begin": {},
}

// Engine is the conversation state machine. It owns no session storage: the
// caller passes the session state in and must serialize calls per session.
type Engine struct {
	catalog    *QuestionCatalog
	normalizer *Normalizer
	responder  *ChatResponder
}

// NewEngine creates a conversation engine over the given catalog. The
// understanding client may be nil; all paths then run deterministically.
func NewEngine(catalog *QuestionCatalog, client genai.ClientInterface) *Engine {
	slog.Debug("Engine.NewEngine: creating engine", "questions", catalog.Len(), "hasGenAI", client != nil)
	return &Engine{
		catalog:    catalog,
		normalizer: NewNormalizer(client),
		responder:  NewChatResponder(client),
	}
}

// Catalog returns the engine's question catalog.
func (e *Engine) Catalog() *QuestionCatalog {
	return e.catalog
}

// InitSession returns a fresh session state: chat mode, step 0, no answers.
func (e *Engine) InitSession() *models.SessionState {
	return models.NewSessionState()
}

// ExportAnswers returns a copy of the session's normalized answer map.
func (e *Engine) ExportAnswers(state *models.SessionState) map[string]string {
	answers := make(map[string]string, len(state.Answers))
	for k, v := range state.Answers {
		answers[k] = v
	}
	return answers
}

// ProcessMessage advances the conversation by one inbound message, mutating
// the session state. It never returns an unrecoverable error for malformed
// input; every failure degrades to a re-prompt or fallback reply.
func (e *Engine) ProcessMessage(ctx context.Context, state *models.SessionState, rawInput string, policies []models.Policy) (models.ChatReply, error) {
	if state == nil {
		return models.ChatReply{}, fmt.Errorf("session state is required")
	}

	trimmed := strings.TrimSpace(rawInput)

	// The reset command always yields a fresh session.
	if strings.EqualFold(trimmed, resetCommand) {
		slog.Info("Engine.ProcessMessage: reset command received")
		state.Reset()
		return models.ChatReply{Response: greetingReply, QuestionType: models.AnswerKindText}, nil
	}

	if trimmed != "" {
		state.Transcript = append(state.Transcript, rawInput)
	}

	if state.Mode == models.ModeChat {
		return e.processChatMessage(ctx, state, trimmed)
	}
	return e.processIntakeMessage(ctx, state, trimmed, policies)
}

// processChatMessage handles a message while in open conversational mode.
func (e *Engine) processChatMessage(ctx context.Context, state *models.SessionState, input string) (models.ChatReply, error) {
	if _, ok := greetingLiterals[strings.ToLower(input)]; ok {
		return models.ChatReply{Response: greetingReply, QuestionType: models.AnswerKindText}, nil
	}

	if WantsIntake(input) {
		slog.Info("Engine.processChatMessage: claim intent detected, switching to intake mode")
		state.Mode = models.ModeIntake
		question := e.catalog.ResolveCurrent(state)
		if question == nil {
			return e.completeIntake(state), nil
		}
		// The triggering message is not consumed as an answer.
		reply := questionReply(question)
		reply.Response = intakeIntro + "\n\n" + question.Prompt
		return reply, nil
	}

	response := e.responder.Respond(ctx, input)
	return models.ChatReply{Response: response, QuestionType: models.AnswerKindText}, nil
}

// processIntakeMessage handles a message while in structured intake mode.
func (e *Engine) processIntakeMessage(ctx context.Context, state *models.SessionState, input string, policies []models.Policy) (models.ChatReply, error) {
	question := e.catalog.ResolveCurrent(state)
	if question == nil {
		return e.completeIntake(state), nil
	}

	// Right after the mode switch the user may send a greeting or blank line;
	// re-emit the first question instead of treating it as an answer.
	if state.Step == 0 {
		if _, ok := intakeRestartLiterals[strings.ToLower(input)]; ok {
			return questionReply(question), nil
		}
	}

	normalized, err := e.normalizer.Normalize(ctx, models.NormalizationRequest{
		RawInput: input,
		Kind:     question.Kind,
		Prompt:   question.Prompt,
		Choices:  question.Choices,
	})
	if err != nil {
		slog.Debug("Engine.processIntakeMessage: invalid answer, re-asking", "key", question.Key, "error", err)
		reply := questionReply(question)
		reply.Response = invalidPreamble + question.Prompt
		return reply, nil
	}

	if question.Key == "policyNumber" && len(policies) > 0 {
		return e.processPolicyAnswer(state, question, normalized, policies)
	}

	return e.storeAndAdvance(state, question, normalized, ""), nil
}

// processPolicyAnswer validates the policy-number answer against the caller's
// policy list. Matching is bidirectional case-insensitive substring
// containment, reproducing the legacy behavior; short inputs can therefore
// match more than they should.
func (e *Engine) processPolicyAnswer(state *models.SessionState, question *models.QuestionDefinition, normalized string, policies []models.Policy) (models.ChatReply, error) {
	match := findPolicy(policies, normalized)
	if match == nil {
		numbers := make([]string, len(policies))
		for i, p := range policies {
			numbers[i] = p.PolicyNumber
		}
		slog.Info("Engine.processPolicyAnswer: unknown policy number, re-asking", "input", normalized)
		reply := questionReply(question)
		reply.Response = fmt.Sprintf("I couldn't find a policy matching '%s'. Please check your policy number and try again.\n\nYour available policies are: %s\n\n%s",
			normalized, strings.Join(numbers, ", "), question.Prompt)
		return reply, nil
	}

	slog.Info("Engine.processPolicyAnswer: policy matched", "policyNumber", match.PolicyNumber)
	prefix := fmt.Sprintf("✓ Policy Found: %s\n%s\n\n", match.PolicyNumber, formatPolicyInfo(match))
	return e.storeAndAdvance(state, question, normalized, prefix), nil
}

// storeAndAdvance stores the normalized answer, advances the step pointer and
// emits the next resolved question or the completion reply. An optional prefix
// is prepended to the next question's prompt.
func (e *Engine) storeAndAdvance(state *models.SessionState, question *models.QuestionDefinition, normalized, prefix string) models.ChatReply {
	state.Answers[question.Key] = normalized
	state.Step++
	slog.Debug("Engine.storeAndAdvance: answer stored", "key", question.Key, "step", state.Step)

	next := e.catalog.ResolveCurrent(state)
	if next == nil {
		reply := e.completeIntake(state)
		reply.Response = prefix + reply.Response
		return reply
	}

	reply := questionReply(next)
	reply.Response = prefix + next.Prompt
	return reply
}

// completeIntake emits the completion reply. The caller is responsible for
// persisting the answers and resetting the session state.
func (e *Engine) completeIntake(state *models.SessionState) models.ChatReply {
	slog.Info("Engine.completeIntake: intake complete", "answers", len(state.Answers))
	return models.ChatReply{
		Response:     completionReply,
		QuestionType: models.AnswerKindText,
		Completed:    true,
	}
}

// questionReply builds the reply envelope for asking a question.
func questionReply(q *models.QuestionDefinition) models.ChatReply {
	reply := models.ChatReply{Response: q.Prompt, QuestionType: q.Kind}
	if q.Kind == models.AnswerKindChoice {
		reply.Options = q.Choices
	}
	return reply
}

// findPolicy matches the normalized input against the policy list by
// case-insensitive substring containment in either direction.
func findPolicy(policies []models.Policy, input string) *models.Policy {
	upper := strings.ToUpper(strings.TrimSpace(input))
	if upper == "" {
		return nil
	}
	for i := range policies {
		number := strings.ToUpper(policies[i].PolicyNumber)
		if strings.Contains(number, upper) || strings.Contains(upper, number) {
			return &policies[i]
		}
	}
	return nil
}

// formatPolicyInfo renders a short summary of a matched policy record.
func formatPolicyInfo(p *models.Policy) string {
	lines := []string{
		"Type: " + orNA(p.Type),
		"Status: " + orNA(p.Status),
		"Premium: " + orNA(p.Premium),
		"Coverage: " + orNA(p.Coverage),
	}
	if p.Vehicle != "" {
		lines = append(lines, "Vehicle: "+p.Vehicle)
	}
	if p.Property != "" {
		lines = append(lines, "Property: "+p.Property)
	}
	lines = append(lines, "Expiry: "+orNA(p.ExpiryDate))
	return strings.Join(lines, "\n")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
