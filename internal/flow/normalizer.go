// Package flow provides answer normalization for the claim intake engine.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/claimpilot/claimpilot/internal/genai"
	"github.com/claimpilot/claimpilot/internal/models"
)

// Token sets for deterministic yes/no normalization. Matching is by substring
// against the lower-cased, trimmed input.
var (
	affirmativeTokens = []string{"yes", "y", "true", "1", "yeah", "yep", "sure", "ok", "okay"}
	negativeTokens    = []string{"no", "n", "false", "0", "nope", "nah"}
)

// Relative-date keywords and their day offsets from today.
var relativeDateOffsets = []struct {
	keyword string
	days    int
}{
	{"yesterday", -1},
	{"today", 0},
	{"tomorrow", 1},
}

// Clock time patterns, checked in order: "2:30 PM", "14:30", "2pm".
var clockTimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(AM|PM)`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
	regexp.MustCompile(`(?i)\d{1,2}\s*(AM|PM)`),
}

// normalizerSystemPrompt constrains the understanding service to input
// normalization only; it never controls conversation flow.
const normalizerSystemPrompt = `You are an input normalization assistant for an insurance claim system.

Your ONLY responsibility is to understand and normalize user input. You do NOT decide what question to ask next, control conversation flow, or make decisions about the process.

You ONLY understand user intent from free-text input, normalize yes/no answers, match user input to provided options, and extract and normalize dates, times, and other structured data.

Be precise and return only the normalized value requested.`

// Normalizer converts raw user text into canonical answer values. Deterministic
// rules run first; the understanding service is a fallback only, and its
// failures degrade to deterministic behavior rather than propagating.
type Normalizer struct {
	client genai.ClientInterface
	now    func() time.Time
}

// NewNormalizer creates a normalizer. A nil client is tolerated: ambiguous
// inputs that would need the understanding service are reported as invalid
// (boolean/choice) or fall back to the trimmed raw text (free text).
func NewNormalizer(client genai.ClientInterface) *Normalizer {
	return &Normalizer{client: client, now: time.Now}
}

// Normalize converts raw input into the canonical value for the request's
// answer kind, or returns models.ErrInvalidAnswer.
func (n *Normalizer) Normalize(ctx context.Context, req models.NormalizationRequest) (string, error) {
	switch req.Kind {
	case models.AnswerKindBoolean:
		return n.normalizeBoolean(ctx, req.RawInput)
	case models.AnswerKindChoice:
		return n.normalizeChoice(ctx, req.RawInput, req.Choices)
	case models.AnswerKindText:
		return n.normalizeText(ctx, req.RawInput, req.Prompt)
	default:
		return "", fmt.Errorf("%w: unsupported answer kind %q", models.ErrInvalidAnswer, req.Kind)
	}
}

// normalizeBoolean maps input to "Yes" or "No". Token matches never invoke the
// understanding service.
func (n *Normalizer) normalizeBoolean(ctx context.Context, raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))

	for _, token := range affirmativeTokens {
		if strings.Contains(lower, token) {
			return "Yes", nil
		}
	}
	for _, token := range negativeTokens {
		if strings.Contains(lower, token) {
			return "No", nil
		}
	}

	if n.client == nil {
		slog.Debug("Normalizer.normalizeBoolean: no understanding service, input invalid", "input", raw)
		return "", models.ErrInvalidAnswer
	}

	userPrompt := fmt.Sprintf("Given the user input: %q\nIs this a Yes or No answer? Respond with only \"Yes\" or \"No\".", raw)
	reply, err := n.client.Classify(ctx, normalizerSystemPrompt, userPrompt)
	if err != nil {
		slog.Warn("Normalizer.normalizeBoolean: understanding service failed", "error", err)
		return "", models.ErrInvalidAnswer
	}

	upper := strings.ToUpper(strings.TrimSpace(reply))
	switch {
	case strings.Contains(upper, "YES"):
		return "Yes", nil
	case strings.Contains(upper, "NO"):
		return "No", nil
	default:
		slog.Debug("Normalizer.normalizeBoolean: ambiguous service reply", "reply", reply)
		return "", models.ErrInvalidAnswer
	}
}

// normalizeChoice maps input to one of the enumerated choices.
func (n *Normalizer) normalizeChoice(ctx context.Context, raw string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", models.ErrInvalidAnswer
	}
	lower := strings.ToLower(strings.TrimSpace(raw))

	// Exact match first, then bidirectional substring containment.
	for _, choice := range choices {
		if lower == strings.ToLower(choice) {
			return choice, nil
		}
	}
	for _, choice := range choices {
		choiceLower := strings.ToLower(choice)
		if strings.Contains(lower, choiceLower) || strings.Contains(choiceLower, lower) {
			return choice, nil
		}
	}

	if n.client == nil {
		slog.Debug("Normalizer.normalizeChoice: no understanding service, input invalid", "input", raw)
		return "", models.ErrInvalidAnswer
	}

	userPrompt := fmt.Sprintf("Given the user input: %q\nAnd these available options: %s\n\nWhich option best matches the user's intent? Respond with only the exact option text from the list, or \"NONE\" if no match.",
		raw, strings.Join(choices, ", "))
	reply, err := n.client.Classify(ctx, normalizerSystemPrompt, userPrompt)
	if err != nil {
		slog.Warn("Normalizer.normalizeChoice: understanding service failed", "error", err)
		return "", models.ErrInvalidAnswer
	}

	// Validate the service's answer against the choice list before accepting it.
	replyLower := strings.ToLower(strings.TrimSpace(reply))
	for _, choice := range choices {
		choiceLower := strings.ToLower(choice)
		if strings.Contains(replyLower, choiceLower) || strings.Contains(choiceLower, replyLower) {
			return choice, nil
		}
	}
	slog.Debug("Normalizer.normalizeChoice: service reply matched no choice", "reply", reply)
	return "", models.ErrInvalidAnswer
}

// normalizeText validates free text and resolves date/time answers.
func (n *Normalizer) normalizeText(ctx context.Context, raw, prompt string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", models.ErrInvalidAnswer
	}

	promptLower := strings.ToLower(prompt)
	if !strings.Contains(promptLower, "date") && !strings.Contains(promptLower, "time") {
		return trimmed, nil
	}

	// Deterministic relative-date resolution first.
	if resolved, ok := n.resolveRelativeDate(raw); ok {
		return resolved, nil
	}

	if n.client == nil {
		return trimmed, nil
	}

	userPrompt := fmt.Sprintf("Given the user input: %q\nExtract and normalize the date and time. If the user says \"yesterday\", \"today\", \"tomorrow\", convert it to the actual date.\nFormat: \"YYYY-MM-DD HH:MM\" or \"Month DD, YYYY at HH:MM AM/PM\"\nToday's date is %s.\nRespond with only the normalized date and time.",
		raw, n.now().Format("2006-01-02"))
	reply, err := n.client.Classify(ctx, normalizerSystemPrompt, userPrompt)
	if err != nil {
		slog.Warn("Normalizer.normalizeText: understanding service failed, using raw input", "error", err)
		return trimmed, nil
	}
	return strings.TrimSpace(reply), nil
}

// resolveRelativeDate recognizes yesterday/today/tomorrow and computes the
// calendar date, appending an embedded clock time or midnight.
func (n *Normalizer) resolveRelativeDate(raw string) (string, bool) {
	lower := strings.ToLower(raw)
	for _, rel := range relativeDateOffsets {
		if !strings.Contains(lower, rel.keyword) {
			continue
		}
		date := n.now().AddDate(0, 0, rel.days).Format("2006-01-02")
		if clock, ok := extractClockTime(raw); ok {
			return date + " " + clock, true
		}
		return date + " 00:00", true
	}
	return "", false
}

// extractClockTime finds an embedded clock time in the input. AM/PM markers are
// upper-cased in the result.
func extractClockTime(raw string) (string, bool) {
	for _, pattern := range clockTimePatterns {
		if match := pattern.FindString(raw); match != "" {
			return strings.ToUpper(match), true
		}
	}
	return "", false
}
