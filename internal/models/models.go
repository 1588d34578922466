// Package models defines the core data structures for ClaimPilot.
//
// It includes the question/answer model for the claim intake flow, which is shared across modules.
package models

import (
	"errors"
	"fmt"
)

// AnswerKind defines how a question expects its answer to be normalized.
type AnswerKind string

const (
	// AnswerKindText accepts free text.
	AnswerKindText AnswerKind = "text"
	// AnswerKindBoolean accepts a yes/no answer.
	AnswerKindBoolean AnswerKind = "yesno"
	// AnswerKindChoice accepts one of an enumerated list of choices.
	AnswerKindChoice AnswerKind = "options"
)

// Error variables for better error handling and testability
var (
	ErrInvalidAnswer      = errors.New("could not normalize answer")
	ErrServiceUnavailable = errors.New("understanding service unavailable")

	ErrEmptyQuestionKey     = errors.New("question key cannot be empty")
	ErrDuplicateQuestionKey = errors.New("duplicate question key")
	ErrInvalidAnswerKind    = errors.New("invalid answer kind")
	ErrMissingChoices       = errors.New("choices are required for option questions")
	ErrUnexpectedChoices    = errors.New("choices are only allowed for option questions")
)

// IsValidAnswerKind checks if the given answer kind is supported.
func IsValidAnswerKind(k AnswerKind) bool {
	switch k {
	case AnswerKindText, AnswerKindBoolean, AnswerKindChoice:
		return true
	default:
		return false
	}
}

// ConditionalRule ties a question's applicability to a prior answer's exact value.
type ConditionalRule struct {
	DependsOnKey  string `json:"depends_on_key"`
	RequiredValue string `json:"required_value"`
}

// QuestionDefinition describes one step of the claim intake flow.
// The catalog of definitions is immutable after process start.
type QuestionDefinition struct {
	Step        int              `json:"step"`
	Key         string           `json:"key"`
	Prompt      string           `json:"prompt"`
	Kind        AnswerKind       `json:"kind"`
	Choices     []string         `json:"choices,omitempty"`
	Conditional *ConditionalRule `json:"conditional,omitempty"`
}

// Validate checks a single question definition for structural validity.
func (q *QuestionDefinition) Validate() error {
	if q.Key == "" {
		return ErrEmptyQuestionKey
	}
	if !IsValidAnswerKind(q.Kind) {
		return fmt.Errorf("%w: %q on question %q", ErrInvalidAnswerKind, q.Kind, q.Key)
	}
	if q.Kind == AnswerKindChoice && len(q.Choices) == 0 {
		return fmt.Errorf("%w: question %q", ErrMissingChoices, q.Key)
	}
	if q.Kind != AnswerKindChoice && len(q.Choices) > 0 {
		return fmt.Errorf("%w: question %q", ErrUnexpectedChoices, q.Key)
	}
	return nil
}

// NormalizationRequest carries one raw answer to the normalizer. It has no persisted identity.
type NormalizationRequest struct {
	RawInput string
	Kind     AnswerKind
	Prompt   string
	Choices  []string
}

// ChatReply is the output contract for every conversation transition.
type ChatReply struct {
	Response     string     `json:"response"`
	QuestionType AnswerKind `json:"questionType"`
	Options      []string   `json:"options,omitempty"`
	Completed    bool       `json:"completed"`
}
