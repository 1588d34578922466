package models

import (
	"errors"
	"testing"
)

func TestQuestionDefinitionValidate(t *testing.T) {
	tests := []struct {
		name     string
		question QuestionDefinition
		wantErr  error
	}{
		{
			name:     "valid text question",
			question: QuestionDefinition{Step: 1, Key: "location", Prompt: "Where?", Kind: AnswerKindText},
		},
		{
			name: "valid choice question",
			question: QuestionDefinition{Step: 1, Key: "weather", Prompt: "Weather?", Kind: AnswerKindChoice,
				Choices: []string{"Clear", "Rainy"}},
		},
		{
			name:     "empty key",
			question: QuestionDefinition{Step: 1, Prompt: "Where?", Kind: AnswerKindText},
			wantErr:  ErrEmptyQuestionKey,
		},
		{
			name:     "unknown kind",
			question: QuestionDefinition{Step: 1, Key: "x", Prompt: "?", Kind: AnswerKind("freeform")},
			wantErr:  ErrInvalidAnswerKind,
		},
		{
			name:     "choice without choices",
			question: QuestionDefinition{Step: 1, Key: "weather", Prompt: "Weather?", Kind: AnswerKindChoice},
			wantErr:  ErrMissingChoices,
		},
		{
			name: "text with choices",
			question: QuestionDefinition{Step: 1, Key: "location", Prompt: "Where?", Kind: AnswerKindText,
				Choices: []string{"Here"}},
			wantErr: ErrUnexpectedChoices,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.question.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestValidation(t *testing.T) {
	login := LoginRequest{Email: "demo1@company.com", Password: "demo123"}
	if err := login.Validate(); err != nil {
		t.Errorf("valid login rejected: %v", err)
	}
	if err := (&LoginRequest{Password: "demo123"}).Validate(); !errors.Is(err, ErrEmptyEmail) {
		t.Errorf("missing email: got %v", err)
	}
	if err := (&LoginRequest{Email: "demo1@company.com"}).Validate(); !errors.Is(err, ErrEmptyPassword) {
		t.Errorf("missing password: got %v", err)
	}

	if err := (&ChatRequest{SessionID: "abc"}).Validate(); err != nil {
		t.Errorf("empty message should be allowed: %v", err)
	}
	if err := (&ChatRequest{Message: "hi"}).Validate(); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("missing session ID: got %v", err)
	}
	if err := (&LogoutRequest{}).Validate(); !errors.Is(err, ErrEmptySessionID) {
		t.Errorf("missing session ID: got %v", err)
	}
}

func TestSessionStateReset(t *testing.T) {
	state := NewSessionState()
	state.Mode = ModeIntake
	state.Step = 7
	state.Answers["policyNumber"] = "POL-2024-001"
	state.Transcript = []string{"I had a crash"}

	state.Reset()

	if state.Mode != ModeChat || state.Step != 0 {
		t.Errorf("after reset: mode %q step %d", state.Mode, state.Step)
	}
	if len(state.Answers) != 0 || state.Transcript != nil {
		t.Errorf("after reset: answers %v transcript %v", state.Answers, state.Transcript)
	}
}
