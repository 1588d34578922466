// Package models defines session state structures for ClaimPilot conversations.
package models

// SessionMode identifies which phase a conversation session is in.
type SessionMode string

const (
	// ModeChat is the open-ended conversational phase prior to intake.
	ModeChat SessionMode = "chat"
	// ModeIntake is the structured question-answer phase collecting claim data.
	ModeIntake SessionMode = "intake"
)

// SessionState tracks one active conversation. It is mutated by the conversation
// engine on every message; the caller must serialize requests within a session.
type SessionState struct {
	Mode       SessionMode       `json:"mode"`
	Step       int               `json:"step"`
	Answers    map[string]string `json:"answers"`
	Transcript []string          `json:"transcript"`
}

// NewSessionState returns a fresh session state in chat mode at step 0.
func NewSessionState() *SessionState {
	return &SessionState{
		Mode:    ModeChat,
		Step:    0,
		Answers: make(map[string]string),
	}
}

// Reset returns the state to a fresh chat-mode session, discarding answers and transcript.
func (s *SessionState) Reset() {
	s.Mode = ModeChat
	s.Step = 0
	s.Answers = make(map[string]string)
	s.Transcript = nil
}
