// Package models defines API request and response structures for ClaimPilot endpoints.
package models

import "errors"

// API response status constants.
const (
	APIStatusOK    = "ok"
	APIStatusError = "error"
)

// Request validation errors.
var (
	ErrEmptyEmail     = errors.New("email cannot be empty")
	ErrEmptyPassword  = errors.New("password cannot be empty")
	ErrEmptySessionID = errors.New("sessionId cannot be empty")
)

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks login request fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return ErrEmptyEmail
	}
	if r.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

// ChatRequest is the payload for POST /chat.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// Validate checks chat request fields. An empty message is allowed; the engine
// treats it as a greeting.
func (r *ChatRequest) Validate() error {
	if r.SessionID == "" {
		return ErrEmptySessionID
	}
	return nil
}

// LogoutRequest is the payload for POST /logout.
type LogoutRequest struct {
	SessionID string `json:"sessionId"`
}

// Validate checks logout request fields.
func (r *LogoutRequest) Validate() error {
	if r.SessionID == "" {
		return ErrEmptySessionID
	}
	return nil
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	SessionID string   `json:"sessionId"`
	User      Identity `json:"user"`
	Policies  []Policy `json:"policies"`
}

// APIResponse is the standard envelope for API error and status payloads.
type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Result  interface{} `json:"result,omitempty"`
}

// Success creates a successful API response with optional result data.
func Success(result interface{}) APIResponse {
	return APIResponse{Status: APIStatusOK, Result: result}
}

// SuccessWithMessage creates a successful API response with a message and optional result data.
func SuccessWithMessage(message string, result interface{}) APIResponse {
	return APIResponse{Status: APIStatusOK, Message: message, Result: result}
}

// Error creates an error API response with a message.
func Error(message string) APIResponse {
	return APIResponse{Status: APIStatusError, Message: message}
}
