// Package api provides HTTP handlers for ClaimPilot endpoints.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/claimpilot/claimpilot/internal/models"
	"github.com/claimpilot/claimpilot/internal/session"
)

// loginHandler handles POST /login: demo credential check and session creation.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.loginHandler: processing login request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.loginHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.loginHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	var user *models.User
	for i := range s.users {
		if s.users[i].Email == req.Email && s.users[i].Password == req.Password {
			user = &s.users[i]
			break
		}
	}
	if user == nil {
		slog.Warn("Server.loginHandler: invalid credentials", "email", req.Email)
		writeJSONResponse(w, http.StatusUnauthorized, models.Error("Invalid email or password"))
		return
	}

	sess := s.sessions.Create(models.Identity{Name: user.Name, Email: user.Email}, user.Policies)
	slog.Info("Server.loginHandler: login succeeded", "email", user.Email, "sessionID", sess.ID)
	writeJSONResponse(w, http.StatusOK, models.LoginResponse{
		SessionID: sess.ID,
		User:      sess.User,
		Policies:  sess.Policies,
	})
}

// logoutHandler handles POST /logout: eager session teardown.
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.logoutHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	s.sessions.Delete(req.SessionID)
	writeJSONResponse(w, http.StatusOK, models.SuccessWithMessage("Logged out successfully", nil))
}

// chatHandler handles POST /chat: one conversation transition per request.
func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	if r.Body != nil {
		defer r.Body.Close()
	}
	slog.Debug("Server.chatHandler: processing chat request", "method", r.Method)
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Server.chatHandler: failed to decode JSON", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error("Invalid JSON format"))
		return
	}
	if err := req.Validate(); err != nil {
		slog.Warn("Server.chatHandler: validation failed", "error", err)
		writeJSONResponse(w, http.StatusBadRequest, models.Error(err.Error()))
		return
	}

	sess := s.sessions.Get(req.SessionID)
	if sess == nil {
		slog.Warn("Server.chatHandler: session not found", "sessionID", req.SessionID)
		writeJSONResponse(w, http.StatusUnauthorized, models.Error("Session expired. Please login again."))
		return
	}

	// Serialize processing per session: the engine mutates the session state.
	sess.Lock()
	defer sess.Unlock()

	reply, err := s.engine.ProcessMessage(r.Context(), sess.State, req.Message, sess.Policies)
	if err != nil {
		slog.Error("Server.chatHandler: engine failed", "error", err, "sessionID", req.SessionID)
		writeJSONResponse(w, http.StatusInternalServerError, models.Error("Failed to process message"))
		return
	}

	// A completed intake is persisted and the conversation starts over.
	if reply.Completed {
		record := models.ClaimRecord{
			Submitter:   sess.User,
			SubmittedAt: time.Now(),
			ClaimData:   s.engine.ExportAnswers(sess.State),
		}
		if err := s.claims.SaveClaim(record); err != nil {
			slog.Error("Server.chatHandler: failed to persist claim", "error", err, "email", sess.User.Email)
			// The user still gets the completion reply; the claim data remains
			// in the session until reset below.
		}
		sess.State.Reset()
	}

	writeJSONResponse(w, http.StatusOK, reply)
}

// policiesHandler handles GET /policies?sessionId=...
func (s *Server) policiesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := s.sessionFromQuery(w, r)
	if !ok {
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string][]models.Policy{"policies": sess.Policies})
}

// policyHandler handles GET /policy/{number}?sessionId=...
func (s *Server) policyHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := s.sessionFromQuery(w, r)
	if !ok {
		return
	}

	number := strings.TrimPrefix(r.URL.Path, "/policy/")
	for _, p := range sess.Policies {
		if strings.EqualFold(p.PolicyNumber, number) {
			writeJSONResponse(w, http.StatusOK, map[string]models.Policy{"policy": p})
			return
		}
	}
	writeJSONResponse(w, http.StatusNotFound, models.Error("Policy not found"))
}

// healthHandler handles GET / as a health check.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]string{
		"message": "ClaimPilot API",
		"status":  "running",
	})
}

// sessionFromQuery resolves the sessionId query parameter, writing the error
// response itself when the session is missing or expired.
func (s *Server) sessionFromQuery(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.URL.Query().Get("sessionId")
	if id == "" {
		writeJSONResponse(w, http.StatusBadRequest, models.Error("sessionId is required"))
		return nil, false
	}
	sess := s.sessions.Get(id)
	if sess == nil {
		writeJSONResponse(w, http.StatusUnauthorized, models.Error("Session expired. Please login again."))
		return nil, false
	}
	return sess, true
}
