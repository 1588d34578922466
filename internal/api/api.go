// Package api provides HTTP handlers and the main API server logic for ClaimPilot.
//
// It exposes the login/logout/chat/policies endpoints consumed by the web
// frontend. The API integrates the conversation engine, the session store and
// the claim store; all conversation logic lives in the flow package.
package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/claimpilot/claimpilot/internal/flow"
	"github.com/claimpilot/claimpilot/internal/models"
	"github.com/claimpilot/claimpilot/internal/session"
	"github.com/claimpilot/claimpilot/internal/store"
)

// DefaultAddr is the default API listen address.
const DefaultAddr = ":8080"

// allowedOrigins are the frontend dev servers permitted by CORS.
var allowedOrigins = map[string]struct{}{
	"http://localhost:3000": {},
	"http://localhost:5173": {},
}

// Server wires the conversation engine, session store, claim store and demo
// user accounts behind HTTP endpoints.
type Server struct {
	engine   *flow.Engine
	sessions *session.Manager
	claims   store.ClaimStore
	users    []models.User
	addr     string
}

// Opts holds configuration options for the API server.
type Opts struct {
	Addr  string
	Users []models.User
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) { o.Addr = addr }
}

// WithUsers replaces the demo user accounts.
func WithUsers(users []models.User) Option {
	return func(o *Opts) { o.Users = users }
}

// NewServer creates an API server over the given collaborators.
func NewServer(engine *flow.Engine, sessions *session.Manager, claims store.ClaimStore, opts ...Option) *Server {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Users == nil {
		cfg.Users = DemoUsers()
	}
	slog.Debug("api.NewServer: creating server", "addr", cfg.Addr, "users", len(cfg.Users))
	return &Server{
		engine:   engine,
		sessions: sessions,
		claims:   claims,
		users:    cfg.Users,
		addr:     cfg.Addr,
	}
}

// Handler returns the server's HTTP handler with CORS applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", s.loginHandler)
	mux.HandleFunc("/logout", s.logoutHandler)
	mux.HandleFunc("/chat", s.chatHandler)
	mux.HandleFunc("/policies", s.policiesHandler)
	mux.HandleFunc("/policy/", s.policyHandler)
	mux.HandleFunc("/", s.healthHandler)
	return corsMiddleware(mux)
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	slog.Info("ClaimPilot API running", "addr", s.addr)
	if err := http.ListenAndServe(s.addr, s.Handler()); err != nil {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// corsMiddleware applies the frontend CORS policy to every request and
// answers preflight requests directly.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowedOrigins[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
