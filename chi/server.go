// Package chi serves the web chat UI over the question answering service.
package chi

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/semdegroot/apotheek"
)

const sessionCookie = "apotheek_session"

var chatTemplate = template.Must(template.New("chat").Parse(chatPage))

// Server is the HTTP server for the chat UI.
type Server struct {
	server   *http.Server
	router   chi.Router
	asker    apotheek.Asker
	sessions *sessionStore
	log      *slog.Logger
	model    string
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithModelName sets the model name shown in the page header.
func WithModelName(model string) ServerOption {
	return func(s *Server) {
		s.model = model
	}
}

// NewServer creates and configures the chat server.
func NewServer(asker apotheek.Asker, log *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		asker:    asker,
		sessions: newSessionStore(),
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))

	r.Get("/", s.handleIndex)
	r.Post("/chat", s.handleChat)
	r.Get("/clear", s.handleClear)
	r.Get("/healthz", s.handleHealth)

	s.router = r
}

// Open starts listening on addr. It returns once the listener is up.
func (s *Server) Open(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// sessionID returns the request's session ID, setting a cookie on first
// contact.
func (s *Server) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	id := newSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)

	data := struct {
		Model string
		Turns []Turn
	}{
		Model: s.model,
		Turns: s.sessions.history(id),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chatTemplate.Execute(w, data); err != nil {
		s.log.Error("render chat page", "err", err)
	}
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	turn := Turn{Question: question}
	answer, err := s.asker.Ask(r.Context(), question)
	switch {
	case apotheek.ErrorCode(err) == apotheek.ENOTFOUND:
		turn.Err = "Geen context gevonden in de index. Bouw eerst de index of pas je vraag aan."
	case err != nil:
		s.log.Error("ask failed", "err", err)
		turn.Err = "Er ging iets mis bij het beantwoorden van je vraag."
	default:
		turn.Answer = answer.Text
		turn.Sources = answer.Sources
	}

	s.sessions.append(id, turn)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	id := s.sessionID(w, r)
	s.sessions.clear(id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// requestLogger logs incoming requests.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
