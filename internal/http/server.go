// Package http serves the page controller: login/register, record entry,
// the record table, batch delete, and the analysis view.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"

	"finfusion/internal/core"
	"finfusion/internal/middleware/ratelimit"
	"finfusion/internal/middleware/security"
	"finfusion/internal/middleware/trace"
	"finfusion/internal/services"
	"finfusion/internal/session"
	appweb "finfusion/web"
)

const sessionCookie = "finfusion_session"

type Server struct {
	http.Server
	templates *template.Template
	svc       *services.FinanceService
	sessions  *session.Manager

	authLimiter  *ratelimit.Limiter
	shutdownOnce sync.Once
}

// Options tunes the server middleware.
type Options struct {
	AuthRequestsPerMinute int
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, svc *services.FinanceService, sessions *session.Manager, opts Options) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		svc:      svc,
		sessions: sessions,
		authLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.AuthRequestsPerMinute,
		}),
	}

	// Parse embedded templates at startup.
	t, err := template.New("").Funcs(template.FuncMap{
		"brl": func(m core.Money) string { return core.FormatBRL(m) },
	}).ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	headers := security.Middleware(security.DefaultHeadersConfig())
	traced := trace.Middleware(clientIP)
	page := func(h http.HandlerFunc) http.Handler {
		return traced(headers(h))
	}
	limited := s.authLimiter.Middleware(clientIP)

	mux.Handle("/", page(s.handleIndex))
	mux.Handle("/login", traced(headers(limited(http.HandlerFunc(s.handleLogin)))))
	mux.Handle("/register", traced(headers(limited(http.HandlerFunc(s.handleRegister)))))
	mux.Handle("/logout", page(s.handleLogout))
	mux.Handle("/insert", page(s.handleInsertForm))
	mux.Handle("/records", page(s.handleRecords))
	mux.Handle("/records/delete", page(s.handleDeleteRecords))
	mux.Handle("/analysis", page(s.handleAnalysis))
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)

	return s
}

// Shutdown stops the HTTP server and the middleware goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.authLimiter != nil {
			s.authLimiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unreachable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
