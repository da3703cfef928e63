package http

import (
	"errors"
	"log/slog"
	"net/http"

	"finfusion/internal/core"
	"finfusion/internal/services"
)

type loginPageData struct {
	Error   string
	Message string
}

type dashboardData struct {
	Username string
	Balance  string
	Negative bool
}

// handleIndex shows the dashboard for a logged-in session, otherwise the
// login/register page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sess, ok := s.currentSession(r)
	if !ok {
		s.render(w, r, "login.html", loginPageData{
			Message: r.URL.Query().Get("msg"),
		})
		return
	}

	balance, err := s.svc.Balance(r.Context(), sess.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to compute balance",
			"error", err,
			"username", sess.Username,
			"operation", "balance")
		s.renderStatus(w, r, http.StatusInternalServerError, "error.html", nil)
		return
	}

	s.render(w, r, "dashboard.html", dashboardData{
		Username: sess.Username,
		Balance:  core.FormatBRL(balance),
		Negative: balance.Cents < 0,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")

	ok, err := s.svc.Authenticate(r.Context(), username, password)
	if err != nil {
		slog.ErrorContext(r.Context(), "Authentication lookup failed",
			"error", err,
			"username", username)
		s.renderStatus(w, r, http.StatusInternalServerError, "login.html", loginPageData{
			Error: "Something went wrong. Please try again.",
		})
		return
	}
	if !ok {
		slog.WarnContext(r.Context(), "Login rejected", "username", username)
		s.renderStatus(w, r, http.StatusUnauthorized, "login.html", loginPageData{
			Error: "Incorrect username or password.",
		})
		return
	}

	token, err := s.sessions.Create(username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session creation failed", "error", err)
		s.renderStatus(w, r, http.StatusInternalServerError, "login.html", loginPageData{
			Error: "Something went wrong. Please try again.",
		})
		return
	}

	slog.InfoContext(r.Context(), "User logged in", "username", username)
	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	username := sanitizeInput(r.Form.Get("username"))
	password := r.Form.Get("password")

	if err := s.svc.Register(r.Context(), username, password); err != nil {
		status := http.StatusUnprocessableEntity
		msg := "Registration failed. Please try again."
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			msg = "That username is already taken."
		case errors.Is(err, services.ErrEmptyUsername):
			msg = "A username is required."
		case errors.Is(err, services.ErrPasswordTooShort):
			msg = "Password must be at least 6 characters."
		default:
			slog.ErrorContext(r.Context(), "Registration failed",
				"error", err,
				"username", username)
			status = http.StatusInternalServerError
		}
		s.renderStatus(w, r, status, "login.html", loginPageData{Error: msg})
		return
	}

	slog.InfoContext(r.Context(), "Registration completed", "username", username)
	http.Redirect(w, r, "/?msg=Account+created.+You+can+log+in+now.", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if cookie, err := r.Cookie(sessionCookie); err == nil {
		s.sessions.Destroy(cookie.Value)
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
