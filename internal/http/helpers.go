package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"finfusion/internal/core"
	"finfusion/internal/session"
)

// clientIP extracts the client address, honoring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if i := strings.IndexByte(ip, ','); i > 0 {
			return strings.TrimSpace(ip[:i])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// currentSession resolves the request's session cookie against the session
// store. Handlers take identity from the returned session, never from any
// ambient state.
func (s *Server) currentSession(r *http.Request) (session.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return session.Session{}, false
	}
	return s.sessions.Get(cookie.Value)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// parseIDs converts the selected checkbox values to record ids, dropping
// anything non-numeric.
func parseIDs(values []string) []int64 {
	var ids []int64
	for _, v := range values {
		if id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// validationError reports whether err comes from domain validation rather
// than the store, so the handler can answer 422 instead of 500.
func validationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidDate,
		core.ErrInvalidType,
		core.ErrInvalidPaymentMethod,
		core.ErrInvalidNecessity,
		core.ErrInvalidInstallments,
		core.ErrEmptyUsername,
		core.ErrDescriptionTooLong,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

var recordTypeLabels = map[core.RecordType]string{
	core.Income:  "Income",
	core.Expense: "Expense",
}

var paymentMethodLabels = map[core.PaymentMethod]string{
	core.Cash:       "Cash",
	core.CreditCard: "Credit card",
	core.DebitCard:  "Debit card",
	core.Transfer:   "Transfer",
}

var necessityLabels = map[core.Necessity]string{
	core.Essential:    "Essential",
	core.NonEssential: "Non-essential",
}
