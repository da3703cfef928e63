package http

import (
	"log/slog"
	"net/http"

	"finfusion/internal/core"
)

type alertView struct {
	Kind     string
	Message  string
	Severity string
}

type analysisPageData struct {
	Username     string
	Balance      string
	Expenses     []recordView
	NonEssential []recordView
	Alerts       []alertView
	StoreError   bool
}

// handleAnalysis renders the expense ranking and the alert set.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	analysis, err := s.svc.Analyze(r.Context(), sess.Username)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to run analysis",
			"error", err,
			"username", sess.Username,
			"operation", "analyze")
		s.render(w, r, "analysis.html", analysisPageData{
			Username:   sess.Username,
			StoreError: true,
		})
		return
	}

	alerts := make([]alertView, len(analysis.Alerts))
	for i, a := range analysis.Alerts {
		alerts[i] = alertView{
			Kind:     string(a.Kind),
			Message:  a.Message,
			Severity: string(a.Severity),
		}
	}

	s.render(w, r, "analysis.html", analysisPageData{
		Username:     sess.Username,
		Balance:      core.FormatBRL(analysis.Balance),
		Expenses:     toRecordViews(analysis.Expenses),
		NonEssential: toRecordViews(analysis.NonEssential),
		Alerts:       alerts,
	})
}
