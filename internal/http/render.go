package http

import (
	"log/slog"
	"net/http"

	"finfusion/internal/core"
)

// recordView is one table row, with amounts and enums formatted for display.
type recordView struct {
	ID            int64
	Date          string
	Description   string
	Amount        string
	Type          string
	PaymentMethod string
	Installments  int
	Necessity     string
}

func toRecordViews(records []core.Record) []recordView {
	views := make([]recordView, len(records))
	for i, r := range records {
		views[i] = recordView{
			ID:            r.ID,
			Date:          r.Date.Format("2006-01-02"),
			Description:   r.Description,
			Amount:        core.FormatBRL(r.Amount),
			Type:          recordTypeLabels[r.Type],
			PaymentMethod: paymentMethodLabels[r.PaymentMethod],
			Installments:  r.Installments,
			Necessity:     necessityLabels[r.Necessity],
		}
	}
	return views
}

// render executes the named template with a 200 status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	s.renderStatus(w, r, http.StatusOK, name, data)
}

// renderStatus executes the named template, falling back to a bare 500 when
// templates failed to load.
func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed",
			"template", name,
			"error", err)
	}
}
