package http

import (
	"log/slog"
	"net/http"
	"time"

	"finfusion/internal/core"
)

type insertPageData struct {
	Username string
	Error    string
	Today    string
}

type recordsPageData struct {
	Username   string
	Records    []recordView
	StoreError bool
	Message    string
	Warning    string
}

// handleInsertForm shows the record entry form.
func (s *Server) handleInsertForm(w http.ResponseWriter, r *http.Request) {
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

	s.render(w, r, "insert.html", insertPageData{
		Username: sess.Username,
		Today:    time.Now().Format("2006-01-02"),
	})
}

// handleRecords lists the user's rows (GET) or creates one (POST).
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.listRecords(w, r, sess.Username)
	case http.MethodPost:
		s.createRecord(w, r, sess.Username)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) listRecords(w http.ResponseWriter, r *http.Request, username string) {
	data := recordsPageData{
		Username: username,
		Message:  r.URL.Query().Get("msg"),
		Warning:  r.URL.Query().Get("warn"),
	}

	records, err := s.svc.Records(r.Context(), username)
	if err != nil {
		// Read failures degrade to an explicit error state on the page,
		// distinct from "no data yet".
		slog.ErrorContext(r.Context(), "Failed to list records",
			"error", err,
			"username", username,
			"operation", "list")
		data.StoreError = true
		s.render(w, r, "records.html", data)
		return
	}

	data.Records = toRecordViews(records)
	s.render(w, r, "records.html", data)
}

func (s *Server) createRecord(w http.ResponseWriter, r *http.Request, username string) {
	if err := r.ParseForm(); err != nil {
		s.renderStatus(w, r, http.StatusBadRequest, "insert.html", insertPageData{
			Username: username,
			Error:    "Invalid form submission.",
			Today:    time.Now().Format("2006-01-02"),
		})
		return
	}

	fail := func(status int, msg string) {
		s.renderStatus(w, r, status, "insert.html", insertPageData{
			Username: username,
			Error:    msg,
			Today:    time.Now().Format("2006-01-02"),
		})
	}

	date, err := parseDate(sanitizeInput(r.Form.Get("date")))
	if err != nil {
		fail(http.StatusUnprocessableEntity, "Invalid date.")
		return
	}

	cents, err := core.ParseDecimalToCents(r.Form.Get("amount"))
	if err != nil {
		fail(http.StatusUnprocessableEntity, "Invalid amount.")
		return
	}

	installments := 1
	if v := sanitizeInput(r.Form.Get("installments")); v != "" {
		if n, err := parseInt(v); err == nil {
			installments = n
		}
	}

	rec := core.Record{
		Username:      username,
		Date:          date,
		Description:   sanitizeInput(r.Form.Get("description")),
		Amount:        core.Money{Cents: cents},
		Type:          core.RecordType(r.Form.Get("type")),
		PaymentMethod: core.PaymentMethod(r.Form.Get("payment_method")),
		Installments:  installments,
		Necessity:     core.Necessity(r.Form.Get("necessity")),
	}

	id, err := s.svc.AddRecord(r.Context(), rec)
	if err != nil {
		if validationError(err) {
			fail(http.StatusUnprocessableEntity, "Invalid data: "+err.Error())
			return
		}
		// Write failures are fatal to the action.
		slog.ErrorContext(r.Context(), "Failed to save record",
			"error", err,
			"username", username,
			"amount_cents", rec.Amount.Cents,
			"operation", "create")
		fail(http.StatusInternalServerError, "Error saving the record. Please try again.")
		return
	}

	slog.InfoContext(r.Context(), "Record created",
		"id", id,
		"username", username,
		"amount_cents", rec.Amount.Cents,
		"record_type", string(rec.Type),
		"operation", "create")

	http.Redirect(w, r, "/records?msg=Record+added.", http.StatusSeeOther)
}

// handleDeleteRecords batch-deletes the checked rows.
func (s *Server) handleDeleteRecords(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.currentSession(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ids := parseIDs(r.Form["id"])
	if len(ids) == 0 {
		http.Redirect(w, r, "/records?warn=No+rows+selected.", http.StatusSeeOther)
		return
	}

	if err := s.svc.DeleteRecords(r.Context(), ids); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete records",
			"error", err,
			"username", sess.Username,
			"count", len(ids),
			"operation", "delete")
		s.renderStatus(w, r, http.StatusInternalServerError, "records.html", recordsPageData{
			Username:   sess.Username,
			StoreError: true,
		})
		return
	}

	slog.InfoContext(r.Context(), "Records deleted",
		"username", sess.Username,
		"count", len(ids),
		"operation", "delete")

	http.Redirect(w, r, "/records?msg=Records+removed.", http.StatusSeeOther)
}
