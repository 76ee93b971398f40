package http

import (
	"bytes"
	"errors"
	"net/http"

	"budzet/internal/core"
	"budzet/internal/log"
	"budzet/internal/report"
)

func (s *Server) handleExportPDF(w http.ResponseWriter, r *http.Request, user core.User) {
	txs, err := s.transactions.List(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, user.Username, txs); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logExport(r, user, "pdf", len(txs))
	download(w, "application/pdf", "raport.pdf", &buf)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request, user core.User) {
	txs, err := s.transactions.List(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, txs); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logExport(r, user, "csv", len(txs))
	download(w, "text/csv", "raport.csv", &buf)
}

// handleChart answers 404 when there are no expenses to draw.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request, user core.User) {
	txs, err := s.transactions.List(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var buf bytes.Buffer
	err = report.WritePieChart(&buf, report.ExpenseByCategory(txs))
	if errors.Is(err, report.ErrNoChartData) {
		http.Error(w, "Brak wydatków do pokazania na wykresie", http.StatusNotFound)
		return
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	download(w, "image/png", "", &buf)
}

func (s *Server) logExport(r *http.Request, user core.User, format string, rows int) {
	s.log(r).WithComponent(log.ComponentReport).InfoContext(r.Context(), "Report exported",
		log.FieldOperation, log.OpExport,
		log.FieldFormat, format,
		log.FieldUserID, user.ID,
		"rows", rows)
}
