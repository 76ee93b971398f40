package http

import (
	"net/http"

	"budzet/internal/core"
	"budzet/internal/report"
)

type indexData struct {
	Transactions []core.Transaction
	Summary      report.Summary
}

type formData struct {
	Action      string
	Submit      string
	Transaction core.Transaction
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request, user core.User) {
	txs, err := s.transactions.List(r.Context(), user)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "index.html", page{
		Title:    "Budżet domowy",
		Username: user.Username,
		Data: indexData{
			Transactions: txs,
			Summary:      report.Totals(txs),
		},
	})
}

func (s *Server) handleAddForm(w http.ResponseWriter, r *http.Request, user core.User) {
	s.render(w, r, http.StatusOK, "form.html", page{
		Title:    "Dodaj transakcję",
		Username: user.Username,
		Data: formData{
			Action:      "/add",
			Submit:      "Dodaj",
			Transaction: core.Transaction{Type: core.Expense},
		},
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request, user core.User) {
	in, err := parseTransactionForm(r)
	if err != nil {
		http.Error(w, "Nieprawidłowy formularz", http.StatusBadRequest)
		return
	}

	if _, err := s.transactions.Create(r.Context(), user, in); err != nil {
		s.writeError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request, user core.User) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	t, err := s.transactions.Get(r.Context(), user, id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.render(w, r, http.StatusOK, "form.html", page{
		Title:    "Edytuj transakcję",
		Username: user.Username,
		Data: formData{
			Action:      r.URL.Path,
			Submit:      "Zapisz",
			Transaction: t,
		},
	})
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request, user core.User) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	in, err := parseTransactionForm(r)
	if err != nil {
		http.Error(w, "Nieprawidłowy formularz", http.StatusBadRequest)
		return
	}

	if _, err := s.transactions.Update(r.Context(), user, id, in); err != nil {
		s.writeError(w, r, err)
		return
	}
	redirect(w, r, "/")
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request, user core.User) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.transactions.Delete(r.Context(), user, id); err != nil {
		s.writeError(w, r, err)
		return
	}
	redirect(w, r, "/")
}
