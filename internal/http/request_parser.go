package http

import (
	"net/http"
	"strconv"

	"budzet/internal/services"
)

// parseTransactionForm reads the add/edit form. Values are sanitized but
// not validated; the service does that.
func parseTransactionForm(r *http.Request) (services.TransactionInput, error) {
	if err := r.ParseForm(); err != nil {
		return services.TransactionInput{}, err
	}
	return services.TransactionInput{
		Type:        sanitizeInput(r.PostForm.Get("type")),
		Category:    sanitizeInput(r.PostForm.Get("category")),
		Amount:      sanitizeInput(r.PostForm.Get("amount")),
		Description: sanitizeInput(r.PostForm.Get("description")),
		Receipt:     sanitizeInput(r.PostForm.Get("receipt")),
	}, nil
}

// credentials reads username and password from a login/register form.
// The password is taken verbatim.
func credentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", err
	}
	return sanitizeInput(r.PostForm.Get("username")), r.PostForm.Get("password"), nil
}

// pathID parses the {id} path segment. ok is false for anything that is not
// a positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
