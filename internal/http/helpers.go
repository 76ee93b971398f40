package http

import (
	"html/template"
	"net/http"
	"strings"

	"budzet/internal/core"
	"budzet/internal/log"
)

var templateFuncs = template.FuncMap{
	"kindLabel": kindLabel,
	"signed":    signedAmount,
}

// kindLabel is the Polish label for a transaction type.
func kindLabel(k core.Kind) string {
	switch k {
	case core.Income:
		return "Przychód"
	case core.Expense:
		return "Wydatek"
	default:
		return string(k)
	}
}

// signedAmount renders an amount with the sign it has in the balance.
func signedAmount(t core.Transaction) string {
	if t.Type == core.Expense {
		return "-" + t.Amount.String()
	}
	return "+" + t.Amount.String()
}

// sanitizeInput keeps a form value on a single line: tabs and line breaks
// become spaces, other control characters are dropped, and the result is
// trimmed. CSV rows and PDF lines rely on this.
func sanitizeInput(s string) string {
	s = strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case r < 32 || r == 0x7f:
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// log returns the request-scoped logger tagged for the HTTP component.
func (s *Server) log(r *http.Request) *log.Logger {
	if l := log.FromContext(r.Context()); l.Component() != "unknown" {
		return l.WithComponent(log.ComponentHTTP)
	}
	return s.logger
}
