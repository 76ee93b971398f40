package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"budzet/internal/core"
	"budzet/internal/log"

	"github.com/stretchr/testify/require"
)

// syncBuffer lets the server goroutines and the test share a log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

// records decodes every JSON log line written so far.
func (b *syncBuffer) records(t *testing.T) []map[string]any {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(b.buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &rec))
		out = append(out, rec)
	}
	return out
}

func jsonLogger(w *syncBuffer) *log.Logger {
	return log.New(log.Config{Handler: slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})})
}

func findRecord(recs []map[string]any, msg string) map[string]any {
	for _, r := range recs {
		if r["msg"] == msg {
			return r
		}
	}
	return nil
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
		wantType   string
		wantLevel  string
	}{
		{"validation", fmt.Errorf("create: %w", core.ErrInvalidAmount), http.StatusUnprocessableEntity, "Nieprawidłowe dane: invalid amount", log.ErrorTypeValidation, "DEBUG"},
		{"conflict", core.ErrConflict, http.StatusConflict, msgUserExists, log.ErrorTypeConflict, "DEBUG"},
		{"auth", core.ErrAuth, http.StatusUnauthorized, msgBadLogin, log.ErrorTypeAuth, "DEBUG"},
		{"not found", core.ErrNotFound, http.StatusNotFound, msgNotFound, log.ErrorTypeNotFound, "DEBUG"},
		{"forbidden", core.ErrForbidden, http.StatusSeeOther, "", log.ErrorTypeForbidden, "DEBUG"},
		{"internal", errors.New("disk full"), http.StatusInternalServerError, msgInternalError, log.ErrorTypeInternal, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out syncBuffer
			s := &Server{logger: jsonLogger(&out)}

			r := httptest.NewRequest(http.MethodGet, "/export/pdf", nil)
			r.Pattern = "GET /export/pdf"
			rr := httptest.NewRecorder()
			s.writeError(rr, r, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusSeeOther {
				require.Equal(t, "/", rr.Header().Get("Location"))
			} else {
				require.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
			}

			recs := out.records(t)
			require.Len(t, recs, 1)
			rec := recs[0]
			require.Equal(t, tt.wantLevel, rec["level"])
			require.Equal(t, tt.wantType, rec[log.FieldErrorType])
			require.Equal(t, tt.err.Error(), rec[log.FieldError])
			require.Equal(t, "/export/pdf", rec[log.FieldPath])
			if tt.wantLevel == "ERROR" {
				require.Equal(t, "GET /export/pdf", rec[log.FieldOperation])
			}
		})
	}
}

func TestRequestLogsCarryUserAndRequestID(t *testing.T) {
	var out syncBuffer
	a := newAppLogging(t, 0, jsonLogger(&out))
	b := a.browser(t)
	b.signIn("alice")

	res := b.post("/add", txForm("gift", "X", "1"))
	require.Equal(t, http.StatusUnprocessableEntity, res.status)

	rec := findRecord(out.records(t), "Request rejected")
	require.NotNil(t, rec)
	require.Equal(t, log.ComponentHTTP, rec[log.FieldComponent])
	require.Equal(t, "alice", rec[log.FieldUsername])
	require.EqualValues(t, 1, rec[log.FieldUserID])
	require.Equal(t, res.header.Get("X-Request-ID"), rec[log.FieldRequestID])
}
