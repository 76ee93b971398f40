package http

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"budzet/internal/core"
)

func TestPathID(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/edit/x", nil)
			r.SetPathValue("id", tt.raw)
			got, ok := pathID(r)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("pathID(%q) = %d, %v; want %d, %v", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Food  ", "Food"},
		{"a\x00b\x07c", "abc"},
		{"line1\nline2", "line1 line2"},
		{"line1\r\nline2", "line1  line2"},
		{"tab\there", "tab here"},
		{"trailing\n", "trailing"},
		{"del\x7f", "del"},
		{"Żywność", "Żywność"},
	}
	for _, tt := range tests {
		if got := sanitizeInput(tt.in); got != tt.want {
			t.Errorf("sanitizeInput(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseTransactionForm(t *testing.T) {
	body := strings.NewReader("type=+expense+&category=Food&amount=12,50&description=lunch&receipt=%00R-7")
	r := httptest.NewRequest(http.MethodPost, "/add", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	in, err := parseTransactionForm(r)
	if err != nil {
		t.Fatalf("parseTransactionForm: %v", err)
	}
	if in.Type != "expense" || in.Category != "Food" || in.Amount != "12,50" ||
		in.Description != "lunch" || in.Receipt != "R-7" {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestCredentialsKeepPasswordVerbatim(t *testing.T) {
	body := strings.NewReader("username=+alice+&password=+secret+")
	r := httptest.NewRequest(http.MethodPost, "/login", body)
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	u, p, err := credentials(r)
	if err != nil {
		t.Fatalf("credentials: %v", err)
	}
	if u != "alice" || p != " secret " {
		t.Fatalf("credentials = %q, %q", u, p)
	}
}

func TestValidationDetail(t *testing.T) {
	err := fmt.Errorf("create transaction: %w", core.ErrInvalidKind)
	if got := validationDetail(err); got != "type must be income or expense" {
		t.Fatalf("validationDetail = %q", got)
	}
}

func TestDownload(t *testing.T) {
	rr := httptest.NewRecorder()
	download(rr, "text/csv", "raport.csv", bytes.NewBufferString("a,b\n"))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="raport.csv"` {
		t.Fatalf("Content-Disposition = %q", got)
	}
	if got := rr.Header().Get("Content-Length"); got != "4" {
		t.Fatalf("Content-Length = %q", got)
	}

	rr = httptest.NewRecorder()
	download(rr, "image/png", "", bytes.NewBufferString("png"))
	if got := rr.Header().Get("Content-Disposition"); got != "" {
		t.Fatalf("inline download should not set Content-Disposition, got %q", got)
	}
}

func TestKindLabelAndSignedAmount(t *testing.T) {
	if kindLabel(core.Income) != "Przychód" || kindLabel(core.Expense) != "Wydatek" {
		t.Fatal("unexpected kind labels")
	}
	in := core.Transaction{Type: core.Income, Amount: core.Money{Cents: 10000}}
	out := core.Transaction{Type: core.Expense, Amount: core.Money{Cents: 4000}}
	if signedAmount(in) != "+100.00" || signedAmount(out) != "-40.00" {
		t.Fatalf("signed = %q, %q", signedAmount(in), signedAmount(out))
	}
}
