package report

import (
	"bytes"
	"encoding/csv"
	"math/rand"
	"strings"
	"testing"

	"budzet/internal/core"

	"github.com/stretchr/testify/require"
)

func tx(kind core.Kind, category string, cents int64) core.Transaction {
	return core.Transaction{Type: kind, Category: category, Amount: core.Money{Cents: cents}}
}

func TestTotalsAliceScenario(t *testing.T) {
	s := Totals([]core.Transaction{
		tx(core.Income, "Pensja", 10000),
		tx(core.Expense, "Jedzenie", 4000),
	})
	require.Equal(t, "100.00", s.Income.String())
	require.Equal(t, "40.00", s.Expense.String())
	require.Equal(t, "60.00", s.Balance.String())
}

func TestBalanceIsOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	txs := make([]core.Transaction, 50)
	var want int64
	for i := range txs {
		cents := r.Int63n(100000)
		if r.Intn(2) == 0 {
			txs[i] = tx(core.Income, "a", cents)
			want += cents
		} else {
			txs[i] = tx(core.Expense, "b", cents)
			want -= cents
		}
	}

	for i := 0; i < 10; i++ {
		r.Shuffle(len(txs), func(a, b int) { txs[a], txs[b] = txs[b], txs[a] })
		require.EqualValues(t, want, Balance(txs).Cents)
	}
	require.True(t, Balance(nil).IsZero())
}

func TestWriteCSV(t *testing.T) {
	for _, n := range []int{0, 1, 7} {
		txs := make([]core.Transaction, n)
		for i := range txs {
			txs[i] = tx(core.Expense, "Dom", int64(i*100+5))
		}

		var buf bytes.Buffer
		require.NoError(t, WriteCSV(&buf, txs))

		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, n+1)
		require.Equal(t, "type,category,amount,description,receipt", lines[0])
	}
}

func TestWriteCSVQuotesAndOrder(t *testing.T) {
	txs := []core.Transaction{
		{Type: core.Income, Category: "Pensja", Amount: core.Money{Cents: 10000}, Description: "wypłata, marzec", Receipt: "PIT"},
		{Type: core.Expense, Category: "Jedzenie", Amount: core.Money{Cents: 4050}, Description: `"obiad"`},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txs))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"type", "category", "amount", "description", "receipt"},
		{"income", "Pensja", "100.00", "wypłata, marzec", "PIT"},
		{"expense", "Jedzenie", "40.50", `"obiad"`, ""},
	}, records)
}

func linesOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line"
	}
	return out
}

func TestLayoutPages(t *testing.T) {
	tests := []struct {
		lines     int
		wantPages []int // lines per page, header included on page one
	}{
		{0, []int{1}},
		{1, []int{2}},
		{37, []int{38}},
		{38, []int{38, 1}},
		{75, []int{38, 38}},
		{76, []int{38, 38, 1}},
	}
	for _, tt := range tests {
		pages := layoutPages("header", linesOf(tt.lines))
		got := make([]int, len(pages))
		for i, p := range pages {
			got[i] = len(p.Lines)
		}
		require.Equal(t, tt.wantPages, got, "%d transaction lines", tt.lines)
	}
}

func TestLayoutPagesPositions(t *testing.T) {
	pages := layoutPages("header", linesOf(40))
	first := pages[0].Lines
	require.Equal(t, pdfLine{Y: 800, Text: "header"}, first[0])
	require.Equal(t, 780.0, first[1].Y)
	require.Equal(t, 60.0, first[len(first)-1].Y)

	second := pages[1].Lines
	require.Equal(t, 800.0, second[0].Y)
	require.Len(t, second, 3)
	for _, p := range pages {
		for _, l := range p.Lines {
			require.GreaterOrEqual(t, l.Y, pdfBottom)
		}
	}
}

func TestWritePDF(t *testing.T) {
	txs := make([]core.Transaction, 40)
	for i := range txs {
		txs[i] = tx(core.Expense, "Jedzenie", 1234)
	}

	pdf := buildPDF("żaneta", txs)
	require.Equal(t, 2, pdf.PageCount())

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, "żaneta", txs))
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestTransactionLine(t *testing.T) {
	line := transactionLine(core.Transaction{
		Type: core.Expense, Category: "Jedzenie", Amount: core.Money{Cents: 4000},
		Description: "obiad", Receipt: "P/1",
	})
	require.Equal(t, "expense | Jedzenie | 40.00 PLN | obiad | Dowód: P/1", line)
	require.Equal(t, "Raport PDF - Użytkownik: alice", headerLine("alice"))
}

func TestExpenseByCategory(t *testing.T) {
	got := ExpenseByCategory([]core.Transaction{
		tx(core.Expense, "Jedzenie", 1000),
		tx(core.Income, "Pensja", 10000),
		tx(core.Expense, "Dom", 500),
		tx(core.Expense, "Jedzenie", 250),
	})
	require.Equal(t, []CategorySlice{
		{Category: "Dom", Amount: core.Money{Cents: 500}},
		{Category: "Jedzenie", Amount: core.Money{Cents: 1250}},
		{Category: "Pensja", Amount: core.Money{}},
	}, got)
}

func TestWritePieChart(t *testing.T) {
	var buf bytes.Buffer
	err := WritePieChart(&buf, []CategorySlice{
		{Category: "Dom", Amount: core.Money{Cents: 500}},
		{Category: "Jedzenie", Amount: core.Money{Cents: 1500}},
		{Category: "Pensja"},
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")))
}

func TestWritePieChartWithoutExpenses(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, WritePieChart(&buf, nil), ErrNoChartData)
	require.ErrorIs(t, WritePieChart(&buf, ExpenseByCategory([]core.Transaction{tx(core.Income, "Pensja", 100)})), ErrNoChartData)
	require.Zero(t, buf.Len())
}
