package report

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"budzet/internal/core"

	"github.com/wcharczuk/go-chart/v2"
)

// ErrNoChartData is returned when there is no expense to draw.
var ErrNoChartData = errors.New("no expenses to chart")

type CategorySlice struct {
	Category string
	Amount   core.Money
}

// ExpenseByCategory sums expenses per category, sorted by category name.
// Income rows add nothing to the sum but still make their category appear,
// possibly with a zero amount.
func ExpenseByCategory(txs []core.Transaction) []CategorySlice {
	sums := make(map[string]core.Money)
	for _, t := range txs {
		var amount core.Money
		if t.Type == core.Expense {
			amount = t.Amount
		}
		sums[t.Category] = sums[t.Category].Add(amount)
	}

	out := make([]CategorySlice, 0, len(sums))
	for c, m := range sums {
		out = append(out, CategorySlice{Category: c, Amount: m})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// WritePieChart renders slices as a 600x600 PNG pie labelled with each
// category's share. Zero slices are not drawn.
func WritePieChart(w io.Writer, slices []CategorySlice) error {
	var total int64
	for _, s := range slices {
		total += s.Amount.Cents
	}
	if total == 0 {
		return ErrNoChartData
	}

	values := make([]chart.Value, 0, len(slices))
	for _, s := range slices {
		if s.Amount.IsZero() {
			continue
		}
		pct := float64(s.Amount.Cents) / float64(total) * 100
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %.1f%%", s.Category, pct),
			Value: s.Amount.Float64(),
		})
	}

	pie := chart.PieChart{
		Width:  600,
		Height: 600,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: chart.ColorWhite,
		},
	}

	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}
