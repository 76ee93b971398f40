// Package report turns a user's transactions into the balance shown on the
// index page and the CSV, PDF and PNG exports.
package report

import "budzet/internal/core"

// Summary is what the index page shows above the transaction list.
type Summary struct {
	Income  core.Money
	Expense core.Money
	Balance core.Money
}

// Totals sums income and expense separately. Balance is income minus
// expense, whatever the order of txs.
func Totals(txs []core.Transaction) Summary {
	var s Summary
	for _, t := range txs {
		switch t.Type {
		case core.Income:
			s.Income = s.Income.Add(t.Amount)
		case core.Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}

func Balance(txs []core.Transaction) core.Money {
	return Totals(txs).Balance
}
