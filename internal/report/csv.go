package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"budzet/internal/core"
)

var csvHeader = []string{"type", "category", "amount", "description", "receipt"}

// WriteCSV writes a header and one row per transaction in the given order.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txs {
		row := []string{t.Type.String(), t.Category, t.Amount.String(), t.Description, t.Receipt}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
