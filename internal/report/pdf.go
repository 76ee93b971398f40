package report

import (
	"fmt"
	"io"

	"budzet/internal/core"

	"github.com/phpdave11/gofpdf"
	"github.com/wcharczuk/go-chart/v2/roboto"
)

// Page geometry in points, measured from the bottom of the page.
const (
	pdfLeft       = 100.0
	pdfTop        = 800.0
	pdfLineHeight = 20.0
	pdfBottom     = 50.0
	pdfFontSize   = 12.0
	pdfFont       = "Roboto"
)

type pdfLine struct {
	Y    float64
	Text string
}

type pdfPage struct {
	Lines []pdfLine
}

func headerLine(username string) string {
	return "Raport PDF - Użytkownik: " + username
}

func transactionLine(t core.Transaction) string {
	return fmt.Sprintf("%s | %s | %s PLN | %s | Dowód: %s",
		t.Type, t.Category, t.Amount, t.Description, t.Receipt)
}

// layoutPages places the header and one line per transaction. The cursor
// steps down one line after every line; when it falls below pdfBottom the
// next line opens a new page at pdfTop. A page is only created when a line
// lands on it, so there is never an empty trailing page.
func layoutPages(header string, lines []string) []pdfPage {
	pages := []pdfPage{{Lines: []pdfLine{{Y: pdfTop, Text: header}}}}
	y := pdfTop - pdfLineHeight
	newPage := false

	for _, text := range lines {
		if newPage {
			pages = append(pages, pdfPage{})
			y = pdfTop
			newPage = false
		}
		cur := &pages[len(pages)-1]
		cur.Lines = append(cur.Lines, pdfLine{Y: y, Text: text})
		y -= pdfLineHeight
		if y < pdfBottom {
			newPage = true
		}
	}
	return pages
}

func buildPDF(username string, txs []core.Transaction) *gofpdf.Fpdf {
	lines := make([]string, len(txs))
	for i, t := range txs {
		lines[i] = transactionLine(t)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle("Raport PDF", true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddUTF8FontFromBytes(pdfFont, "", roboto.Roboto)
	_, pageHeight := pdf.GetPageSize()

	for _, page := range layoutPages(headerLine(username), lines) {
		pdf.AddPage()
		pdf.SetFont(pdfFont, "", pdfFontSize)
		for _, l := range page.Lines {
			pdf.Text(pdfLeft, pageHeight-l.Y, l.Text)
		}
	}
	return pdf
}

// WritePDF renders the report for username to w.
func WritePDF(w io.Writer, username string, txs []core.Transaction) error {
	pdf := buildPDF(username, txs)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
