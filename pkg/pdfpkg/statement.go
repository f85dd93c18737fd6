// Package pdfpkg renders account statements as PDF documents.
package pdfpkg

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/clearledger/bank-office/internal/domain"
)

const dateLayout = "2006-01-02"

// StatementRenderer renders a statement into PDF bytes.
type StatementRenderer struct{}

// NewStatementRenderer returns a StatementRenderer.
func NewStatementRenderer() *StatementRenderer {
	return &StatementRenderer{}
}

// Render produces the PDF document for the given statement.
func (r *StatementRenderer) Render(statement domain.Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Account Statement")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Account: %s", statement.AccountNumber))
	pdf.Ln(6)

	period := "Period: full history"
	if statement.FromDate != nil || statement.ToDate != nil {
		from, to := "beginning", statement.GeneratedAt.Format(dateLayout)
		if statement.FromDate != nil {
			from = statement.FromDate.Format(dateLayout)
		}

		if statement.ToDate != nil {
			to = statement.ToDate.Format(dateLayout)
		}

		period = fmt.Sprintf("Period: %s to %s", from, to)
	}

	pdf.Cell(0, 6, period)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Opening balance: %s", statement.OpeningBalance))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Closing balance: %s", statement.ClosingBalance))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(35, 7, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Type", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 7, "Counterparty", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)

	for _, tx := range statement.Transactions {
		pdf.CellFormat(35, 6, tx.CreatedAt.Format(dateLayout), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, string(tx.Type), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, tx.Counterparty, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 6, tx.Amount, "1", 1, "R", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated at %s", statement.GeneratedAt.Format("2006-01-02 15:04:05 MST")))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
