package receipt

import (
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// RenderPDF writes a single-page receipt document. Optional fields may be
// empty; the render always completes for a persisted receipt.
func RenderPDF(w io.Writer, rcpt *Receipt) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Receipt number: %s", rcpt.ID), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Date: %s", rcpt.Date.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Amount: %.2f", rcpt.Amount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, fmt.Sprintf("Client: %s", rcpt.ClientName), "", 1, "L", false, 0, "")
	if rcpt.Description != "" {
		pdf.CellFormat(0, 8, fmt.Sprintf("Description: %s", rcpt.Description), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
