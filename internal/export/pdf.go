package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"github.com/nvoss/storefront/internal/domain"
)

func WriteOrdersPDF(w io.Writer, rows []domain.OrderSummary) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Orders List", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range rows {
		writeLine(pdf, "OrderID", row.OrderID)
		writeLine(pdf, "Date", row.Date)
		writeLine(pdf, "Customer", row.Customer)
		writeLine(pdf, "Payment", row.Payment)
		writeLine(pdf, "Total", strconv.FormatFloat(row.Total, 'f', 2, 64))
		writeLine(pdf, "No. Of Items", strconv.Itoa(row.ItemCount))
		writeLine(pdf, "Status", row.Status)
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}

func writeLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", label, value), "", 1, "L", false, 0, "")
}
