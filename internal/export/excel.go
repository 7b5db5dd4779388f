package export

import (
	"fmt"
	"io"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/tealeg/xlsx"
)

func WriteOrdersExcel(w io.Writer, rows []domain.OrderSummary) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range orderHeaders {
		header.AddCell().Value = h
	}

	for _, row := range rows {
		r := sheet.AddRow()
		r.AddCell().Value = row.OrderID
		r.AddCell().Value = row.Date
		r.AddCell().Value = row.Customer
		r.AddCell().Value = row.Payment
		r.AddCell().SetFloatWithFormat(row.Total, "0.00")
		r.AddCell().SetInt(row.ItemCount)
		r.AddCell().Value = row.Status
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
