// Package export renders the flattened order listing to downloadable files.
// Each writer is a pure projection over []domain.OrderSummary; the column
// set (OrderID, Date, Customer, Payment, Total, No.Of.Items, Status) is a
// stable contract with report consumers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nvoss/storefront/internal/domain"
)

var orderHeaders = []string{"OrderID", "Date", "Customer", "Payment", "Total", "No.Of.Items", "Status"}

func orderRecord(row domain.OrderSummary) []string {
	return []string{
		row.OrderID,
		row.Date,
		row.Customer,
		row.Payment,
		strconv.FormatFloat(row.Total, 'f', 2, 64),
		strconv.Itoa(row.ItemCount),
		row.Status,
	}
}

func WriteOrdersCSV(w io.Writer, rows []domain.OrderSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(orderHeaders); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(orderRecord(row)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
