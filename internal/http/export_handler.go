package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nvoss/storefront/internal/export"
)

// ExportHandler streams the order listing as a downloadable file. All three
// formats are projections over the same ListOrders rows.
type ExportHandler struct {
	orders  orderService
	timeout time.Duration
}

func NewExportHandler(orders orderService, timeout time.Duration) *ExportHandler {
	return &ExportHandler{
		orders:  orders,
		timeout: timeout,
	}
}

// GET /api/v1/orders/export/csv
func (h *ExportHandler) OrdersCSV(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rows, err := h.orders.ListOrders(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := export.WriteOrdersCSV(w, rows); err != nil {
		slog.Error("csv export failed", "error", err)
	}
}

// GET /api/v1/orders/export/excel
func (h *ExportHandler) OrdersExcel(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rows, err := h.orders.ListOrders(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	if err := export.WriteOrdersExcel(w, rows); err != nil {
		slog.Error("excel export failed", "error", err)
	}
}

// GET /api/v1/orders/export/pdf
func (h *ExportHandler) OrdersPDF(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	rows, err := h.orders.ListOrders(ctx)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.pdf"`)
	if err := export.WriteOrdersPDF(w, rows); err != nil {
		slog.Error("pdf export failed", "error", err)
	}
}
