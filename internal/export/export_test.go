package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/nvoss/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func sampleRows() []domain.OrderSummary {
	return []domain.OrderSummary{
		{
			OrderID:   "ord-1",
			Date:      "12 March 2026",
			Customer:  "Asha Rao",
			Payment:   "Pending",
			Total:     11,
			ItemCount: 2,
			Status:    "Delivered",
		},
		{
			OrderID:   "ord-2",
			Date:      "13 March 2026",
			Customer:  "Ben Okafor",
			Payment:   "Completed",
			Total:     42.5,
			ItemCount: 1,
			Status:    "Shipped",
		},
	}
}

func TestWriteOrdersCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, []string{"OrderID", "Date", "Customer", "Payment", "Total", "No.Of.Items", "Status"}, records[0])
	assert.Equal(t, []string{"ord-1", "12 March 2026", "Asha Rao", "Pending", "11.00", "2", "Delivered"}, records[1])
	assert.Equal(t, []string{"ord-2", "13 March 2026", "Ben Okafor", "Completed", "42.50", "1", "Shipped"}, records[2])
}

func TestWriteOrdersCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersCSV(&buf, nil))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

func TestWriteOrdersExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersExcel(&buf, sampleRows()))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Orders", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "OrderID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "ord-1", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "Asha Rao", sheet.Rows[1].Cells[2].String())

	total, err := sheet.Rows[1].Cells[4].Float()
	require.NoError(t, err)
	assert.InDelta(t, 11.0, total, 1e-9)

	count, err := sheet.Rows[1].Cells[5].Int()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestWriteOrdersPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersPDF(&buf, sampleRows()))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output starts with the pdf magic")
	assert.Greater(t, buf.Len(), 500)
}

func TestWriteOrdersPDF_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrdersPDF(&buf, nil))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}
