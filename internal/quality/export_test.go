package quality

import (
	"bytes"
	"testing"

	"textile-backend/internal/models"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteWorkbook(t *testing.T) {
	receipt := "R-7"
	a := models.QualityEntry{EmployeeID: "E1", EmployeeName: "Anu", ProductName: "Cotton", Date: mustDay(t, "2024-05-01"), ReceiptNo: &receipt, Status: models.EntryActive}
	a.SetValues(models.QualityValues{"Quality 2": 5, "Quality 1": 10})
	b := models.QualityEntry{EmployeeID: "E2", EmployeeName: "Bala", ProductName: "Silk", Date: mustDay(t, "2024-05-02"), Status: models.EntryActive}
	b.SetValues(models.QualityValues{"Quality 1": 25})
	entries := []models.QualityEntry{a, b}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, entries, Summarize(entries)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{EntriesSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(EntriesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Date", "Receipt No", "Employee ID", "Employee", "Product", "Supervisor", "Quality 1", "Quality 2", "Subtotal", "Status", "Notes"}, rows[0])
	require.Equal(t, "2024-05-01", rows[1][0])
	require.Equal(t, "R-7", rows[1][1])
	require.Equal(t, "15", rows[1][8])

	total, err := f.GetCellValue(SummarySheet, "B2")
	require.NoError(t, err)
	require.Equal(t, "40", total)
}
