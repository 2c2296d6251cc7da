package quality

import (
	"fmt"
	"io"
	"sort"

	"textile-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	EntriesSheet = "Entries"
	SummarySheet = "Summary"

	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// WriteWorkbook renders entries and their summary as an XLSX workbook.
// Grade columns are the sorted union of grade names across entries.
func WriteWorkbook(w io.Writer, entries []models.QualityEntry, summary Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", EntriesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	grades := gradeColumns(entries)
	header := []any{"Date", "Receipt No", "Employee ID", "Employee", "Product", "Supervisor"}
	for _, g := range grades {
		header = append(header, g)
	}
	header = append(header, "Subtotal", "Status", "Notes")
	if err := setRow(f, EntriesSheet, 1, header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(EntriesSheet, 1, 1, bold); err != nil {
		return err
	}

	for i, e := range entries {
		values := e.Values()
		receipt := ""
		if e.ReceiptNo != nil {
			receipt = *e.ReceiptNo
		}
		row := []any{e.Date.Format(DateLayout), receipt, e.EmployeeID, e.EmployeeName, e.ProductName, e.SupervisorName}
		for _, g := range grades {
			row = append(row, values[g])
		}
		row = append(row, e.Subtotal, string(e.Status), e.Notes)
		if err := setRow(f, EntriesSheet, i+2, row); err != nil {
			return err
		}
	}

	summaryRows := [][]any{
		{"Total entries", summary.TotalEntries},
		{"Total value", summary.TotalValue},
		{"Average value", summary.AvgValue},
		{"Unique employees", summary.UniqueEmployees},
		{"Unique products", summary.UniqueProducts},
	}
	for i, r := range summaryRows {
		if err := setRow(f, SummarySheet, i+1, r); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 20); err != nil {
		return err
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func gradeColumns(entries []models.QualityEntry) []string {
	seen := map[string]struct{}{}
	for _, e := range entries {
		for name := range e.Values() {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
