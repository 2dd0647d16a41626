package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"meterbill/internal/billing/application"
)

// BuildBillPDF renders a minimal PDF for one billing run.
func BuildBillPDF(statements []application.Statement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Electricity Bill Comparison")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	if len(statements) > 0 {
		head := statements[0]
		pdf.Cell(0, 6, fmt.Sprintf("Period: %d days", head.PeriodDays))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Readings: %d (%.3f kWh import, %.3f kWh export)", head.ReadingCount, head.ImportKWh, head.ExportKWh))
		pdf.Ln(5)
		pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", head.GeneratedAt.Format(time.RFC3339)))
		pdf.Ln(8)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(50, 6, "Plan", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Usage", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Standing", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, stmt := range statements {
		pdf.CellFormat(50, 6, stmt.PlanName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 6, formatEntry(stmt.Usage, stmt.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, formatEntry(stmt.StandingCharge, stmt.Currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, formatEntry(stmt.Total, stmt.Currency), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildBillXLSX renders a minimal XLSX for one billing run.
func BuildBillXLSX(statements []application.Statement) ([]byte, error) {
	f := excelize.NewFile()
	summarySheet := "summary"
	plansSheet := "plans"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(plansSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", "Electricity Bill Comparison")
	if len(statements) > 0 {
		head := statements[0]
		_ = f.SetCellValue(summarySheet, "A3", "Period (days)")
		_ = f.SetCellValue(summarySheet, "B3", head.PeriodDays)
		_ = f.SetCellValue(summarySheet, "A4", "Readings")
		_ = f.SetCellValue(summarySheet, "B4", head.ReadingCount)
		_ = f.SetCellValue(summarySheet, "A5", "Import (kWh)")
		_ = f.SetCellValue(summarySheet, "B5", head.ImportKWh)
		_ = f.SetCellValue(summarySheet, "A6", "Export (kWh)")
		_ = f.SetCellValue(summarySheet, "B6", head.ExportKWh)
		_ = f.SetCellValue(summarySheet, "A7", "Currency")
		_ = f.SetCellValue(summarySheet, "B7", head.Currency)
		_ = f.SetCellValue(summarySheet, "A8", "Generated")
		_ = f.SetCellValue(summarySheet, "B8", head.GeneratedAt.Format(time.RFC3339))
	}

	_ = f.SetCellValue(plansSheet, "A1", "Plan")
	_ = f.SetCellValue(plansSheet, "B1", "Usage")
	_ = f.SetCellValue(plansSheet, "C1", "Usage Kind")
	_ = f.SetCellValue(plansSheet, "D1", "Standing Charge")
	_ = f.SetCellValue(plansSheet, "E1", "Total")
	_ = f.SetCellValue(plansSheet, "F1", "Total Kind")
	for i, stmt := range statements {
		row := i + 2
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("A%d", row), stmt.PlanName)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("B%d", row), stmt.Usage.Amount)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("C%d", row), stmt.Usage.Kind)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("D%d", row), stmt.StandingCharge.Amount)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("E%d", row), stmt.Total.Amount)
		_ = f.SetCellValue(plansSheet, fmt.Sprintf("F%d", row), stmt.Total.Kind)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
