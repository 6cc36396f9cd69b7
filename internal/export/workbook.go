package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

// Sheet is one worksheet: a header row followed by data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// VendorRow pairs a vendor with its rollup metrics.
type VendorRow struct {
	Vendor  *domain.Vendor
	Score   float64
	Metrics scoring.VendorMetrics
}

// Write renders sheets as one XLSX workbook, in order. The first sheet is active.
func Write(w io.Writer, sheets []Sheet) error {
	f, err := build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Save renders sheets to an XLSX file at path.
func Save(path string, sheets []Sheet) error {
	f, err := build(sheets)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

func build(sheets []Sheet) (*excelize.File, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook needs at least one sheet")
	}

	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	for i, s := range sheets {
		if i == 0 {
			// NewFile starts with a default sheet; rename it instead of adding one.
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				f.Close()
				return nil, fmt.Errorf("naming sheet %s: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			f.Close()
			return nil, fmt.Errorf("adding sheet %s: %w", s.Name, err)
		}
		if err := fillSheet(f, s, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillSheet(f *excelize.File, s Sheet, headerStyle int) error {
	for col, h := range s.Headers {
		if err := setCell(f, s.Name, col+1, 1, h); err != nil {
			return err
		}
	}
	if len(s.Headers) > 0 {
		if err := f.SetRowStyle(s.Name, 1, 1, headerStyle); err != nil {
			return fmt.Errorf("styling %s header: %w", s.Name, err)
		}
	}
	for r, row := range s.Rows {
		for col, v := range row {
			if err := setCell(f, s.Name, col+1, r+2, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell %d,%d: %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("setting %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// optional renders a missing value as an empty cell.
func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// ContractsSheet lists contracts with their raw amounts and derived scores.
func ContractsSheet(contracts []*domain.Contract) Sheet {
	s := Sheet{
		Name: "Contracts",
		Headers: []string{
			"Contract ID", "Number", "Title", "Vendor", "Department", "Status",
			"Original Amount", "Current Amount", "Total Paid", "Percent Complete",
			"End Date", "Cost Score", "Schedule Score", "Performance Score",
			"Compliance Score", "Health Score", "Risk Level",
		},
	}
	for _, c := range contracts {
		s.Rows = append(s.Rows, []any{
			c.ContractID, c.ContractNumber, c.Title, c.VendorName, c.Department, string(c.Status),
			optional(c.OriginalAmount), optional(c.CurrentAmount), optional(c.TotalPaid), optional(c.PercentComplete),
			c.EffectiveEndDate(), optional(c.CostVarianceScore), optional(c.ScheduleVarianceScore), optional(c.PerformanceScore),
			optional(c.ComplianceScore), optional(c.OverallHealthScore), string(c.RiskLevel),
		})
	}
	return s
}

// VendorsSheet lists vendor scorecards.
func VendorsSheet(rows []VendorRow) Sheet {
	s := Sheet{
		Name: "Vendors",
		Headers: []string{
			"Vendor ID", "Vendor", "Type", "Status", "Performance Score",
			"Contracts", "Active", "Completed", "Total Value", "Avg Health",
			"On Time %", "Budget Adherence %",
		},
	}
	for _, r := range rows {
		m := r.Metrics
		s.Rows = append(s.Rows, []any{
			r.Vendor.VendorID, r.Vendor.VendorName, r.Vendor.VendorType, r.Vendor.Status, r.Score,
			m.TotalContracts, m.ActiveContracts, m.CompletedContracts, m.TotalValue, m.AvgHealthScore,
			m.OnTimeRate, m.BudgetAdherenceRate,
		})
	}
	return s
}

// AlertsSheet lists alerts in the order given.
func AlertsSheet(alerts []domain.Alert) Sheet {
	s := Sheet{
		Name:    "Alerts",
		Headers: []string{"Alert ID", "Severity", "Rule", "Title", "Contract ID", "Contract", "Vendor", "Generated At"},
	}
	for _, a := range alerts {
		s.Rows = append(s.Rows, []any{
			a.AlertID, string(a.Severity), a.AlertType, a.Title, a.ContractID, a.ContractTitle, a.VendorName,
			a.GeneratedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return s
}
