package reports

import (
	"fmt"
	"io"
	"time"

	"it-inventory/internal/financial"

	"github.com/xuri/excelize/v2"
)

const (
	dataSheet    = "Data"
	summarySheet = "Summary"
)

// row is one line of the data sheet.
type row interface {
	cellValues() []any
}

func (r CurrentValueRow) cellValues() []any {
	return []any{r.AssetTag, r.Name, r.PurchasePrice, r.CurrentValue, r.MonthlyDepreciation, r.WarrantyOpex, r.MaintenanceOpex, r.MonthlyOpex}
}

func (r DepreciationRow) cellValues() []any {
	return []any{r.AssetTag, r.Name, r.PurchasePrice, r.MonthlyDepreciation, r.TotalDepreciated, r.RemainingValue,
		r.GoLiveDate.Format(time.DateOnly), r.DepreciationEndDate.Format(time.DateOnly), r.MonthsRemaining}
}

func (r OpexRow) cellValues() []any {
	return []any{r.AssetTag, r.Name, r.WarrantyMonthlyCost, r.MaintenanceMonthlyCost, r.TotalMonthlyCost, len(r.Warranties), len(r.Maintenance)}
}

type forecastRow financial.MonthlyForecast

func (r forecastRow) cellValues() []any {
	return []any{r.Month, r.Year, r.TotalDepreciation, r.TotalOpex, r.TotalCost, r.AssetCount}
}

// WriteXLSX writes r as a workbook with a data sheet and a summary sheet.
// r must come from Service.Generate.
func WriteXLSX(w io.Writer, r *Report) error {
	headings, rows, err := tabulate(r)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dataSheet); err != nil {
		return err
	}
	if err := setRow(f, dataSheet, 1, headings); err != nil {
		return err
	}
	for i, rw := range rows {
		if err := setRow(f, dataSheet, i+2, rw.cellValues()); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	for i, kv := range summaryCells(r.Summary) {
		if err := setRow(f, summarySheet, i+1, kv); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func tabulate(r *Report) ([]any, []row, error) {
	switch data := r.Data.(type) {
	case []financial.MonthlyForecast:
		rows := make([]row, len(data))
		for i, m := range data {
			rows[i] = forecastRow(m)
		}
		return []any{"Month", "Year", "Depreciation", "Opex", "Total cost", "Assets"}, rows, nil
	case []CurrentValueRow:
		return []any{"Asset tag", "Name", "Purchase price", "Current value", "Monthly depreciation", "Warranty opex", "Maintenance opex", "Monthly opex"}, toRows(data), nil
	case []DepreciationRow:
		return []any{"Asset tag", "Name", "Purchase price", "Monthly depreciation", "Total depreciated", "Remaining value", "Go-live", "Depreciation end", "Months remaining"}, toRows(data), nil
	case []OpexRow:
		return []any{"Asset tag", "Name", "Warranty monthly", "Maintenance monthly", "Total monthly", "Active warranties", "Active maintenance"}, toRows(data), nil
	}
	return nil, nil, fmt.Errorf("cannot export %s report data of type %T", r.Type, r.Data)
}

func toRows[T row](data []T) []row {
	rows := make([]row, len(data))
	for i := range data {
		rows[i] = data[i]
	}
	return rows
}

func summaryCells(summary any) [][]any {
	dateCell := func(t time.Time) string { return t.Format(time.DateOnly) }

	switch s := summary.(type) {
	case ForecastSummary:
		return [][]any{
			{"Total assets", s.TotalAssets},
			{"Period start", dateCell(s.ForecastPeriod.Start)},
			{"Period end", dateCell(s.ForecastPeriod.End)},
		}
	case CurrentValueSummary:
		return [][]any{
			{"Total assets", s.TotalAssets},
			{"Total current value", s.TotalCurrentValue},
			{"Total purchase value", s.TotalPurchaseValue},
			{"Total monthly opex", s.TotalMonthlyOpex},
			{"Warranty opex", s.OpexBreakdown.Warranty},
			{"Maintenance opex", s.OpexBreakdown.Maintenance},
			{"As of", dateCell(s.AsOfDate)},
		}
	case DepreciationSummary:
		return [][]any{
			{"Total assets", s.TotalAssets},
			{"Total remaining value", s.TotalRemainingValue},
			{"Total monthly depreciation", s.TotalMonthlyDepreciation},
			{"As of", dateCell(s.AsOfDate)},
		}
	case OpexSummary:
		return [][]any{
			{"Total assets", s.TotalAssets},
			{"Total monthly opex", s.TotalMonthlyOpex},
			{"As of", dateCell(s.AsOfDate)},
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNo int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}
