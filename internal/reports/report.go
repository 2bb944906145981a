// Package reports turns the inventory into financial reports.
package reports

import (
	"errors"
	"fmt"
	"time"

	"it-inventory/internal/financial"
	"it-inventory/internal/models"
)

type Type string

const (
	TypeForecast             Type = "forecast"
	TypeCurrentValue         Type = "current-value"
	TypeDepreciationSchedule Type = "depreciation-schedule"
	TypeOpexBreakdown        Type = "opex-breakdown"
)

func (t Type) Valid() bool {
	switch t {
	case TypeForecast, TypeCurrentValue, TypeDepreciationSchedule, TypeOpexBreakdown:
		return true
	}
	return false
}

// MaxForecastMonths bounds the number of months one forecast may cover.
const MaxForecastMonths = 600

var (
	ErrDateRangeRequired = errors.New("start date and end date are required for forecast report")
	ErrInvalidType       = errors.New("invalid report type")
	ErrRangeTooLong      = fmt.Errorf("forecast range may cover at most %d months", MaxForecastMonths)
)

// Request selects a report. Nil dates are unset; TargetDate defaults to
// the service clock.
type Request struct {
	Type       Type
	StartDate  *time.Time
	EndDate    *time.Time
	TargetDate *time.Time
	AssetIDs   []uint
}

// explicit reports whether the result depends only on the request and the
// stored inventory, not on the current time.
func (r Request) explicit() bool {
	if r.Type == TypeForecast {
		return r.StartDate != nil && r.EndDate != nil
	}
	return r.TargetDate != nil
}

type Report struct {
	Type    Type `json:"type"`
	Data    any  `json:"data"`
	Summary any  `json:"summary"`
}

// SKUSummary is the slice of a SKU shown next to each asset in a report.
type SKUSummary struct {
	ID        uint                       `json:"id"`
	Name      string                     `json:"name"`
	SKUCode   string                     `json:"skuCode"`
	ModelName string                     `json:"modelName"`
	Catalog   models.Ref[CatalogSummary] `json:"catalog"`
}

type CatalogSummary struct {
	ID       uint                   `json:"id"`
	Name     string                 `json:"name"`
	Category models.CatalogCategory `json:"category"`
}

func skuRef(a *models.Asset) models.Ref[SKUSummary] {
	if a.SKU == nil {
		return models.RefTo[SKUSummary](a.SKUID)
	}
	s := &SKUSummary{
		ID:        a.SKU.ID,
		Name:      a.SKU.Name,
		SKUCode:   a.SKU.SKUCode,
		ModelName: a.SKU.ModelName,
		Catalog:   models.RefTo[CatalogSummary](a.SKU.CatalogID),
	}
	if c := a.SKU.Catalog; c != nil {
		s.Catalog = models.ExpandRef(c.ID, &CatalogSummary{ID: c.ID, Name: c.Name, Category: c.Category})
	}
	return models.ExpandRef(a.SKUID, s)
}

type ForecastPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ForecastSummary struct {
	TotalAssets    int            `json:"totalAssets"`
	ForecastPeriod ForecastPeriod `json:"forecastPeriod"`
}

type CurrentValueRow struct {
	AssetID             uint                   `json:"assetId"`
	AssetTag            string                 `json:"assetTag"`
	Name                string                 `json:"name"`
	SKU                 models.Ref[SKUSummary] `json:"sku"`
	PurchasePrice       float64                `json:"purchasePrice"`
	CurrentValue        float64                `json:"currentValue"`
	MonthlyDepreciation float64                `json:"monthlyDepreciation"`
	MonthlyOpex         float64                `json:"monthlyOpex"`
	WarrantyOpex        float64                `json:"warrantyOpex"`
	MaintenanceOpex     float64                `json:"maintenanceOpex"`
}

type CurrentValueSummary struct {
	TotalAssets        int                      `json:"totalAssets"`
	TotalCurrentValue  float64                  `json:"totalCurrentValue"`
	TotalPurchaseValue float64                  `json:"totalPurchaseValue"`
	TotalMonthlyOpex   float64                  `json:"totalMonthlyOpex"`
	OpexBreakdown      financial.OpexByCategory `json:"opexBreakdown"`
	AsOfDate           time.Time                `json:"asOfDate"`
}

type DepreciationRow struct {
	AssetID             uint                   `json:"assetId"`
	AssetTag            string                 `json:"assetTag"`
	Name                string                 `json:"name"`
	SKU                 models.Ref[SKUSummary] `json:"sku"`
	PurchasePrice       float64                `json:"purchasePrice"`
	MonthlyDepreciation float64                `json:"monthlyDepreciation"`
	TotalDepreciated    float64                `json:"totalDepreciated"`
	RemainingValue      float64                `json:"remainingValue"`
	GoLiveDate          time.Time              `json:"goLiveDate"`
	DepreciationEndDate time.Time              `json:"depreciationEndDate"`
	MonthsRemaining     int                    `json:"monthsRemaining"`
}

type DepreciationSummary struct {
	TotalAssets              int       `json:"totalAssets"`
	TotalRemainingValue      float64   `json:"totalRemainingValue"`
	TotalMonthlyDepreciation float64   `json:"totalMonthlyDepreciation"`
	AsOfDate                 time.Time `json:"asOfDate"`
}

type OpexRow struct {
	AssetID                uint                         `json:"assetId"`
	AssetTag               string                       `json:"assetTag"`
	Name                   string                       `json:"name"`
	SKU                    models.Ref[SKUSummary]       `json:"sku"`
	WarrantyMonthlyCost    float64                      `json:"warrantyMonthlyCost"`
	MaintenanceMonthlyCost float64                      `json:"maintenanceMonthlyCost"`
	TotalMonthlyCost       float64                      `json:"totalMonthlyCost"`
	Warranties             []models.WarrantyContract    `json:"warranties"`
	Maintenance            []models.MaintenanceContract `json:"maintenance"`
}

type OpexSummary struct {
	TotalAssets      int       `json:"totalAssets"`
	TotalMonthlyOpex float64   `json:"totalMonthlyOpex"`
	AsOfDate         time.Time `json:"asOfDate"`
}
