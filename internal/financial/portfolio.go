package financial

import (
	"time"

	"github.com/shopspring/decimal"
)

// OpexByCategory splits the monthly opex of a portfolio by contract kind.
type OpexByCategory struct {
	Warranty    float64 `json:"warranty"`
	Maintenance float64 `json:"maintenance"`
}

func (o OpexByCategory) Total() float64 {
	return Sum(o.Warranty, o.Maintenance)
}

// CalculateTotalValue sums the remaining book value of assets at at.
func CalculateTotalValue(assets []Asset, at time.Time) float64 {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(decimal.NewFromFloat(CalculateDepreciation(a, at).RemainingValue))
	}
	return total.InexactFloat64()
}

func CalculateOpexByCategory(assets []Asset, at time.Time) OpexByCategory {
	warranty, maintenance := decimal.Zero, decimal.Zero
	for _, a := range assets {
		o := CalculateOpex(a, at)
		warranty = warranty.Add(decimal.NewFromFloat(o.WarrantyMonthlyCost))
		maintenance = maintenance.Add(decimal.NewFromFloat(o.MaintenanceMonthlyCost))
	}
	return OpexByCategory{
		Warranty:    warranty.InexactFloat64(),
		Maintenance: maintenance.InexactFloat64(),
	}
}

// Sum adds amounts in decimal so long portfolios do not accumulate binary
// rounding error.
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, v := range amounts {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.InexactFloat64()
}
