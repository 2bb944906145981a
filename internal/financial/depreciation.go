package financial

import "time"

// Depreciation is the straight-line depreciation state of one asset at a
// point in time.
type Depreciation struct {
	AssetID                 string  `json:"assetId"`
	AssetTag                string  `json:"assetTag"`
	PurchasePrice           float64 `json:"purchasePrice"`
	MonthlyDepreciation     float64 `json:"monthlyDepreciation"`
	TotalDepreciated        float64 `json:"totalDepreciated"`
	RemainingValue          float64 `json:"remainingValue"`
	MonthsLive              int     `json:"monthsLive"`
	TotalDepreciationMonths int     `json:"totalDepreciationMonths"`
}

// FullyDepreciated reports whether the asset has no depreciation left to
// book.
func (d Depreciation) FullyDepreciated() bool {
	return d.MonthsLive >= d.TotalDepreciationMonths
}

// MonthsRemaining is the number of months of depreciation left, never
// negative.
func (d Depreciation) MonthsRemaining() int {
	return max(0, d.TotalDepreciationMonths-d.MonthsLive)
}

// CalculateDepreciation computes the depreciation of a as of at. Months live
// are counted from the go-live date and floored at zero; the depreciated
// amount is capped at the purchase price.
//
// A non-positive depreciation period means the asset is expensed at go-live:
// nothing is booked monthly and no value remains.
func CalculateDepreciation(a Asset, at time.Time) Depreciation {
	d := Depreciation{
		AssetID:                 a.ID,
		AssetTag:                a.AssetTag,
		PurchasePrice:           a.PurchasePrice,
		MonthsLive:              max(0, MonthsBetween(a.GoLiveDate, at)),
		TotalDepreciationMonths: a.DepreciationPeriodYears * MonthsPerYear,
	}

	if d.TotalDepreciationMonths <= 0 {
		d.TotalDepreciationMonths = 0
		d.TotalDepreciated = a.PurchasePrice
		return d
	}

	d.MonthlyDepreciation = a.PurchasePrice / float64(d.TotalDepreciationMonths)
	d.TotalDepreciated = min(float64(d.MonthsLive)*d.MonthlyDepreciation, a.PurchasePrice)
	d.RemainingValue = max(0, a.PurchasePrice-d.TotalDepreciated)
	return d
}
