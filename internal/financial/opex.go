package financial

import "time"

// Opex is the monthly operating cost of one asset at a point in time.
type Opex struct {
	AssetID                string  `json:"assetId"`
	AssetTag               string  `json:"assetTag"`
	WarrantyMonthlyCost    float64 `json:"warrantyMonthlyCost"`
	MaintenanceMonthlyCost float64 `json:"maintenanceMonthlyCost"`
	TotalMonthlyCost       float64 `json:"totalMonthlyCost"`
}

// CalculateOpex sums the monthly share of every contract active at at.
// Warranty costs are annual and divided by twelve. Maintenance costs cover
// the whole contract and are divided by its length in months.
func CalculateOpex(a Asset, at time.Time) Opex {
	o := Opex{AssetID: a.ID, AssetTag: a.AssetTag}

	for _, w := range a.Warranty {
		if w.Active(at) {
			o.WarrantyMonthlyCost += w.Cost / MonthsPerYear
		}
	}
	for _, m := range a.Maintenance {
		if m.Active(at) {
			o.MaintenanceMonthlyCost += m.Cost / float64(m.DurationMonths())
		}
	}

	o.TotalMonthlyCost = o.WarrantyMonthlyCost + o.MaintenanceMonthlyCost
	return o
}
