package financial

import "time"

// MonthlyForecast is the projected cost of a portfolio for one month.
type MonthlyForecast struct {
	Month             string  `json:"month"`
	Year              int     `json:"year"`
	TotalDepreciation float64 `json:"totalDepreciation"`
	TotalOpex         float64 `json:"totalOpex"`
	TotalCost         float64 `json:"totalCost"`
	AssetCount        int     `json:"assetCount"`
}

// GenerateForecast projects depreciation and opex month by month from start
// through end inclusive. Each month is evaluated at start advanced by whole
// months. Assets not yet live at that date are skipped; fully depreciated
// assets still count and still contribute opex.
func GenerateForecast(assets []Asset, start, end time.Time) []MonthlyForecast {
	var forecast []MonthlyForecast

	for i := 0; ; i++ {
		current := AddMonths(start, i)
		if current.After(end) {
			break
		}

		month := MonthlyForecast{
			Month: current.Format(MonthLayout),
			Year:  current.Year(),
		}
		for _, a := range assets {
			if a.GoLiveDate.After(current) {
				continue
			}
			if d := CalculateDepreciation(a, current); !d.FullyDepreciated() {
				month.TotalDepreciation += d.MonthlyDepreciation
			}
			month.TotalOpex += CalculateOpex(a, current).TotalMonthlyCost
			month.AssetCount++
		}
		month.TotalCost = month.TotalDepreciation + month.TotalOpex

		forecast = append(forecast, month)
	}

	return forecast
}
