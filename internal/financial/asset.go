// Package financial computes depreciation, operating expense and forecast
// figures from asset records. Every function is a pure projection of its
// arguments: nothing here performs I/O or keeps state between calls.
package financial

import "time"

const (
	MonthsPerYear = 12

	// MonthLayout is the key format of forecast records.
	MonthLayout = "2006-01"
)

// Contract is a warranty or maintenance agreement attached to an asset.
// How Cost is interpreted depends on which list the contract sits in: a
// warranty cost is annual, a maintenance cost covers the whole contract.
type Contract struct {
	Cost      float64
	StartDate time.Time
	EndDate   time.Time
}

// Active reports whether at falls inside [StartDate, EndDate].
func (c Contract) Active(at time.Time) bool {
	return !at.Before(c.StartDate) && !at.After(c.EndDate)
}

// DurationMonths is the number of calendar months the contract spans, never
// less than one.
func (c Contract) DurationMonths() int {
	return max(1, MonthsBetween(c.StartDate, c.EndDate))
}

// Asset is the subset of an inventory asset the calculations need.
type Asset struct {
	ID       string
	AssetTag string

	GoLiveDate              time.Time
	PurchasePrice           float64
	DepreciationPeriodYears int

	Warranty    []Contract
	Maintenance []Contract
}

// MonthsBetween counts calendar months from one date to another using only
// the year and month components. Jan 15 to Feb 1 is one month. The result is
// negative when to precedes from. Both dates are read in UTC so values
// loaded in the host's zone count the same as parsed ones.
func MonthsBetween(from, to time.Time) int {
	from, to = from.UTC(), to.UTC()
	return (to.Year()-from.Year())*MonthsPerYear + int(to.Month()-from.Month())
}

// AddMonths moves t forward by n calendar months. When the day of
// month does not exist in the target month it is clamped to the last day,
// so Jan 31 + 1 month is Feb 28/29 rather than early March.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}
