package reports

import (
	"context"
	"time"

	"it-inventory/internal/financial"
	"it-inventory/internal/logging"
	"it-inventory/internal/models"

	"github.com/sirupsen/logrus"
)

// AssetSource loads the assets a report covers; empty ids means all.
type AssetSource interface {
	ReportAssets(ctx context.Context, ids []uint) ([]models.Asset, error)
}

type Service struct {
	assets AssetSource
	cache  Cache
	log    logrus.FieldLogger
	now    func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now as the default target date.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func NewService(assets AssetSource, log logrus.FieldLogger, opts ...Option) *Service {
	s := &Service{
		assets: assets,
		cache:  NopCache{},
		log:    log,
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Invalidate drops cached reports after the inventory changed.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		logging.LogError(s.log, "reports", "Invalidate", "bumping cache generation", nil, err)
	}
}

// Build returns the requested report, from the cache when the request is
// fully dated and an entry exists. Cached reports carry their data as raw
// JSON.
func (s *Service) Build(ctx context.Context, req Request) (*Report, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	if !req.explicit() {
		return s.generate(ctx, req)
	}

	key, err := s.cache.Key(ctx, req)
	if err != nil {
		logging.LogError(s.log, "reports", "Build", "computing cache key", req, err)
		return s.generate(ctx, req)
	}
	if cached, ok := s.cache.Get(ctx, key); ok {
		return cached, nil
	}

	r, err := s.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, r); err != nil {
		logging.LogError(s.log, "reports", "Build", "storing report", nil, err)
	}
	return r, nil
}

// Generate always computes the report from the store, with typed rows.
func (s *Service) Generate(ctx context.Context, req Request) (*Report, error) {
	if err := validate(&req); err != nil {
		return nil, err
	}
	return s.generate(ctx, req)
}

func validate(req *Request) error {
	if req.Type == "" {
		req.Type = TypeForecast
	}
	if !req.Type.Valid() {
		return ErrInvalidType
	}
	if req.Type == TypeForecast && (req.StartDate == nil || req.EndDate == nil) {
		return ErrDateRangeRequired
	}
	if req.Type == TypeForecast && financial.MonthsBetween(*req.StartDate, *req.EndDate) >= MaxForecastMonths {
		return ErrRangeTooLong
	}
	return nil
}

func (s *Service) generate(ctx context.Context, req Request) (*Report, error) {
	assets, err := s.assets.ReportAssets(ctx, req.AssetIDs)
	if err != nil {
		return nil, err
	}

	at := s.now()
	if req.TargetDate != nil {
		at = *req.TargetDate
	}

	switch req.Type {
	case TypeForecast:
		return forecastReport(assets, *req.StartDate, *req.EndDate), nil
	case TypeCurrentValue:
		return currentValueReport(assets, at), nil
	case TypeDepreciationSchedule:
		return depreciationReport(assets, at), nil
	default:
		return opexReport(assets, at), nil
	}
}

func forecastReport(assets []models.Asset, start, end time.Time) *Report {
	data := financial.GenerateForecast(models.FinancialRecords(assets), start, end)
	if data == nil {
		data = []financial.MonthlyForecast{}
	}
	return &Report{
		Type: TypeForecast,
		Data: data,
		Summary: ForecastSummary{
			TotalAssets:    len(assets),
			ForecastPeriod: ForecastPeriod{Start: start, End: end},
		},
	}
}

func currentValueReport(assets []models.Asset, at time.Time) *Report {
	records := models.FinancialRecords(assets)
	rows := make([]CurrentValueRow, len(assets))
	purchase := make([]float64, len(assets))

	for i := range assets {
		d := financial.CalculateDepreciation(records[i], at)
		o := financial.CalculateOpex(records[i], at)
		rows[i] = CurrentValueRow{
			AssetID:             assets[i].ID,
			AssetTag:            assets[i].AssetTag,
			Name:                assets[i].Name,
			SKU:                 skuRef(&assets[i]),
			PurchasePrice:       d.PurchasePrice,
			CurrentValue:        d.RemainingValue,
			MonthlyDepreciation: d.MonthlyDepreciation,
			MonthlyOpex:         o.TotalMonthlyCost,
			WarrantyOpex:        o.WarrantyMonthlyCost,
			MaintenanceOpex:     o.MaintenanceMonthlyCost,
		}
		purchase[i] = d.PurchasePrice
	}

	byCategory := financial.CalculateOpexByCategory(records, at)
	return &Report{
		Type: TypeCurrentValue,
		Data: rows,
		Summary: CurrentValueSummary{
			TotalAssets:        len(assets),
			TotalCurrentValue:  financial.CalculateTotalValue(records, at),
			TotalPurchaseValue: financial.Sum(purchase...),
			TotalMonthlyOpex:   byCategory.Total(),
			OpexBreakdown:      byCategory,
			AsOfDate:           at,
		},
	}
}

func depreciationReport(assets []models.Asset, at time.Time) *Report {
	rows := make([]DepreciationRow, len(assets))
	remaining := make([]float64, len(assets))
	monthly := make([]float64, len(assets))

	for i := range assets {
		rec := assets[i].FinancialRecord()
		d := financial.CalculateDepreciation(rec, at)
		rows[i] = DepreciationRow{
			AssetID:             assets[i].ID,
			AssetTag:            assets[i].AssetTag,
			Name:                assets[i].Name,
			SKU:                 skuRef(&assets[i]),
			PurchasePrice:       d.PurchasePrice,
			MonthlyDepreciation: d.MonthlyDepreciation,
			TotalDepreciated:    d.TotalDepreciated,
			RemainingValue:      d.RemainingValue,
			GoLiveDate:          rec.GoLiveDate,
			DepreciationEndDate: financial.AddMonths(rec.GoLiveDate, d.TotalDepreciationMonths),
			MonthsRemaining:     d.MonthsRemaining(),
		}
		remaining[i] = d.RemainingValue
		monthly[i] = d.MonthlyDepreciation
	}

	return &Report{
		Type: TypeDepreciationSchedule,
		Data: rows,
		Summary: DepreciationSummary{
			TotalAssets:              len(assets),
			TotalRemainingValue:      financial.Sum(remaining...),
			TotalMonthlyDepreciation: financial.Sum(monthly...),
			AsOfDate:                 at,
		},
	}
}

func opexReport(assets []models.Asset, at time.Time) *Report {
	rows := make([]OpexRow, len(assets))
	totals := make([]float64, len(assets))

	for i := range assets {
		a := &assets[i]
		o := financial.CalculateOpex(a.FinancialRecord(), at)
		row := OpexRow{
			AssetID:                a.ID,
			AssetTag:               a.AssetTag,
			Name:                   a.Name,
			SKU:                    skuRef(a),
			WarrantyMonthlyCost:    o.WarrantyMonthlyCost,
			MaintenanceMonthlyCost: o.MaintenanceMonthlyCost,
			TotalMonthlyCost:       o.TotalMonthlyCost,
			Warranties:             []models.WarrantyContract{},
			Maintenance:            []models.MaintenanceContract{},
		}
		for _, w := range a.Financial.Opex.Warranty {
			if active(w, at) {
				row.Warranties = append(row.Warranties, w)
			}
		}
		for _, m := range a.Financial.Opex.Maintenance {
			if active(m, at) {
				row.Maintenance = append(row.Maintenance, m)
			}
		}
		rows[i] = row
		totals[i] = o.TotalMonthlyCost
	}

	return &Report{
		Type: TypeOpexBreakdown,
		Data: rows,
		Summary: OpexSummary{
			TotalAssets:      len(assets),
			TotalMonthlyOpex: financial.Sum(totals...),
			AsOfDate:         at,
		},
	}
}

type period interface {
	Period() (time.Time, time.Time)
}

func active(c period, at time.Time) bool {
	start, end := c.Period()
	return financial.Contract{StartDate: start, EndDate: end}.Active(at)
}
