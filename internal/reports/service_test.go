package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"it-inventory/internal/financial"
	"it-inventory/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeSource struct {
	assets []models.Asset
	err    error
	calls  int
	ids    []uint
}

func (f *fakeSource) ReportAssets(_ context.Context, ids []uint) ([]models.Asset, error) {
	f.calls++
	f.ids = ids
	if f.err != nil {
		return nil, f.err
	}
	if len(ids) == 0 {
		return f.assets, nil
	}
	var out []models.Asset
	for _, a := range f.assets {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
			}
		}
	}
	return out, nil
}

type memoryCache struct {
	gen     int
	entries map[string]*Report
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*Report{}}
}

func (c *memoryCache) Key(_ context.Context, req Request) (string, error) {
	return string(rune('0'+c.gen)) + ":" + requestDigest(req), nil
}

func (c *memoryCache) Get(_ context.Context, key string) (*Report, bool) {
	r, ok := c.entries[key]
	return r, ok
}

func (c *memoryCache) Set(_ context.Context, key string, r *Report) error {
	c.entries[key] = r
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.gen++
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func testAsset(id uint, tag string, price float64, goLive time.Time) models.Asset {
	a := models.NewAsset()
	a.ID = id
	a.SKUID = 10
	a.AssetTag = tag
	a.Name = "server " + tag
	a.Financial.Capex.PurchasePrice = price
	a.Deployment.GoLiveDate = models.NewDate(goLive)
	return *a
}

func testPortfolio() []models.Asset {
	a := testAsset(1, "SRV-001", 4800, day(2020, 1, 1))
	a.SKU = &models.SKU{Base: models.Base{ID: 10}, Name: "PowerEdge R750", SKUCode: "R750", CatalogID: 3,
		Catalog: &models.Catalog{Base: models.Base{ID: 3}, Name: "PowerEdge", Category: models.CategoryServer}}
	a.Financial.Opex.Warranty = []models.WarrantyContract{
		{Cost: 1200, StartDate: models.NewDate(day(2021, 1, 1)), EndDate: models.NewDate(day(2023, 1, 1))},
		{Cost: 600, StartDate: models.NewDate(day(2019, 1, 1)), EndDate: models.NewDate(day(2020, 12, 31))},
	}

	b := testAsset(2, "SRV-002", 2400, day(2021, 1, 1))
	b.Financial.Opex.Maintenance = []models.MaintenanceContract{
		{Cost: 2400, StartDate: models.NewDate(day(2021, 7, 1)), EndDate: models.NewDate(day(2022, 7, 1))},
	}
	return []models.Asset{a, b}
}

func newTestService(src AssetSource, opts ...Option) *Service {
	opts = append([]Option{WithClock(func() time.Time { return day(2022, 1, 1) })}, opts...)
	return NewService(src, logrus.New(), opts...)
}

func TestBuildValidation(t *testing.T) {
	svc := newTestService(&fakeSource{})
	ctx := context.Background()

	_, err := svc.Build(ctx, Request{})
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	_, err = svc.Build(ctx, Request{Type: TypeForecast, StartDate: ptr(day(2022, 1, 1))})
	assert.ErrorIs(t, err, ErrDateRangeRequired)

	_, err = svc.Build(ctx, Request{Type: "profit"})
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = svc.Build(ctx, Request{StartDate: ptr(day(1, 1, 1)), EndDate: ptr(day(9999, 12, 31))})
	assert.ErrorIs(t, err, ErrRangeTooLong)

	// 600 months inclusive is the largest accepted range
	_, err = svc.Build(ctx, Request{StartDate: ptr(day(2000, 1, 1)), EndDate: ptr(day(2049, 12, 1))})
	assert.NoError(t, err)
	_, err = svc.Build(ctx, Request{StartDate: ptr(day(2000, 1, 1)), EndDate: ptr(day(2050, 1, 1))})
	assert.ErrorIs(t, err, ErrRangeTooLong)
}

func TestForecastReport(t *testing.T) {
	svc := newTestService(&fakeSource{assets: testPortfolio()})

	r, err := svc.Build(context.Background(), Request{StartDate: ptr(day(2022, 1, 1)), EndDate: ptr(day(2022, 12, 1))})
	require.NoError(t, err)
	assert.Equal(t, TypeForecast, r.Type)

	data, ok := r.Data.([]financial.MonthlyForecast)
	require.True(t, ok)
	require.Len(t, data, 12)
	assert.Equal(t, "2022-01", data[0].Month)
	assert.Equal(t, 2, data[0].AssetCount)
	assert.InDelta(t, 100+50, data[0].TotalDepreciation, 1e-9)

	summary := r.Summary.(ForecastSummary)
	assert.Equal(t, 2, summary.TotalAssets)
	assert.Equal(t, day(2022, 12, 1), summary.ForecastPeriod.End)
}

func TestForecastReportEmptyRange(t *testing.T) {
	svc := newTestService(&fakeSource{assets: testPortfolio()})

	r, err := svc.Build(context.Background(), Request{StartDate: ptr(day(2022, 6, 1)), EndDate: ptr(day(2022, 1, 1))})
	require.NoError(t, err)

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestCurrentValueReport(t *testing.T) {
	svc := newTestService(&fakeSource{assets: testPortfolio()})

	r, err := svc.Build(context.Background(), Request{Type: TypeCurrentValue})
	require.NoError(t, err)

	rows := r.Data.([]CurrentValueRow)
	require.Len(t, rows, 2)
	assert.Equal(t, "SRV-001", rows[0].AssetTag)
	assert.InDelta(t, 2400, rows[0].CurrentValue, 1e-9)
	assert.InDelta(t, 100, rows[0].WarrantyOpex, 1e-9)
	assert.InDelta(t, 1800, rows[1].CurrentValue, 1e-9)
	assert.InDelta(t, 200, rows[1].MaintenanceOpex, 1e-9)

	summary := r.Summary.(CurrentValueSummary)
	assert.Equal(t, 2, summary.TotalAssets)
	assert.InDelta(t, 4200, summary.TotalCurrentValue, 1e-9)
	assert.InDelta(t, 7200, summary.TotalPurchaseValue, 1e-9)
	assert.InDelta(t, 300, summary.TotalMonthlyOpex, 1e-9)
	assert.InDelta(t, 100, summary.OpexBreakdown.Warranty, 1e-9)
	assert.Equal(t, day(2022, 1, 1), summary.AsOfDate)

	b, err := json.Marshal(rows)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	sku, ok := decoded[0]["sku"].(map[string]any)
	require.True(t, ok, "loaded SKU is expanded")
	assert.Equal(t, "R750", sku["skuCode"])
	catalog, ok := sku["catalog"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "server", catalog["category"])
	assert.EqualValues(t, 10, decoded[1]["sku"], "missing SKU is a bare id")
}

func TestDepreciationScheduleReport(t *testing.T) {
	svc := newTestService(&fakeSource{assets: testPortfolio()})

	r, err := svc.Build(context.Background(), Request{Type: TypeDepreciationSchedule, TargetDate: ptr(day(2023, 1, 1))})
	require.NoError(t, err)

	rows := r.Data.([]DepreciationRow)
	require.Len(t, rows, 2)
	assert.Equal(t, day(2024, 1, 1), rows[0].DepreciationEndDate)
	assert.Equal(t, 12, rows[0].MonthsRemaining)
	assert.InDelta(t, 1200, rows[0].RemainingValue, 1e-9)
	assert.Equal(t, 24, rows[1].MonthsRemaining)

	summary := r.Summary.(DepreciationSummary)
	assert.InDelta(t, 1200+1200, summary.TotalRemainingValue, 1e-9)
	assert.InDelta(t, 150, summary.TotalMonthlyDepreciation, 1e-9)
}

func TestOpexBreakdownReport(t *testing.T) {
	svc := newTestService(&fakeSource{assets: testPortfolio()})

	r, err := svc.Build(context.Background(), Request{Type: TypeOpexBreakdown, TargetDate: ptr(day(2022, 3, 15))})
	require.NoError(t, err)

	rows := r.Data.([]OpexRow)
	require.Len(t, rows, 2)
	require.Len(t, rows[0].Warranties, 1, "expired warranty is left out")
	assert.Equal(t, 1200.0, rows[0].Warranties[0].Cost)
	assert.Empty(t, rows[0].Maintenance)
	assert.NotNil(t, rows[0].Maintenance)
	require.Len(t, rows[1].Maintenance, 1)

	summary := r.Summary.(OpexSummary)
	assert.InDelta(t, 300, summary.TotalMonthlyOpex, 1e-9)
}

func TestBuildFiltersAssetIDs(t *testing.T) {
	src := &fakeSource{assets: testPortfolio()}
	svc := newTestService(src)

	r, err := svc.Build(context.Background(), Request{Type: TypeCurrentValue, AssetIDs: []uint{2}})
	require.NoError(t, err)
	assert.Equal(t, []uint{2}, src.ids)
	assert.Len(t, r.Data.([]CurrentValueRow), 1)
}

func TestBuildSourceError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newTestService(&fakeSource{err: boom})

	_, err := svc.Build(context.Background(), Request{Type: TypeCurrentValue})
	assert.ErrorIs(t, err, boom)
}

func TestBuildCache(t *testing.T) {
	src := &fakeSource{assets: testPortfolio()}
	cache := newMemoryCache()
	svc := newTestService(src, WithCache(cache))
	ctx := context.Background()

	dated := Request{Type: TypeCurrentValue, TargetDate: ptr(day(2022, 1, 1))}
	_, err := svc.Build(ctx, dated)
	require.NoError(t, err)
	_, err = svc.Build(ctx, dated)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls, "second dated request is served from cache")

	_, err = svc.Build(ctx, Request{Type: TypeCurrentValue})
	require.NoError(t, err)
	_, err = svc.Build(ctx, Request{Type: TypeCurrentValue})
	require.NoError(t, err)
	assert.Equal(t, 3, src.calls, "undated requests are never cached")

	svc.Invalidate(ctx)
	_, err = svc.Build(ctx, dated)
	require.NoError(t, err)
	assert.Equal(t, 4, src.calls, "invalidation retires cached reports")

	_, err = svc.Generate(ctx, dated)
	require.NoError(t, err)
	assert.Equal(t, 5, src.calls)
}

func TestRequestDigest(t *testing.T) {
	a := Request{Type: TypeCurrentValue, TargetDate: ptr(day(2022, 1, 1)), AssetIDs: []uint{3, 1, 3}}
	b := Request{Type: TypeCurrentValue, TargetDate: ptr(day(2022, 1, 1)), AssetIDs: []uint{1, 3}}
	c := Request{Type: TypeCurrentValue, TargetDate: ptr(day(2022, 2, 1)), AssetIDs: []uint{1, 3}}

	assert.Equal(t, requestDigest(a), requestDigest(b))
	assert.NotEqual(t, requestDigest(b), requestDigest(c))
}

func TestWriteXLSX(t *testing.T) {
	svc := newTestService(&fakeSource{assets: testPortfolio()})
	ctx := context.Background()

	for _, req := range []Request{
		{Type: TypeForecast, StartDate: ptr(day(2022, 1, 1)), EndDate: ptr(day(2022, 3, 1))},
		{Type: TypeCurrentValue},
		{Type: TypeDepreciationSchedule},
		{Type: TypeOpexBreakdown},
	} {
		t.Run(string(req.Type), func(t *testing.T) {
			r, err := svc.Generate(ctx, req)
			require.NoError(t, err)

			var buf bytes.Buffer
			require.NoError(t, WriteXLSX(&buf, r))

			f, err := excelize.OpenReader(&buf)
			require.NoError(t, err)
			defer f.Close()

			rows, err := f.GetRows(dataSheet)
			require.NoError(t, err)
			assert.Greater(t, len(rows), 1)

			summary, err := f.GetRows(summarySheet)
			require.NoError(t, err)
			require.NotEmpty(t, summary)
			assert.Equal(t, "Total assets", summary[0][0])
			assert.Equal(t, "2", summary[0][1])
		})
	}

	cached := &Report{Type: TypeCurrentValue, Data: json.RawMessage(`[]`)}
	assert.Error(t, WriteXLSX(&bytes.Buffer{}, cached))
}
