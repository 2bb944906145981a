// Package seed loads a small deterministic sample inventory.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"it-inventory/internal/financial"
	"it-inventory/internal/models"

	"github.com/sirupsen/logrus"
)

const DefaultAssetsPerSKU = 10

type Store interface {
	CreateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error)
	CreateSKU(ctx context.Context, s *models.SKU) (*models.SKU, error)
	CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error)
	DeleteInventory(ctx context.Context) error
}

type Options struct {
	AssetsPerSKU int
	// Reset deletes the existing inventory first.
	Reset bool
}

type Summary struct {
	Catalogs   int
	SKUs       int
	Assets     int
	TotalValue float64
}

type site struct {
	datacenter string
	city       string
	country    string
}

var sites = []site{
	{"US-East-1", "New York", "USA"},
	{"US-West-2", "San Francisco", "USA"},
	{"EU-Central-1", "Frankfurt", "Germany"},
}

var environments = []models.Environment{models.EnvProduction, models.EnvStaging, models.EnvDevelopment}

type product struct {
	catalog  models.Catalog
	sku      models.SKU
	msrp     float64
	hostname string
}

func products() []product {
	effective := models.NewDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	ports := func(n int) *int { return &n }

	mk := func(c models.Catalog, s models.SKU, msrp float64, hostname string) product {
		c.Status = models.LifecycleActive
		s.Status = models.LifecycleActive
		s.Manufacturer = c.Manufacturer
		s.Pricing = models.Pricing{MSRP: &msrp, Currency: "USD", EffectiveDate: effective}
		return product{catalog: c, sku: s, msrp: msrp, hostname: hostname}
	}

	return []product{
		mk(
			models.Catalog{Name: "Enterprise Servers", Category: models.CategoryServer, Manufacturer: "HP", Description: "High-performance rack-mounted servers"},
			models.SKU{
				SKUCode: "HP-DL380-G10", Name: "HP ProLiant DL380 Gen10", ModelName: "DL380 Gen10", Description: "Enterprise rack server",
				Specifications: models.SKUSpecifications{CPU: "Intel Xeon Silver 4210R", Memory: "32GB DDR4", Storage: "2x 1TB SAS"},
				Warranty:       models.WarrantyTerms{Standard: 3, Support: "Next Business Day"},
			},
			4500, "srv",
		),
		mk(
			models.Catalog{Name: "Network Switches", Category: models.CategoryNetworkSwitch, Manufacturer: "Cisco", Description: "Enterprise network switches"},
			models.SKU{
				SKUCode: "CISCO-C9300-48P", Name: "Cisco Catalyst 9300 48-Port", ModelName: "C9300-48P", Description: "Enterprise switch",
				Specifications: models.SKUSpecifications{NetworkPorts: ports(48), PowerSupply: "715W"},
				Warranty:       models.WarrantyTerms{Standard: 1, Support: "Next Business Day"},
			},
			8500, "sw",
		),
		mk(
			models.Catalog{Name: "Firewalls", Category: models.CategoryFirewall, Manufacturer: "Palo Alto", Description: "Network security appliances"},
			models.SKU{
				SKUCode: "PALO-PA-3220", Name: "Palo Alto PA-3220", ModelName: "PA-3220", Description: "Next-generation firewall",
				Specifications: models.SKUSpecifications{NetworkPorts: ports(16), PowerSupply: "200W"},
				Warranty:       models.WarrantyTerms{Standard: 1, Support: "Next Business Day"},
			},
			12000, "fw",
		),
	}
}

// Run creates three catalogs with one SKU each and opts.AssetsPerSKU assets
// per SKU. The same options always produce the same inventory.
func Run(ctx context.Context, store Store, opts Options, log logrus.FieldLogger) (*Summary, error) {
	if opts.AssetsPerSKU <= 0 {
		opts.AssetsPerSKU = DefaultAssetsPerSKU
	}

	if opts.Reset {
		log.Info("clearing existing inventory")
		if err := store.DeleteInventory(ctx); err != nil {
			return nil, fmt.Errorf("clearing inventory: %w", err)
		}
	}

	rng := rand.New(rand.NewPCG(2024, uint64(opts.AssetsPerSKU)))
	sum := &Summary{}
	var prices []float64
	counter := 1

	for _, p := range products() {
		catalog, err := store.CreateCatalog(ctx, &p.catalog)
		if err != nil {
			return nil, fmt.Errorf("creating catalog %s: %w", p.catalog.Name, err)
		}
		sum.Catalogs++

		p.sku.CatalogID = catalog.ID
		sku, err := store.CreateSKU(ctx, &p.sku)
		if err != nil {
			return nil, fmt.Errorf("creating SKU %s: %w", p.sku.SKUCode, err)
		}
		sum.SKUs++

		for j := 0; j < opts.AssetsPerSKU; j++ {
			a := newAsset(rng, p, sku.ID, counter)
			if _, err := store.CreateAsset(ctx, a); err != nil {
				return nil, fmt.Errorf("creating asset %s: %w", a.AssetTag, err)
			}
			prices = append(prices, a.Financial.Capex.PurchasePrice)
			sum.Assets++
			counter++
		}
	}

	sum.TotalValue = financial.Sum(prices...)
	log.WithFields(logrus.Fields{
		"catalogs":   sum.Catalogs,
		"skus":       sum.SKUs,
		"assets":     sum.Assets,
		"totalValue": sum.TotalValue,
	}).Info("seed data created")
	return sum, nil
}

func newAsset(rng *rand.Rand, p product, skuID uint, n int) *models.Asset {
	s := sites[rng.IntN(len(sites))]
	purchased := time.Date(2024, time.Month(rng.IntN(12)+1), rng.IntN(28)+1, 0, 0, 0, 0, time.UTC)
	goLive := purchased.AddDate(0, 0, rng.IntN(14)+1)

	status := models.AssetActive
	if rng.Float64() > 0.8 {
		status = models.AssetInactive
	}

	a := models.NewAsset()
	a.SKUID = skuID
	a.AssetTag = fmt.Sprintf("AST-%06d", n)
	a.Name = fmt.Sprintf("%s #%d", p.sku.Name, n)
	a.SerialNumber = fmt.Sprintf("SN%08X", rng.Uint32())
	a.Status = status
	a.Location = models.Location{
		Datacenter: s.datacenter,
		Rack:       fmt.Sprintf("R%d", rng.IntN(20)+1),
		RackUnit:   fmt.Sprint(rng.IntN(42) + 1),
		City:       s.city,
		Country:    s.country,
	}
	a.Deployment = models.Deployment{
		GoLiveDate:  models.NewDate(goLive),
		Environment: environments[rng.IntN(len(environments))],
	}
	a.Specifications = models.AssetSpecifications{
		Hostname:    fmt.Sprintf("%s-%03d", p.hostname, n),
		IPAddresses: []string{fmt.Sprintf("10.%d.%d.%d", rng.IntN(255), rng.IntN(255), rng.IntN(254)+1)},
	}
	a.Financial.Capex = models.Capex{
		PurchasePrice:           float64(int(p.msrp * (0.8 + rng.Float64()*0.4))),
		Currency:                "USD",
		PurchaseDate:            models.NewDate(purchased),
		Vendor:                  p.sku.Manufacturer,
		PONumber:                fmt.Sprintf("PO-%d", rng.IntN(900000)+100000),
		DepreciationPeriodYears: 4,
	}
	// vendor warranty for the SKU's standard term, priced at a tenth of the
	// purchase per year
	a.Financial.Opex.Warranty = []models.WarrantyContract{{
		Cost:      float64(int(a.Financial.Capex.PurchasePrice / 10)),
		Currency:  "USD",
		StartDate: models.NewDate(goLive),
		EndDate:   models.NewDate(goLive.AddDate(p.sku.Warranty.Standard, 0, 0)),
		Vendor:    p.sku.Manufacturer,
		Type:      models.WarrantyNextBusinessDay,
	}}
	return a
}
