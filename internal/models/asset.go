package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"it-inventory/internal/financial"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Asset is one deployed unit of a SKU. Its financial record is stored as a
// single JSONB document owned by the asset.
type Asset struct {
	Base
	SKUID          uint                `gorm:"column:sku_id;not null;index" json:"skuId" binding:"required"`
	SKU            *SKU                `gorm:"foreignKey:SKUID;constraint:OnDelete:RESTRICT" json:"-"`
	AssetTag       string              `gorm:"size:50;not null;uniqueIndex:idx_assets_asset_tag" json:"assetTag" binding:"notblank,max=50"`
	SerialNumber   string              `gorm:"size:100;not null;index" json:"serialNumber" binding:"notblank,max=100"`
	Name           string              `gorm:"size:150;not null" json:"name" binding:"notblank,max=150"`
	Status         AssetStatus         `gorm:"type:varchar(20);not null;index" json:"status" binding:"required,oneof=active inactive maintenance retired disposed"`
	Location       Location            `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Financial      Financial           `gorm:"serializer:json;type:jsonb;not null" json:"financial"`
	Deployment     Deployment          `gorm:"embedded;embeddedPrefix:deployment_" json:"deployment"`
	Specifications AssetSpecifications `gorm:"serializer:json;type:jsonb" json:"specifications"`
}

type Location struct {
	Datacenter string `gorm:"size:100;not null;index" json:"datacenter" binding:"notblank,max=100"`
	Rack       string `gorm:"size:50" json:"rack,omitempty"`
	RackUnit   string `gorm:"size:50" json:"rackUnit,omitempty"`
	Floor      string `gorm:"size:50" json:"floor,omitempty"`
	Building   string `gorm:"size:100" json:"building,omitempty"`
	City       string `gorm:"size:100;not null" json:"city" binding:"notblank,max=100"`
	Country    string `gorm:"size:100;not null" json:"country" binding:"notblank,max=100"`
}

type Financial struct {
	Capex Capex `json:"capex"`
	Opex  Opex  `json:"opex"`
}

type Capex struct {
	PurchasePrice           float64 `json:"purchasePrice" binding:"min=0"`
	Currency                string  `json:"currency" binding:"required,len=3"`
	PurchaseDate            Date    `json:"purchaseDate" binding:"required"`
	Vendor                  string  `json:"vendor" binding:"notblank"`
	PONumber                string  `json:"poNumber,omitempty"`
	DepreciationPeriodYears int     `json:"depreciationPeriodYears" binding:"min=1"`
}

type Opex struct {
	Warranty    []WarrantyContract    `json:"warranty" binding:"dive"`
	Maintenance []MaintenanceContract `json:"maintenance,omitempty" binding:"dive"`
}

// WarrantyContract cost is an annual figure.
type WarrantyContract struct {
	Cost      float64      `json:"cost" binding:"min=0"`
	Currency  string       `json:"currency" binding:"required,len=3"`
	StartDate Date         `json:"startDate" binding:"required"`
	EndDate   Date         `json:"endDate" binding:"required"`
	Vendor    string       `json:"vendor" binding:"notblank"`
	Type      WarrantyType `json:"type" binding:"required,oneof=basic premium onsite next-business-day"`
}

// MaintenanceContract cost is the total over the contract period.
type MaintenanceContract struct {
	Cost      float64 `json:"cost" binding:"min=0"`
	Currency  string  `json:"currency" binding:"required,len=3"`
	StartDate Date    `json:"startDate" binding:"required"`
	EndDate   Date    `json:"endDate" binding:"required"`
	Vendor    string  `json:"vendor" binding:"notblank"`
	Type      string  `json:"type" binding:"notblank"`
}

// Period implementations let validation check contract windows without
// caring which kind of contract it is looking at.
func (w WarrantyContract) Period() (time.Time, time.Time)    { return w.StartDate.Time, w.EndDate.Time }
func (m MaintenanceContract) Period() (time.Time, time.Time) { return m.StartDate.Time, m.EndDate.Time }

func (w WarrantyContract) contract() financial.Contract {
	return financial.Contract{Cost: w.Cost, StartDate: w.StartDate.Time, EndDate: w.EndDate.Time}
}

func (m MaintenanceContract) contract() financial.Contract {
	return financial.Contract{Cost: m.Cost, StartDate: m.StartDate.Time, EndDate: m.EndDate.Time}
}

type Deployment struct {
	GoLiveDate        Date        `gorm:"type:timestamptz;not null;index" json:"goLiveDate" binding:"required"`
	InstallationDate  *Date       `gorm:"type:timestamptz" json:"installationDate,omitempty"`
	CommissioningDate *Date       `gorm:"type:timestamptz" json:"commissioningDate,omitempty"`
	AssignedTo        string      `gorm:"size:150" json:"assignedTo,omitempty"`
	Purpose           string      `gorm:"size:255" json:"purpose,omitempty"`
	Environment       Environment `gorm:"type:varchar(20);not null;index" json:"environment" binding:"required,oneof=production staging development testing backup"`
}

type AssetSpecifications struct {
	Hostname          string            `json:"hostname,omitempty"`
	IPAddresses       []string          `json:"ipAddresses,omitempty" binding:"omitempty,dive,ip"`
	MACAddresses      []string          `json:"macAddresses,omitempty" binding:"omitempty,dive,mac"`
	ConfiguredMemory  string            `json:"configuredMemory,omitempty"`
	ConfiguredStorage string            `json:"configuredStorage,omitempty"`
	InstalledOS       string            `json:"installedOS,omitempty"`
	CustomSpecs       datatypes.JSONMap `json:"customSpecs,omitempty"`
}

func NewAsset() *Asset {
	return &Asset{
		Status: AssetActive,
		Financial: Financial{
			Capex: Capex{
				Currency:                DefaultCurrency,
				DepreciationPeriodYears: DefaultDepreciationPeriodYears,
			},
		},
		Deployment: Deployment{Environment: EnvProduction},
	}
}

// SKURef is the asset's SKU, expanded when it was preloaded.
func (a *Asset) SKURef() Ref[SKU] {
	return ExpandRef(a.SKUID, a.SKU)
}

// FinancialRecord projects the asset onto the input of the financial
// calculations.
func (a *Asset) FinancialRecord() financial.Asset {
	rec := financial.Asset{
		ID:                      strconv.FormatUint(uint64(a.ID), 10),
		AssetTag:                a.AssetTag,
		GoLiveDate:              a.Deployment.GoLiveDate.UTC(),
		PurchasePrice:           a.Financial.Capex.PurchasePrice,
		DepreciationPeriodYears: a.Financial.Capex.DepreciationPeriodYears,
	}
	for _, w := range a.Financial.Opex.Warranty {
		rec.Warranty = append(rec.Warranty, w.contract())
	}
	for _, m := range a.Financial.Opex.Maintenance {
		rec.Maintenance = append(rec.Maintenance, m.contract())
	}
	return rec
}

func FinancialRecords(assets []Asset) []financial.Asset {
	out := make([]financial.Asset, len(assets))
	for i := range assets {
		out[i] = assets[i].FinancialRecord()
	}
	return out
}

func (a *Asset) Normalize() {
	a.AssetTag = strings.ToUpper(strings.TrimSpace(a.AssetTag))
	a.SerialNumber = strings.TrimSpace(a.SerialNumber)
	a.Name = strings.TrimSpace(a.Name)

	l := &a.Location
	l.Datacenter = strings.TrimSpace(l.Datacenter)
	l.Rack = strings.TrimSpace(l.Rack)
	l.RackUnit = strings.TrimSpace(l.RackUnit)
	l.Floor = strings.TrimSpace(l.Floor)
	l.Building = strings.TrimSpace(l.Building)
	l.City = strings.TrimSpace(l.City)
	l.Country = strings.TrimSpace(l.Country)

	c := &a.Financial.Capex
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.Vendor = strings.TrimSpace(c.Vendor)
	c.PONumber = strings.TrimSpace(c.PONumber)
	for i := range a.Financial.Opex.Warranty {
		w := &a.Financial.Opex.Warranty[i]
		w.Currency = strings.ToUpper(strings.TrimSpace(w.Currency))
		w.Vendor = strings.TrimSpace(w.Vendor)
	}
	for i := range a.Financial.Opex.Maintenance {
		m := &a.Financial.Opex.Maintenance[i]
		m.Currency = strings.ToUpper(strings.TrimSpace(m.Currency))
		m.Vendor = strings.TrimSpace(m.Vendor)
		m.Type = strings.TrimSpace(m.Type)
	}
	if a.Financial.Opex.Warranty == nil {
		a.Financial.Opex.Warranty = []WarrantyContract{}
	}

	a.Deployment.AssignedTo = strings.TrimSpace(a.Deployment.AssignedTo)
	a.Deployment.Purpose = strings.TrimSpace(a.Deployment.Purpose)

	s := &a.Specifications
	s.Hostname = strings.TrimSpace(s.Hostname)
	s.IPAddresses = trimAll(s.IPAddresses)
	s.MACAddresses = trimAll(s.MACAddresses)
	for i, mac := range s.MACAddresses {
		s.MACAddresses[i] = strings.ToUpper(mac)
	}
	s.ConfiguredMemory = strings.TrimSpace(s.ConfiguredMemory)
	s.ConfiguredStorage = strings.TrimSpace(s.ConfiguredStorage)
	s.InstalledOS = strings.TrimSpace(s.InstalledOS)
}

func (a *Asset) BeforeSave(tx *gorm.DB) error {
	a.Normalize()
	return nil
}

func (a Asset) MarshalJSON() ([]byte, error) {
	type asset Asset
	return json.Marshal(struct {
		asset
		SKU Ref[SKU] `json:"sku"`
	}{asset(a), a.SKURef()})
}
