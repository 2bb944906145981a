package models

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/gorm"
)

// SKU is a purchasable model within a catalog.
type SKU struct {
	Base
	CatalogID      uint              `gorm:"not null;index" json:"catalogId" binding:"required"`
	Catalog        *Catalog          `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	SKUCode        string            `gorm:"column:sku_code;size:50;not null;uniqueIndex:idx_skus_sku_code" json:"skuCode" binding:"notblank,max=50"`
	Name           string            `gorm:"size:150;not null" json:"name" binding:"notblank,max=150"`
	ModelName      string            `gorm:"size:100;not null" json:"modelName" binding:"notblank,max=100"`
	Description    string            `gorm:"size:1000;not null" json:"description" binding:"notblank,max=1000"`
	Manufacturer   string            `gorm:"size:100;not null;index" json:"manufacturer" binding:"notblank,max=100"`
	Status         LifecycleStatus   `gorm:"type:varchar(20);not null;index" json:"status" binding:"required,oneof=active inactive discontinued"`
	Specifications SKUSpecifications `gorm:"serializer:json;type:jsonb" json:"specifications"`
	Pricing        Pricing           `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	Warranty       WarrantyTerms     `gorm:"embedded;embeddedPrefix:warranty_" json:"warranty"`

	// number of assets deployed from this SKU, filled by list and get queries
	AssetCount int64 `gorm:"->;-:migration" json:"assetCount"`
}

func (SKU) TableName() string { return "skus" }

type SKUSpecifications struct {
	CPU             string      `json:"cpu,omitempty"`
	Memory          string      `json:"memory,omitempty"`
	Storage         string      `json:"storage,omitempty"`
	NetworkPorts    *int        `json:"networkPorts,omitempty" binding:"omitempty,min=0"`
	PowerSupply     string      `json:"powerSupply,omitempty"`
	Dimensions      *Dimensions `json:"dimensions,omitempty"`
	OperatingSystem string      `json:"operatingSystem,omitempty"`
	SupportedOS     []string    `json:"supportedOS,omitempty"`
}

type Dimensions struct {
	Height *float64 `json:"height,omitempty" binding:"omitempty,min=0"`
	Width  *float64 `json:"width,omitempty" binding:"omitempty,min=0"`
	Depth  *float64 `json:"depth,omitempty" binding:"omitempty,min=0"`
	Weight *float64 `json:"weight,omitempty" binding:"omitempty,min=0"`
}

type Pricing struct {
	MSRP          *float64 `json:"msrp,omitempty" binding:"omitempty,min=0"`
	Currency      string   `gorm:"size:3;not null" json:"currency" binding:"required,len=3"`
	EffectiveDate Date     `gorm:"type:timestamptz;not null" json:"effectiveDate" binding:"required"`
	EndDate       *Date    `gorm:"type:timestamptz" json:"endDate,omitempty"`
}

// WarrantyTerms are the manufacturer's terms, in years.
type WarrantyTerms struct {
	Standard int    `gorm:"not null" json:"standard" binding:"min=0"`
	Extended *int   `json:"extended,omitempty" binding:"omitempty,min=0"`
	Support  string `gorm:"size:100" json:"support,omitempty"`
}

func NewSKU() *SKU {
	return &SKU{
		Status: LifecycleActive,
		Pricing: Pricing{
			Currency:      DefaultCurrency,
			EffectiveDate: NewDate(time.Now().UTC()),
		},
		Warranty: WarrantyTerms{Standard: DefaultStandardWarrantyYears},
	}
}

// CatalogRef is the owning catalog, expanded when it was preloaded.
func (s *SKU) CatalogRef() Ref[Catalog] {
	return ExpandRef(s.CatalogID, s.Catalog)
}

func (s *SKU) Normalize() {
	s.SKUCode = strings.ToUpper(strings.TrimSpace(s.SKUCode))
	s.Name = strings.TrimSpace(s.Name)
	s.ModelName = strings.TrimSpace(s.ModelName)
	s.Description = strings.TrimSpace(s.Description)
	s.Manufacturer = strings.TrimSpace(s.Manufacturer)
	s.Pricing.Currency = strings.ToUpper(strings.TrimSpace(s.Pricing.Currency))
	s.Warranty.Support = strings.TrimSpace(s.Warranty.Support)
	s.Specifications.SupportedOS = trimAll(s.Specifications.SupportedOS)
}

func (s *SKU) BeforeSave(tx *gorm.DB) error {
	s.Normalize()
	return nil
}

func (s SKU) MarshalJSON() ([]byte, error) {
	type sku SKU
	return json.Marshal(struct {
		sku
		Catalog Ref[Catalog] `json:"catalog"`
	}{sku(s), s.CatalogRef()})
}
