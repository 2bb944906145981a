package models

import (
	"strings"

	"gorm.io/gorm"
)

// Catalog is a product family that SKUs belong to.
type Catalog struct {
	Base
	Name         string            `gorm:"size:100;not null;uniqueIndex:idx_catalogs_name_manufacturer" json:"name" binding:"notblank,max=100"`
	Description  string            `gorm:"size:500;not null" json:"description" binding:"notblank,max=500"`
	Category     CatalogCategory   `gorm:"type:varchar(30);not null;index" json:"category" binding:"required,oneof=server network-switch firewall storage laptop desktop monitor printer other"`
	Manufacturer string            `gorm:"size:100;not null;uniqueIndex:idx_catalogs_name_manufacturer" json:"manufacturer" binding:"notblank,max=100"`
	Status       LifecycleStatus   `gorm:"type:varchar(20);not null;index" json:"status" binding:"required,oneof=active inactive discontinued"`
	Attributes   CatalogAttributes `gorm:"serializer:json;type:jsonb" json:"attributes"`

	// number of SKUs in the catalog, filled by list and get queries
	SKUCount int64 `gorm:"->;-:migration" json:"skuCount"`
}

type CatalogAttributes struct {
	FormFactor       string   `json:"formFactor,omitempty"`
	PowerConsumption *float64 `json:"powerConsumption,omitempty" binding:"omitempty,min=0"`
	RackUnits        *float64 `json:"rackUnits,omitempty" binding:"omitempty,min=0"`
	Warranty         string   `json:"warranty,omitempty"`
	Certifications   []string `json:"certifications,omitempty"`
}

// NewCatalog returns a catalog with the defaults applied before a request
// body is decoded over it.
func NewCatalog() *Catalog {
	return &Catalog{Status: LifecycleActive}
}

func (c *Catalog) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	c.Manufacturer = strings.TrimSpace(c.Manufacturer)
	c.Attributes.FormFactor = strings.TrimSpace(c.Attributes.FormFactor)
	c.Attributes.Warranty = strings.TrimSpace(c.Attributes.Warranty)
	c.Attributes.Certifications = trimAll(c.Attributes.Certifications)
}

func (c *Catalog) BeforeSave(tx *gorm.DB) error {
	c.Normalize()
	return nil
}

func trimAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
