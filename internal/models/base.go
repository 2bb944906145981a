package models

import "time"

// Base replaces gorm.Model: inventory records are hard-deleted so that
// unique asset tags and SKU codes can be reused.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
