package models

import "time"

// Entities and actions recorded in the audit log.
const (
	EntityCatalog = "catalog"
	EntitySKU     = "sku"
	EntityAsset   = "asset"
	EntityUser    = "user"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// nil when the change was made with authentication disabled or by a
	// command-line tool
	UserID   *uint  `gorm:"index" json:"userId,omitempty"`
	Username string `gorm:"size:50" json:"username,omitempty"`

	Entity    string `gorm:"size:50;not null;index:idx_audit_entity" json:"entity"`
	EntityID  uint   `gorm:"index:idx_audit_entity" json:"entityId"`
	Action    string `gorm:"size:50;not null" json:"action"`
	Details   string `gorm:"type:text" json:"details,omitempty"`
	RequestID string `gorm:"size:64" json:"requestId,omitempty"`
}
