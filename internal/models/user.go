package models

import "strings"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
	RoleViewer UserRole = "viewer"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// CanWrite reports whether the role may change inventory records.
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleEditor
}

type User struct {
	Base
	Username     string   `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"role"`
}

func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
