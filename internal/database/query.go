package database

import (
	"strings"

	"gorm.io/gorm"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to sane bounds.
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p Page) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// Pages is the number of pages needed for total records.
func (p Page) Pages(total int64) int {
	p = p.Normalize()
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return q.Offset(p.Offset()).Limit(p.Limit)
}

type CatalogFilter struct {
	Search   string
	Category string
	Status   string
	Page
}

type SKUFilter struct {
	Search       string
	CatalogID    uint
	Manufacturer string
	Status       string
	Page
}

type AssetFilter struct {
	Search      string
	SKUID       uint
	Status      string
	Datacenter  string
	Environment string
	Page
}

type AuditFilter struct {
	Entity   string
	EntityID uint
	Page
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// contains builds an ILIKE pattern matching s anywhere.
func contains(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}
