package models

type CatalogCategory string

const (
	CategoryServer        CatalogCategory = "server"
	CategoryNetworkSwitch CatalogCategory = "network-switch"
	CategoryFirewall      CatalogCategory = "firewall"
	CategoryStorage       CatalogCategory = "storage"
	CategoryLaptop        CatalogCategory = "laptop"
	CategoryDesktop       CatalogCategory = "desktop"
	CategoryMonitor       CatalogCategory = "monitor"
	CategoryPrinter       CatalogCategory = "printer"
	CategoryOther         CatalogCategory = "other"
)

// LifecycleStatus applies to catalogs and SKUs.
type LifecycleStatus string

const (
	LifecycleActive       LifecycleStatus = "active"
	LifecycleInactive     LifecycleStatus = "inactive"
	LifecycleDiscontinued LifecycleStatus = "discontinued"
)

type AssetStatus string

const (
	AssetActive      AssetStatus = "active"
	AssetInactive    AssetStatus = "inactive"
	AssetMaintenance AssetStatus = "maintenance"
	AssetRetired     AssetStatus = "retired"
	AssetDisposed    AssetStatus = "disposed"
)

type Environment string

const (
	EnvProduction  Environment = "production"
	EnvStaging     Environment = "staging"
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvBackup      Environment = "backup"
)

type WarrantyType string

const (
	WarrantyBasic           WarrantyType = "basic"
	WarrantyPremium         WarrantyType = "premium"
	WarrantyOnsite          WarrantyType = "onsite"
	WarrantyNextBusinessDay WarrantyType = "next-business-day"
)

const (
	DefaultCurrency                = "USD"
	DefaultDepreciationPeriodYears = 4
	DefaultStandardWarrantyYears   = 1
)
