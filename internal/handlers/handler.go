package handlers

import (
	"context"

	"it-inventory/internal/database"
	"it-inventory/internal/models"
	"it-inventory/internal/reports"

	"github.com/sirupsen/logrus"
)

type CatalogStore interface {
	ListCatalogs(ctx context.Context, f database.CatalogFilter) ([]models.Catalog, int64, error)
	GetCatalog(ctx context.Context, id uint) (*models.Catalog, error)
	CreateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error)
	UpdateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error)
	DeleteCatalog(ctx context.Context, id uint) error
}

type SKUStore interface {
	ListSKUs(ctx context.Context, f database.SKUFilter) ([]models.SKU, int64, error)
	GetSKU(ctx context.Context, id uint) (*models.SKU, error)
	CreateSKU(ctx context.Context, s *models.SKU) (*models.SKU, error)
	UpdateSKU(ctx context.Context, s *models.SKU) (*models.SKU, error)
	DeleteSKU(ctx context.Context, id uint) error
}

type AssetStore interface {
	ListAssets(ctx context.Context, f database.AssetFilter) ([]models.Asset, int64, error)
	GetAsset(ctx context.Context, id uint) (*models.Asset, error)
	CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error)
	UpdateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error)
	DeleteAsset(ctx context.Context, id uint) error
}

type UserStore interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	CreateUser(ctx context.Context, username, password string, role models.UserRole) (*models.User, error)
}

type AuditStore interface {
	RecordAudit(ctx context.Context, entry *models.AuditLog) error
	ListAudit(ctx context.Context, f database.AuditFilter) ([]models.AuditLog, int64, error)
}

// Store is everything the API reads and writes. *database.Store satisfies
// it.
type Store interface {
	CatalogStore
	SKUStore
	AssetStore
	UserStore
	AuditStore
}

type ReportService interface {
	Build(ctx context.Context, req reports.Request) (*reports.Report, error)
	Generate(ctx context.Context, req reports.Request) (*reports.Report, error)
	Invalidate(ctx context.Context)
}

type Handler struct {
	store   Store
	reports ReportService
	log     logrus.FieldLogger
}

func New(store Store, reports ReportService, log logrus.FieldLogger) *Handler {
	return &Handler{store: store, reports: reports, log: log}
}
