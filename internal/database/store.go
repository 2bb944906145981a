package database

import (
	"context"
	"fmt"

	"it-inventory/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the inventory's persistence layer.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

const (
	catalogColumns = "catalogs.*, (SELECT COUNT(*) FROM skus WHERE skus.catalog_id = catalogs.id) AS sku_count"
	skuColumns     = "skus.*, (SELECT COUNT(*) FROM assets WHERE assets.sku_id = skus.id) AS asset_count"
)

// Catalogs

func (s *Store) ListCatalogs(ctx context.Context, f CatalogFilter) ([]models.Catalog, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Catalog{})
	if f.Search != "" {
		like := contains(f.Search)
		q = q.Where("(catalogs.name ILIKE ? OR catalogs.description ILIKE ? OR catalogs.manufacturer ILIKE ?)", like, like, like)
	}
	if f.Category != "" {
		q = q.Where("catalogs.category = ?", f.Category)
	}
	if f.Status != "" {
		q = q.Where("catalogs.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Catalog
	err := f.Page.apply(q.Select(catalogColumns)).
		Order("catalogs.created_at DESC, catalogs.id DESC").
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) GetCatalog(ctx context.Context, id uint) (*models.Catalog, error) {
	var c models.Catalog
	err := s.db.WithContext(ctx).Select(catalogColumns).First(&c, id).Error
	if err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return &c, nil
}

func (s *Store) CreateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error) {
	c.ID = 0
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return s.GetCatalog(ctx, c.ID)
}

func (s *Store) UpdateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error) {
	if err := s.update(ctx, c, c.ID); err != nil {
		return nil, err
	}
	return s.GetCatalog(ctx, c.ID)
}

// DeleteCatalog refuses while any SKU belongs to the catalog.
func (s *Store) DeleteCatalog(ctx context.Context, id uint) error {
	return s.deleteUnreferenced(ctx, &models.Catalog{}, id, &models.SKU{}, "catalog_id")
}

// SKUs

func (s *Store) ListSKUs(ctx context.Context, f SKUFilter) ([]models.SKU, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.SKU{})
	if f.Search != "" {
		like := contains(f.Search)
		q = q.Where("(skus.name ILIKE ? OR skus.sku_code ILIKE ? OR skus.model_name ILIKE ? OR skus.description ILIKE ?)", like, like, like, like)
	}
	if f.CatalogID != 0 {
		q = q.Where("skus.catalog_id = ?", f.CatalogID)
	}
	if f.Manufacturer != "" {
		q = q.Where("skus.manufacturer ILIKE ?", contains(f.Manufacturer))
	}
	if f.Status != "" {
		q = q.Where("skus.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.SKU
	err := f.Page.apply(q.Select(skuColumns).Preload("Catalog")).
		Order("skus.created_at DESC, skus.id DESC").
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) GetSKU(ctx context.Context, id uint) (*models.SKU, error) {
	var sku models.SKU
	err := s.db.WithContext(ctx).Select(skuColumns).Preload("Catalog").First(&sku, id).Error
	if err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return &sku, nil
}

func (s *Store) CreateSKU(ctx context.Context, sku *models.SKU) (*models.SKU, error) {
	sku.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Catalog{}, sku.CatalogID); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(sku).Error, ErrInvalidReference)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSKU(ctx, sku.ID)
}

func (s *Store) UpdateSKU(ctx context.Context, sku *models.SKU) (*models.SKU, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.Catalog{}, sku.CatalogID); err != nil {
			return err
		}
		return NewStore(tx).update(ctx, sku, sku.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetSKU(ctx, sku.ID)
}

// DeleteSKU refuses while any asset was deployed from the SKU.
func (s *Store) DeleteSKU(ctx context.Context, id uint) error {
	return s.deleteUnreferenced(ctx, &models.SKU{}, id, &models.Asset{}, "sku_id")
}

// Assets

func (s *Store) ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Asset{})
	if f.Search != "" {
		like := contains(f.Search)
		q = q.Where("(assets.name ILIKE ? OR assets.asset_tag ILIKE ? OR assets.serial_number ILIKE ? OR assets.specifications->>'hostname' ILIKE ?)", like, like, like, like)
	}
	if f.SKUID != 0 {
		q = q.Where("assets.sku_id = ?", f.SKUID)
	}
	if f.Status != "" {
		q = q.Where("assets.status = ?", f.Status)
	}
	if f.Datacenter != "" {
		q = q.Where("assets.location_datacenter ILIKE ?", contains(f.Datacenter))
	}
	if f.Environment != "" {
		q = q.Where("assets.deployment_environment = ?", f.Environment)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []models.Asset
	err := f.Page.apply(q.Preload("SKU.Catalog")).
		Order("assets.created_at DESC, assets.id DESC").
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) GetAsset(ctx context.Context, id uint) (*models.Asset, error) {
	var a models.Asset
	err := s.db.WithContext(ctx).Preload("SKU.Catalog").First(&a, id).Error
	if err != nil {
		return nil, translate(err, ErrInvalidReference)
	}
	return &a, nil
}

func (s *Store) CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	a.ID = 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.SKU{}, a.SKUID); err != nil {
			return err
		}
		return translate(tx.Omit(clause.Associations).Create(a).Error, ErrInvalidReference)
	})
	if err != nil {
		return nil, err
	}
	return s.GetAsset(ctx, a.ID)
}

func (s *Store) UpdateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mustExist(tx, &models.SKU{}, a.SKUID); err != nil {
			return err
		}
		return NewStore(tx).update(ctx, a, a.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.GetAsset(ctx, a.ID)
}

func (s *Store) DeleteAsset(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Asset{}, id)
	if res.Error != nil {
		return translate(res.Error, ErrInUse)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ReportAssets loads the assets a financial report covers: the given ids,
// or every asset when ids is empty. Unknown ids are ignored.
func (s *Store) ReportAssets(ctx context.Context, ids []uint) ([]models.Asset, error) {
	q := s.db.WithContext(ctx).Preload("SKU.Catalog")
	if len(ids) > 0 {
		q = q.Where("assets.id IN ?", ids)
	}
	var out []models.Asset
	if err := q.Order("assets.asset_tag").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteInventory removes every asset, SKU and catalog.
func (s *Store) DeleteInventory(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&models.Asset{}, &models.SKU{}, &models.Catalog{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// update writes every column of record except its creation time.
func (s *Store) update(ctx context.Context, record any, id uint) error {
	res := s.db.WithContext(ctx).
		Model(record).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Where("id = ?", id).
		Updates(record)
	if res.Error != nil {
		return translate(res.Error, ErrInvalidReference)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) deleteUnreferenced(ctx context.Context, record any, id uint, child any, fk string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(child).Where(fk+" = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return fmt.Errorf("%w: %d dependent records", ErrInUse, refs)
		}
		res := tx.Delete(record, id)
		if res.Error != nil {
			return translate(res.Error, ErrInUse)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func mustExist(tx *gorm.DB, model any, id uint) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidReference
	}
	return nil
}
