package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"it-inventory/internal/database"
	"it-inventory/internal/models"
	"it-inventory/internal/reports"
)

// memStore mimics database.Store closely enough for handler tests:
// normalization on save, unique keys, reference checks and delete blocking.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	catalogs map[uint]models.Catalog
	skus     map[uint]models.SKU
	assets   map[uint]models.Asset
	users    map[uint]models.User
	audit    []models.AuditLog
	fail     error
}

func newMemStore() *memStore {
	return &memStore{
		catalogs: map[uint]models.Catalog{},
		skus:     map[uint]models.SKU{},
		assets:   map[uint]models.Asset{},
		users:    map[uint]models.User{},
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func stamp(b *models.Base, id uint) {
	now := time.Now().UTC()
	if b.ID == 0 {
		b.ID = id
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func page[T any](items []T, p database.Page) []T {
	p = p.Normalize()
	start := min(p.Offset(), len(items))
	end := min(start+p.Limit, len(items))
	return items[start:end]
}

func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), strings.ToLower(search)) {
			return true
		}
	}
	return false
}

// Catalogs

func (m *memStore) catalogView(c models.Catalog) *models.Catalog {
	for _, s := range m.skus {
		if s.CatalogID == c.ID {
			c.SKUCount++
		}
	}
	return &c
}

func (m *memStore) ListCatalogs(_ context.Context, f database.CatalogFilter) ([]models.Catalog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, 0, m.fail
	}
	var out []models.Catalog
	for _, c := range m.catalogs {
		if !matches(f.Search, c.Name, c.Description, c.Manufacturer) ||
			(f.Category != "" && string(c.Category) != f.Category) ||
			(f.Status != "" && string(c.Status) != f.Status) {
			continue
		}
		out = append(out, *m.catalogView(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Page), int64(len(out)), nil
}

func (m *memStore) GetCatalog(_ context.Context, id uint) (*models.Catalog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.catalogs[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return m.catalogView(c), nil
}

func (m *memStore) saveCatalog(c *models.Catalog) error {
	c.Normalize()
	for _, other := range m.catalogs {
		if other.ID != c.ID && other.Name == c.Name && other.Manufacturer == c.Manufacturer {
			return &database.DuplicateError{Field: "name,manufacturer"}
		}
	}
	stamp(&c.Base, m.id())
	c.SKUCount = 0
	m.catalogs[c.ID] = *c
	return nil
}

func (m *memStore) CreateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error) {
	m.mu.Lock()
	c.ID = 0
	err := m.saveCatalog(c)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.GetCatalog(ctx, c.ID)
}

func (m *memStore) UpdateCatalog(ctx context.Context, c *models.Catalog) (*models.Catalog, error) {
	m.mu.Lock()
	if _, ok := m.catalogs[c.ID]; !ok {
		m.mu.Unlock()
		return nil, database.ErrNotFound
	}
	err := m.saveCatalog(c)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.GetCatalog(ctx, c.ID)
}

func (m *memStore) DeleteCatalog(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.skus {
		if s.CatalogID == id {
			return database.ErrInUse
		}
	}
	if _, ok := m.catalogs[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.catalogs, id)
	return nil
}

// SKUs

func (m *memStore) skuView(s models.SKU) *models.SKU {
	if c, ok := m.catalogs[s.CatalogID]; ok {
		s.Catalog = &c
	}
	for _, a := range m.assets {
		if a.SKUID == s.ID {
			s.AssetCount++
		}
	}
	return &s
}

func (m *memStore) ListSKUs(_ context.Context, f database.SKUFilter) ([]models.SKU, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SKU
	for _, s := range m.skus {
		if !matches(f.Search, s.Name, s.SKUCode, s.ModelName, s.Description) ||
			(f.CatalogID != 0 && s.CatalogID != f.CatalogID) ||
			(f.Manufacturer != "" && !matches(f.Manufacturer, s.Manufacturer)) ||
			(f.Status != "" && string(s.Status) != f.Status) {
			continue
		}
		out = append(out, *m.skuView(s))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Page), int64(len(out)), nil
}

func (m *memStore) GetSKU(_ context.Context, id uint) (*models.SKU, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.skus[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return m.skuView(s), nil
}

func (m *memStore) saveSKU(s *models.SKU) error {
	if _, ok := m.catalogs[s.CatalogID]; !ok {
		return database.ErrInvalidReference
	}
	s.Normalize()
	for _, other := range m.skus {
		if other.ID != s.ID && other.SKUCode == s.SKUCode {
			return &database.DuplicateError{Field: "skuCode"}
		}
	}
	stamp(&s.Base, m.id())
	s.Catalog = nil
	s.AssetCount = 0
	m.skus[s.ID] = *s
	return nil
}

func (m *memStore) CreateSKU(ctx context.Context, s *models.SKU) (*models.SKU, error) {
	m.mu.Lock()
	s.ID = 0
	err := m.saveSKU(s)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.GetSKU(ctx, s.ID)
}

func (m *memStore) UpdateSKU(ctx context.Context, s *models.SKU) (*models.SKU, error) {
	m.mu.Lock()
	if _, ok := m.skus[s.ID]; !ok {
		m.mu.Unlock()
		return nil, database.ErrNotFound
	}
	err := m.saveSKU(s)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.GetSKU(ctx, s.ID)
}

func (m *memStore) DeleteSKU(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.SKUID == id {
			return database.ErrInUse
		}
	}
	if _, ok := m.skus[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.skus, id)
	return nil
}

// Assets

func (m *memStore) assetView(a models.Asset) *models.Asset {
	if s, ok := m.skus[a.SKUID]; ok {
		if c, ok := m.catalogs[s.CatalogID]; ok {
			s.Catalog = &c
		}
		a.SKU = &s
	}
	return &a
}

func (m *memStore) ListAssets(_ context.Context, f database.AssetFilter) ([]models.Asset, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Asset
	for _, a := range m.assets {
		if !matches(f.Search, a.Name, a.AssetTag, a.SerialNumber, a.Specifications.Hostname) ||
			(f.SKUID != 0 && a.SKUID != f.SKUID) ||
			(f.Status != "" && string(a.Status) != f.Status) ||
			(f.Datacenter != "" && !matches(f.Datacenter, a.Location.Datacenter)) ||
			(f.Environment != "" && string(a.Deployment.Environment) != f.Environment) {
			continue
		}
		out = append(out, *m.assetView(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return page(out, f.Page), int64(len(out)), nil
}

func (m *memStore) GetAsset(_ context.Context, id uint) (*models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assets[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return m.assetView(a), nil
}

func (m *memStore) saveAsset(a *models.Asset) error {
	if _, ok := m.skus[a.SKUID]; !ok {
		return database.ErrInvalidReference
	}
	a.Normalize()
	for _, other := range m.assets {
		if other.ID != a.ID && other.AssetTag == a.AssetTag {
			return &database.DuplicateError{Field: "assetTag"}
		}
	}
	stamp(&a.Base, m.id())
	a.SKU = nil
	m.assets[a.ID] = *a
	return nil
}

func (m *memStore) CreateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	m.mu.Lock()
	a.ID = 0
	err := m.saveAsset(a)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.GetAsset(ctx, a.ID)
}

func (m *memStore) UpdateAsset(ctx context.Context, a *models.Asset) (*models.Asset, error) {
	m.mu.Lock()
	if _, ok := m.assets[a.ID]; !ok {
		m.mu.Unlock()
		return nil, database.ErrNotFound
	}
	err := m.saveAsset(a)
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return m.GetAsset(ctx, a.ID)
}

func (m *memStore) DeleteAsset(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.assets[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.assets, id)
	return nil
}

func (m *memStore) ReportAssets(_ context.Context, ids []uint) ([]models.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Asset
	for _, a := range m.assets {
		if len(ids) == 0 || containsID(ids, a.ID) {
			out = append(out, *m.assetView(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AssetTag < out[j].AssetTag })
	return out, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Users and audit

func (m *memStore) GetUser(_ context.Context, id uint) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (m *memStore) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == models.NormalizeUsername(username) {
			return &u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memStore) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.User
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *memStore) CreateUser(_ context.Context, username, password string, role models.UserRole) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	username = models.NormalizeUsername(username)
	for _, u := range m.users {
		if u.Username == username {
			return nil, &database.DuplicateError{Field: "username"}
		}
	}
	hash, err := database.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := models.User{Username: username, PasswordHash: hash, Role: role}
	stamp(&u.Base, m.id())
	m.users[u.ID] = u
	return &u, nil
}

func (m *memStore) RecordAudit(_ context.Context, entry *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry.ID = uint(len(m.audit) + 1)
	entry.CreatedAt = time.Now().UTC()
	m.audit = append(m.audit, *entry)
	return nil
}

func (m *memStore) ListAudit(_ context.Context, f database.AuditFilter) ([]models.AuditLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.AuditLog
	for i := len(m.audit) - 1; i >= 0; i-- {
		e := m.audit[i]
		if (f.Entity == "" || e.Entity == f.Entity) && (f.EntityID == 0 || e.EntityID == f.EntityID) {
			out = append(out, e)
		}
	}
	return page(out, f.Page), int64(len(out)), nil
}

// countingReports wraps the real service to observe cache invalidation.
type countingReports struct {
	*reports.Service
	invalidations int
}

func (r *countingReports) Invalidate(ctx context.Context) {
	r.invalidations++
	r.Service.Invalidate(ctx)
}
