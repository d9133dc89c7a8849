package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warehouse-service/internal/models"
)

// InventoryListFilter narrows List results.
type InventoryListFilter struct {
	Marketplace models.Marketplace
	Location    string
	LowStock    bool
	Search      string
	Page        int
	Limit       int
}

// InventorySummary aggregates stock figures for the dashboard.
type InventorySummary struct {
	TotalRecords  int64 `json:"totalRecords"`
	TotalQuantity int64 `json:"totalQuantity"`
	LowStockCount int64 `json:"lowStockCount"`
	OutOfStock    int64 `json:"outOfStock"`
}

// InventoryRepositoryInterface is the store contract consumed by services.
type InventoryRepositoryInterface interface {
	Create(ctx context.Context, record *models.Inventory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error)
	GetByKey(ctx context.Context, msku, sku string, marketplace models.Marketplace) (*models.Inventory, error)
	GetBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (*models.Inventory, error)
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Inventory, error)
	ListByMSKU(ctx context.Context, msku string) ([]models.Inventory, error)
	List(ctx context.Context, filter InventoryListFilter) ([]models.Inventory, int64, error)
	Save(ctx context.Context, record *models.Inventory) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByMSKU(ctx context.Context, msku string) (int64, error)
	DeleteBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (int64, error)
	UpdateMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error)
	Summary(ctx context.Context) (*InventorySummary, error)
}

// InventoryRepository handles database operations for inventory records
type InventoryRepository struct {
	db *gorm.DB
}

var _ InventoryRepositoryInterface = (*InventoryRepository)(nil)

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// Create inserts a new inventory record
func (r *InventoryRepository) Create(ctx context.Context, record *models.Inventory) error {
	err := r.db.WithContext(ctx).Create(record).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID retrieves an inventory record by its internal id
func (r *InventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	var record models.Inventory
	err := r.db.WithContext(ctx).Preload("Product").First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByKey retrieves the record for a (msku, sku, marketplace) combination
func (r *InventoryRepository) GetByKey(ctx context.Context, msku, sku string, marketplace models.Marketplace) (*models.Inventory, error) {
	var record models.Inventory
	err := r.db.WithContext(ctx).
		First(&record, "msku = ? AND sku = ? AND marketplace = ?", msku, sku, marketplace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetBySKUAndMarketplace retrieves the record for a (sku, marketplace)
// pair regardless of MSKU
func (r *InventoryRepository) GetBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (*models.Inventory, error) {
	var record models.Inventory
	err := r.db.WithContext(ctx).
		First(&record, "sku = ? AND marketplace = ?", sku, marketplace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListByProduct retrieves all records for one product
func (r *InventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Inventory, error) {
	var records []models.Inventory
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("marketplace ASC, sku ASC").
		Find(&records).Error
	return records, err
}

// ListByMSKU retrieves all records carrying the given master SKU
func (r *InventoryRepository) ListByMSKU(ctx context.Context, msku string) ([]models.Inventory, error) {
	var records []models.Inventory
	err := r.db.WithContext(ctx).
		Where("msku = ?", msku).
		Order("marketplace ASC, sku ASC").
		Find(&records).Error
	return records, err
}

// List retrieves inventory records matching the filter with a total count
func (r *InventoryRepository) List(ctx context.Context, filter InventoryListFilter) ([]models.Inventory, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Inventory{})

	if filter.Marketplace != "" {
		query = query.Where("inventory.marketplace = ?", filter.Marketplace)
	}
	if filter.Location != "" {
		query = query.Where("inventory.location = ?", filter.Location)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("inventory.msku ILIKE ? OR inventory.sku ILIKE ?", search, search)
	}
	if filter.LowStock {
		query = query.
			Joins("JOIN products ON products.id = inventory.product_id").
			Where("inventory.quantity <= products.low_stock_threshold")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.Inventory
	err := query.
		Preload("Product").
		Order("inventory.last_updated DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&records).Error
	return records, total, err
}

// Save persists all fields of an existing inventory record
func (r *InventoryRepository) Save(ctx context.Context, record *models.Inventory) error {
	return r.db.WithContext(ctx).Save(record).Error
}

// Delete removes an inventory record
func (r *InventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Inventory{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByMSKU removes every record carrying the given master SKU
func (r *InventoryRepository) DeleteByMSKU(ctx context.Context, msku string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Inventory{}, "msku = ?", msku)
	return result.RowsAffected, result.Error
}

// DeleteBySKUAndMarketplace removes the record for a (sku, marketplace) pair
func (r *InventoryRepository) DeleteBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.Inventory{}, "sku = ? AND marketplace = ?", sku, marketplace)
	return result.RowsAffected, result.Error
}

// UpdateMSKU repoints every record from oldMSKU to newMSKU and returns the
// number of rows changed
func (r *InventoryRepository) UpdateMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Inventory{}).
		Where("msku = ?", oldMSKU).
		Update("msku", newMSKU)
	return result.RowsAffected, result.Error
}

// Summary computes aggregate stock figures across all records
func (r *InventoryRepository) Summary(ctx context.Context) (*InventorySummary, error) {
	summary := &InventorySummary{}
	base := r.db.WithContext(ctx).Model(&models.Inventory{})

	if err := base.Session(&gorm.Session{}).Count(&summary.TotalRecords).Error; err != nil {
		return nil, err
	}

	var totalQuantity *int64
	if err := base.Session(&gorm.Session{}).
		Select("SUM(quantity)").
		Scan(&totalQuantity).Error; err != nil {
		return nil, err
	}
	if totalQuantity != nil {
		summary.TotalQuantity = *totalQuantity
	}

	if err := base.Session(&gorm.Session{}).
		Joins("JOIN products ON products.id = inventory.product_id").
		Where("inventory.quantity <= products.low_stock_threshold").
		Count(&summary.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := base.Session(&gorm.Session{}).
		Where("quantity = 0").
		Count(&summary.OutOfStock).Error; err != nil {
		return nil, err
	}

	return summary, nil
}
