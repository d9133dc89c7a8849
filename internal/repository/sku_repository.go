package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warehouse-service/internal/models"
)

// SkuListFilter narrows List results.
type SkuListFilter struct {
	Marketplace models.Marketplace
	MSKU        string
	Search      string
	Page        int
	Limit       int
}

// SkuRepositoryInterface is the store contract consumed by services.
type SkuRepositoryInterface interface {
	Create(ctx context.Context, sku *models.Sku) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Sku, error)
	GetBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (*models.Sku, error)
	GetBySKU(ctx context.Context, sku string) (*models.Sku, error)
	List(ctx context.Context, filter SkuListFilter) ([]models.Sku, int64, error)
	Save(ctx context.Context, sku *models.Sku) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error)
	DeleteByMSKU(ctx context.Context, msku string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// SkuRepository handles database operations for SKU mappings
type SkuRepository struct {
	db *gorm.DB
}

var _ SkuRepositoryInterface = (*SkuRepository)(nil)

// NewSkuRepository creates a new SkuRepository
func NewSkuRepository(db *gorm.DB) *SkuRepository {
	return &SkuRepository{db: db}
}

// Create inserts a new SKU mapping
func (r *SkuRepository) Create(ctx context.Context, sku *models.Sku) error {
	err := r.db.WithContext(ctx).Create(sku).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID retrieves a SKU mapping by its internal id
func (r *SkuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sku, error) {
	var sku models.Sku
	err := r.db.WithContext(ctx).Preload("Product").First(&sku, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// GetBySKUAndMarketplace retrieves the mapping for a marketplace SKU code
func (r *SkuRepository) GetBySKUAndMarketplace(ctx context.Context, skuCode string, marketplace models.Marketplace) (*models.Sku, error) {
	var sku models.Sku
	err := r.db.WithContext(ctx).
		First(&sku, "sku = ? AND marketplace = ?", skuCode, marketplace).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// GetBySKU retrieves a mapping by SKU code regardless of marketplace.
// Used as a resolution fallback when no marketplace-scoped mapping exists.
func (r *SkuRepository) GetBySKU(ctx context.Context, skuCode string) (*models.Sku, error) {
	var sku models.Sku
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		First(&sku, "sku = ?", skuCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sku, nil
}

// List retrieves SKU mappings matching the filter with a total count
func (r *SkuRepository) List(ctx context.Context, filter SkuListFilter) ([]models.Sku, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Sku{})

	if filter.Marketplace != "" {
		query = query.Where("marketplace = ?", filter.Marketplace)
	}
	if filter.MSKU != "" {
		query = query.Where("msku = ?", filter.MSKU)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("sku ILIKE ? OR msku ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var skus []models.Sku
	err := query.
		Preload("Product").
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&skus).Error
	return skus, total, err
}

// Save persists all fields of an existing SKU mapping
func (r *SkuRepository) Save(ctx context.Context, sku *models.Sku) error {
	return r.db.WithContext(ctx).Save(sku).Error
}

// Delete removes a SKU mapping
func (r *SkuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Sku{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMSKU repoints every mapping from oldMSKU to newMSKU and returns
// the number of rows changed
func (r *SkuRepository) UpdateMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Sku{}).
		Where("msku = ?", oldMSKU).
		Update("msku", newMSKU)
	return result.RowsAffected, result.Error
}

// DeleteByMSKU removes every mapping referencing the given master SKU
func (r *SkuRepository) DeleteByMSKU(ctx context.Context, msku string) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Sku{}, "msku = ?", msku)
	return result.RowsAffected, result.Error
}

// Count returns the total number of SKU mappings
func (r *SkuRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Sku{}).Count(&count).Error
	return count, err
}
