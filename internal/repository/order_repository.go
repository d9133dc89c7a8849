package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"warehouse-service/internal/config"
	"warehouse-service/internal/models"
)

// OrderListFilter narrows List results.
type OrderListFilter struct {
	Marketplace models.Marketplace
	Status      models.OrderStatus
	From        *time.Time
	To          *time.Time
	Search      string
	Page        int
	Limit       int
}

// StatusCount is one bucket of an order aggregation.
type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Count  int64              `json:"count"`
}

// MarketplaceCount is one bucket of a per-marketplace aggregation.
type MarketplaceCount struct {
	Marketplace models.Marketplace `json:"marketplace"`
	Count       int64              `json:"count"`
	Revenue     float64            `json:"revenue"`
}

// OrderRepositoryInterface is the store contract consumed by services.
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByOrderID(ctx context.Context, orderID string, marketplace models.Marketplace) (*models.Order, error)
	List(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error)
	Save(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdateItemsMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	CountByMarketplace(ctx context.Context) ([]MarketplaceCount, error)
	Revenue(ctx context.Context, from *time.Time) (float64, error)
}

// OrderRepository handles database operations for orders. The configured
// scope controls whether GetByOrderID matches per marketplace or globally.
type OrderRepository struct {
	db    *gorm.DB
	scope config.OrderIDScope
}

var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(db *gorm.DB, scope config.OrderIDScope) *OrderRepository {
	return &OrderRepository{db: db, scope: scope}
}

// Create inserts a new order together with its items
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Create(order).Error
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// GetByID retrieves an order by its internal id
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderID retrieves an order by its external marketplace id. Under
// marketplace scope the lookup is keyed on (orderId, marketplace); under
// global scope the marketplace argument is ignored.
func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string, marketplace models.Marketplace) (*models.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items")
	if r.scope == config.OrderIDScopeGlobal {
		query = query.Where("order_id = ?", orderID)
	} else {
		query = query.Where("order_id = ? AND marketplace = ?", orderID, marketplace)
	}

	var order models.Order
	err := query.First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// List retrieves orders matching the filter with a total count
func (r *OrderRepository) List(ctx context.Context, filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{})

	if filter.Marketplace != "" {
		query = query.Where("marketplace = ?", filter.Marketplace)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("order_id ILIKE ? OR customer_name ILIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := query.
		Preload("Items").
		Order("order_date DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&orders).Error
	return orders, total, err
}

// Save persists all fields of an existing order
func (r *OrderRepository) Save(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete removes an order and its items
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.OrderItem{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// UpdateItemsMSKU repoints order items from oldMSKU to newMSKU and returns
// the number of rows changed
func (r *OrderRepository) UpdateItemsMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Where("msku = ?", oldMSKU).
		Update("msku", newMSKU)
	return result.RowsAffected, result.Error
}

// Count returns the total number of orders
func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

// CountByStatus aggregates order counts per status
func (r *OrderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// CountByMarketplace aggregates order counts and revenue per marketplace
func (r *OrderRepository) CountByMarketplace(ctx context.Context) ([]MarketplaceCount, error) {
	var counts []MarketplaceCount
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("marketplace, COUNT(*) as count, COALESCE(SUM(payment_amount), 0) as revenue").
		Group("marketplace").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// Revenue sums payment amounts for orders on or after from. A nil from
// covers all orders.
func (r *OrderRepository) Revenue(ctx context.Context, from *time.Time) (float64, error) {
	query := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{
			models.OrderStatusCancelled,
			models.OrderStatusReturned,
			models.OrderStatusRTODelivered,
		})
	if from != nil {
		query = query.Where("order_date >= ?", *from)
	}

	var revenue *float64
	err := query.Select("SUM(payment_amount)").Scan(&revenue).Error
	if err != nil {
		return 0, err
	}
	if revenue == nil {
		return 0, nil
	}
	return *revenue, nil
}
