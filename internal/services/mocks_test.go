package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepositoryInterface
type MockProductRepository struct {
	mock.Mock
}

var _ repository.ProductRepositoryInterface = (*MockProductRepository)(nil)

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	if args.Error(0) == nil && product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByMSKU(ctx context.Context, msku string) (*models.Product, error) {
	args := m.Called(ctx, msku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Save(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

// MockSkuRepository is a mock implementation of SkuRepositoryInterface
type MockSkuRepository struct {
	mock.Mock
}

var _ repository.SkuRepositoryInterface = (*MockSkuRepository)(nil)

func (m *MockSkuRepository) Create(ctx context.Context, sku *models.Sku) error {
	args := m.Called(ctx, sku)
	if args.Error(0) == nil && sku.ID == uuid.Nil {
		sku.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockSkuRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Sku, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sku), args.Error(1)
}

func (m *MockSkuRepository) GetBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (*models.Sku, error) {
	args := m.Called(ctx, sku, marketplace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sku), args.Error(1)
}

func (m *MockSkuRepository) GetBySKU(ctx context.Context, sku string) (*models.Sku, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Sku), args.Error(1)
}

func (m *MockSkuRepository) List(ctx context.Context, filter repository.SkuListFilter) ([]models.Sku, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Sku), args.Get(1).(int64), args.Error(2)
}

func (m *MockSkuRepository) Save(ctx context.Context, sku *models.Sku) error {
	args := m.Called(ctx, sku)
	return args.Error(0)
}

func (m *MockSkuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSkuRepository) UpdateMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error) {
	args := m.Called(ctx, oldMSKU, newMSKU)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSkuRepository) DeleteByMSKU(ctx context.Context, msku string) (int64, error) {
	args := m.Called(ctx, msku)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSkuRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockInventoryRepository is a mock implementation of InventoryRepositoryInterface
type MockInventoryRepository struct {
	mock.Mock
}

var _ repository.InventoryRepositoryInterface = (*MockInventoryRepository)(nil)

func (m *MockInventoryRepository) Create(ctx context.Context, record *models.Inventory) error {
	args := m.Called(ctx, record)
	if args.Error(0) == nil && record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockInventoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) GetByKey(ctx context.Context, msku, sku string, marketplace models.Marketplace) (*models.Inventory, error) {
	args := m.Called(ctx, msku, sku, marketplace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) GetBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (*models.Inventory, error) {
	args := m.Called(ctx, sku, marketplace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Inventory, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) ListByMSKU(ctx context.Context, msku string) ([]models.Inventory, error) {
	args := m.Called(ctx, msku)
	return args.Get(0).([]models.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) List(ctx context.Context, filter repository.InventoryListFilter) ([]models.Inventory, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Inventory), args.Get(1).(int64), args.Error(2)
}

func (m *MockInventoryRepository) Save(ctx context.Context, record *models.Inventory) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockInventoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInventoryRepository) DeleteByMSKU(ctx context.Context, msku string) (int64, error) {
	args := m.Called(ctx, msku)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) DeleteBySKUAndMarketplace(ctx context.Context, sku string, marketplace models.Marketplace) (int64, error) {
	args := m.Called(ctx, sku, marketplace)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) UpdateMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error) {
	args := m.Called(ctx, oldMSKU, newMSKU)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInventoryRepository) Summary(ctx context.Context) (*repository.InventorySummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.InventorySummary), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepositoryInterface
type MockOrderRepository struct {
	mock.Mock
}

var _ repository.OrderRepositoryInterface = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	if args.Error(0) == nil && order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByOrderID(ctx context.Context, orderID string, marketplace models.Marketplace) (*models.Order, error) {
	args := m.Called(ctx, orderID, marketplace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderListFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) Save(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateItemsMSKU(ctx context.Context, oldMSKU, newMSKU string) (int64, error) {
	args := m.Called(ctx, oldMSKU, newMSKU)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) ([]repository.StatusCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.StatusCount), args.Error(1)
}

func (m *MockOrderRepository) CountByMarketplace(ctx context.Context) ([]repository.MarketplaceCount, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.MarketplaceCount), args.Error(1)
}

func (m *MockOrderRepository) Revenue(ctx context.Context, from *time.Time) (float64, error) {
	args := m.Called(ctx, from)
	return args.Get(0).(float64), args.Error(1)
}

// Helper to create a test product with sensible defaults
func createTestProduct(msku, name string) *models.Product {
	return &models.Product{
		ID:       uuid.New(),
		MSKU:     msku,
		Name:     name,
		Category: "Electronics",
	}
}

// Helper to create a test SKU mapping
func createTestSku(sku, msku string, marketplace models.Marketplace, productID uuid.UUID) *models.Sku {
	return &models.Sku{
		ID:          uuid.New(),
		SKU:         sku,
		MSKU:        msku,
		ProductID:   productID,
		Marketplace: marketplace,
		Active:      true,
	}
}
