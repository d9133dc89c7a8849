package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

func newTestOrderService(orderRepo *MockOrderRepository, skuRepo *MockSkuRepository, productRepo *MockProductRepository) *OrderService {
	return NewOrderService(orderRepo, skuRepo, productRepo, nil)
}

func TestOrderCreate(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	service := newTestOrderService(orderRepo, skuRepo, productRepo)

	product := createTestProduct("WIDGET-1", "Widget")
	sku := createTestSku("AMZ-1", "WIDGET-1", models.MarketplaceAmazon, product.ID)

	orderRepo.On("GetByOrderID", ctx, "171-1", models.MarketplaceAmazon).Return(nil, repository.ErrNotFound)
	skuRepo.On("GetBySKUAndMarketplace", ctx, "AMZ-1", models.MarketplaceAmazon).Return(sku, nil)
	productRepo.On("GetByID", ctx, product.ID).Return(product, nil)
	orderRepo.On("Create", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := service.Create(ctx, OrderInput{
		OrderID:     "171-1",
		Marketplace: models.MarketplaceAmazon,
		Items: []OrderItemInput{
			{SKU: "AMZ-1", Quantity: 2, Price: 100},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "WIDGET-1", order.Items[0].MSKU)
	// Item name falls back to the mapped product's name.
	assert.Equal(t, "Widget", order.Items[0].Name)
	assert.Equal(t, 200.0, order.Payment.Amount)
	assert.False(t, order.OrderDate.IsZero())

	changes, err := order.StatusChanges()
	assert.NoError(t, err)
	assert.Len(t, changes, 1)
	assert.Equal(t, "Order created", changes[0].Note)
}

func TestOrderCreate_UnresolvedSkuFails(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	service := newTestOrderService(orderRepo, skuRepo, productRepo)

	orderRepo.On("GetByOrderID", ctx, "171-2", models.MarketplaceAmazon).Return(nil, repository.ErrNotFound)
	skuRepo.On("GetBySKUAndMarketplace", ctx, "GHOST", models.MarketplaceAmazon).Return(nil, repository.ErrNotFound)

	_, err := service.Create(ctx, OrderInput{
		OrderID:     "171-2",
		Marketplace: models.MarketplaceAmazon,
		Items:       []OrderItemInput{{SKU: "GHOST", Quantity: 1}},
	})

	assert.ErrorIs(t, err, ErrSkuNotFound)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderCreate_DuplicateOrderID(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := newTestOrderService(orderRepo, new(MockSkuRepository), new(MockProductRepository))

	orderRepo.On("GetByOrderID", ctx, "171-1", models.MarketplaceAmazon).Return(&models.Order{OrderID: "171-1"}, nil)

	_, err := service.Create(ctx, OrderInput{
		OrderID:     "171-1",
		Marketplace: models.MarketplaceAmazon,
	})

	assert.ErrorIs(t, err, ErrOrderExists)
}

func TestOrderUpdateStatus_AppendsHistory(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := newTestOrderService(orderRepo, new(MockSkuRepository), new(MockProductRepository))

	order := &models.Order{
		ID:          uuid.New(),
		OrderID:     "171-1",
		Marketplace: models.MarketplaceAmazon,
		Status:      models.OrderStatusPending,
	}

	orderRepo.On("GetByID", ctx, order.ID).Return(order, nil)
	orderRepo.On("Save", ctx, order).Return(nil)

	updated, err := service.UpdateStatus(ctx, order.ID, models.OrderStatusShipped, "Left warehouse")

	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)

	changes, _ := updated.StatusChanges()
	assert.Len(t, changes, 1)
	assert.Equal(t, models.OrderStatusShipped, changes[0].Status)
	assert.Equal(t, "Left warehouse", changes[0].Note)
}

func TestOrderUpdateStatus_RequiresStatus(t *testing.T) {
	ctx := context.Background()
	service := newTestOrderService(new(MockOrderRepository), new(MockSkuRepository), new(MockProductRepository))

	_, err := service.UpdateStatus(ctx, uuid.New(), "", "")
	assert.ErrorIs(t, err, ErrStatusMissing)
}

func TestOrderGet_NotFound(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(MockOrderRepository)
	service := newTestOrderService(orderRepo, new(MockSkuRepository), new(MockProductRepository))

	id := uuid.New()
	orderRepo.On("GetByID", ctx, id).Return(nil, repository.ErrNotFound)

	_, err := service.Get(ctx, id)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
