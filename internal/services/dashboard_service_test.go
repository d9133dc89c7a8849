package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

func TestDashboardSummary(t *testing.T) {
	ctx := context.Background()
	productRepo := new(MockProductRepository)
	skuRepo := new(MockSkuRepository)
	inventoryRepo := new(MockInventoryRepository)
	orderRepo := new(MockOrderRepository)
	service := NewDashboardService(productRepo, skuRepo, inventoryRepo, orderRepo)

	fixed := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	productRepo.On("Count", ctx).Return(int64(12), nil)
	skuRepo.On("Count", ctx).Return(int64(30), nil)
	orderRepo.On("Count", ctx).Return(int64(200), nil)

	since := fixed.AddDate(0, 0, -30)
	orderRepo.On("Revenue", ctx, &since).Return(45000.50, nil)

	inventoryRepo.On("Summary", ctx).Return(&repository.InventorySummary{TotalRecords: 30, TotalQuantity: 900}, nil)
	orderRepo.On("CountByStatus", ctx).Return([]repository.StatusCount{{Status: models.OrderStatusShipped, Count: 120}}, nil)
	orderRepo.On("CountByMarketplace", ctx).Return([]repository.MarketplaceCount{{Marketplace: models.MarketplaceAmazon, Count: 150, Revenue: 40000}}, nil)
	orderRepo.On("List", ctx, repository.OrderListFilter{Page: 1, Limit: recentOrderCount}).Return([]models.Order{{OrderID: "171-1"}}, int64(200), nil)

	summary, err := service.Summary(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(12), summary.TotalProducts)
	assert.Equal(t, int64(30), summary.TotalSkus)
	assert.Equal(t, int64(200), summary.TotalOrders)
	assert.Equal(t, 45000.50, summary.Revenue30Days)
	assert.Len(t, summary.RecentOrders, 1)
	orderRepo.AssertExpectations(t)
}

func TestDashboardLowStock(t *testing.T) {
	ctx := context.Background()
	inventoryRepo := new(MockInventoryRepository)
	service := NewDashboardService(new(MockProductRepository), new(MockSkuRepository), inventoryRepo, new(MockOrderRepository))

	inventoryRepo.On("List", ctx, mock.MatchedBy(func(f repository.InventoryListFilter) bool {
		return f.LowStock && f.Page == 2 && f.Limit == 20
	})).Return([]models.Inventory{{SKU: "AMZ-1", Quantity: 2}}, int64(21), nil)

	records, total, err := service.LowStock(ctx, 2, 20)

	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int64(21), total)
}
