package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

func newTestSkuService(skuRepo *MockSkuRepository, productRepo *MockProductRepository, inventoryRepo *MockInventoryRepository) *SkuService {
	return NewSkuService(skuRepo, productRepo, inventoryRepo, nil)
}

func TestSkuCreate_SeedsInventory(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	service := newTestSkuService(skuRepo, productRepo, inventoryRepo)

	product := createTestProduct("WIDGET-1", "Widget")

	skuRepo.On("GetBySKUAndMarketplace", ctx, "AMZ-1", models.MarketplaceAmazon).Return(nil, repository.ErrNotFound)
	productRepo.On("GetByMSKU", ctx, "WIDGET-1").Return(product, nil)
	skuRepo.On("Create", ctx, mock.AnythingOfType("*models.Sku")).Return(nil)
	inventoryRepo.On("Create", ctx, mock.MatchedBy(func(r *models.Inventory) bool {
		return r.SKU == "AMZ-1" && r.MSKU == "WIDGET-1" && r.Quantity == 0
	})).Return(nil)

	sku, err := service.Create(ctx, SkuInput{SKU: "AMZ-1", MSKU: "WIDGET-1", Marketplace: models.MarketplaceAmazon})

	assert.NoError(t, err)
	assert.Equal(t, product.ID, sku.ProductID)
	inventoryRepo.AssertExpectations(t)
}

func TestSkuCreate_Taken(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	service := newTestSkuService(skuRepo, new(MockProductRepository), new(MockInventoryRepository))

	existing := createTestSku("AMZ-1", "WIDGET-1", models.MarketplaceAmazon, createTestProduct("WIDGET-1", "Widget").ID)
	skuRepo.On("GetBySKUAndMarketplace", ctx, "AMZ-1", models.MarketplaceAmazon).Return(existing, nil)

	_, err := service.Create(ctx, SkuInput{SKU: "AMZ-1", MSKU: "WIDGET-1", Marketplace: models.MarketplaceAmazon})
	assert.ErrorIs(t, err, ErrSkuTaken)
}

func TestSkuResolve(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	service := newTestSkuService(skuRepo, new(MockProductRepository), new(MockInventoryRepository))

	product := createTestProduct("WIDGET-1", "Widget")
	sku := createTestSku("AMZ-1", "WIDGET-1", models.MarketplaceAmazon, product.ID)

	skuRepo.On("GetBySKU", ctx, "AMZ-1").Return(sku, nil)
	skuRepo.On("GetBySKU", ctx, "GHOST").Return(nil, repository.ErrNotFound)

	resolved, err := service.Resolve(ctx, "AMZ-1")
	assert.NoError(t, err)
	assert.Equal(t, "WIDGET-1", resolved.MSKU)

	_, err = service.Resolve(ctx, "GHOST")
	assert.ErrorIs(t, err, ErrSkuNotFound)
}
