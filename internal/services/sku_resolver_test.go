package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

func TestResolve_ExistingMapping(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	resolver := NewSkuResolver(skuRepo, productRepo, inventoryRepo)

	product := createTestProduct("WIDGET-1", "Widget")
	existing := createTestSku("AMZ-1", "WIDGET-1", models.MarketplaceAmazon, product.ID)

	skuRepo.On("GetBySKUAndMarketplace", ctx, "AMZ-1", models.MarketplaceAmazon).Return(existing, nil)
	productRepo.On("GetByMSKU", ctx, "WIDGET-1").Return(product, nil)

	resolution, err := resolver.Resolve(ctx, "AMZ-1", models.MarketplaceAmazon, nil)

	assert.NoError(t, err)
	assert.NotNil(t, resolution)
	assert.False(t, resolution.IsNew)
	assert.Equal(t, existing, resolution.Sku)
	assert.Equal(t, product, resolution.Product)
	skuRepo.AssertExpectations(t)
}

func TestResolve_ExistingMappingWinsOverCallerMapping(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	resolver := NewSkuResolver(skuRepo, productRepo, inventoryRepo)

	product := createTestProduct("WIDGET-1", "Widget")
	existing := createTestSku("AMZ-1", "WIDGET-1", models.MarketplaceAmazon, product.ID)

	skuRepo.On("GetBySKUAndMarketplace", ctx, "AMZ-1", models.MarketplaceAmazon).Return(existing, nil)
	productRepo.On("GetByMSKU", ctx, "WIDGET-1").Return(product, nil)

	// The caller mapping names a different product; the stored mapping
	// still wins.
	resolution, err := resolver.Resolve(ctx, "AMZ-1", models.MarketplaceAmazon, map[string]string{"AMZ-1": "OTHER-MSKU"})

	assert.NoError(t, err)
	assert.Equal(t, "WIDGET-1", resolution.Sku.MSKU)
	productRepo.AssertNotCalled(t, "GetByMSKU", ctx, "OTHER-MSKU")
}

func TestResolve_CallerMappingCreatesSkuAndInventory(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	resolver := NewSkuResolver(skuRepo, productRepo, inventoryRepo)

	product := createTestProduct("WIDGET-1", "Widget")

	skuRepo.On("GetBySKUAndMarketplace", ctx, "NEW-SKU", models.MarketplaceFlipkart).Return(nil, repository.ErrNotFound)
	productRepo.On("GetByMSKU", ctx, "WIDGET-1").Return(product, nil)
	skuRepo.On("Create", ctx, mock.MatchedBy(func(s *models.Sku) bool {
		return s.SKU == "NEW-SKU" && s.MSKU == "WIDGET-1" && s.Marketplace == models.MarketplaceFlipkart && s.Active
	})).Return(nil)
	inventoryRepo.On("Create", ctx, mock.MatchedBy(func(r *models.Inventory) bool {
		return r.SKU == "NEW-SKU" && r.MSKU == "WIDGET-1" && r.Quantity == 0
	})).Return(nil)

	resolution, err := resolver.Resolve(ctx, "NEW-SKU", models.MarketplaceFlipkart, map[string]string{"NEW-SKU": "WIDGET-1"})

	assert.NoError(t, err)
	assert.NotNil(t, resolution)
	assert.True(t, resolution.IsNew)
	assert.Equal(t, "WIDGET-1", resolution.Sku.MSKU)
	skuRepo.AssertExpectations(t)
	inventoryRepo.AssertExpectations(t)
}

func TestResolve_Unresolved(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	resolver := NewSkuResolver(skuRepo, productRepo, inventoryRepo)

	skuRepo.On("GetBySKUAndMarketplace", ctx, "MYSTERY", models.MarketplaceMeesho).Return(nil, repository.ErrNotFound)

	resolution, err := resolver.Resolve(ctx, "MYSTERY", models.MarketplaceMeesho, nil)

	assert.NoError(t, err)
	assert.Nil(t, resolution)
}

func TestResolve_MappingToMissingProductIsUnresolved(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	resolver := NewSkuResolver(skuRepo, productRepo, inventoryRepo)

	skuRepo.On("GetBySKUAndMarketplace", ctx, "NEW-SKU", models.MarketplaceAmazon).Return(nil, repository.ErrNotFound)
	productRepo.On("GetByMSKU", ctx, "GHOST").Return(nil, repository.ErrNotFound)

	resolution, err := resolver.Resolve(ctx, "NEW-SKU", models.MarketplaceAmazon, map[string]string{"NEW-SKU": "GHOST"})

	assert.NoError(t, err)
	assert.Nil(t, resolution)
	skuRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolve_ConcurrentCreateUsesExisting(t *testing.T) {
	ctx := context.Background()
	skuRepo := new(MockSkuRepository)
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	resolver := NewSkuResolver(skuRepo, productRepo, inventoryRepo)

	product := createTestProduct("WIDGET-1", "Widget")
	existing := createTestSku("NEW-SKU", "WIDGET-1", models.MarketplaceAmazon, product.ID)

	skuRepo.On("GetBySKUAndMarketplace", ctx, "NEW-SKU", models.MarketplaceAmazon).Return(nil, repository.ErrNotFound).Once()
	productRepo.On("GetByMSKU", ctx, "WIDGET-1").Return(product, nil)
	skuRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)
	skuRepo.On("GetBySKUAndMarketplace", ctx, "NEW-SKU", models.MarketplaceAmazon).Return(existing, nil)

	resolution, err := resolver.Resolve(ctx, "NEW-SKU", models.MarketplaceAmazon, map[string]string{"NEW-SKU": "WIDGET-1"})

	assert.NoError(t, err)
	assert.False(t, resolution.IsNew)
	assert.Equal(t, existing, resolution.Sku)
}
