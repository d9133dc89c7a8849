package services

import (
	"context"
	"errors"
	"time"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

// Resolution is the outcome of resolving one marketplace SKU.
type Resolution struct {
	Sku     *models.Sku
	Product *models.Product
	IsNew   bool
}

// SkuResolver resolves marketplace SKU codes to master SKUs. Resolution
// order is fixed: existing mapping first, then a caller-supplied mapping
// that creates a new Sku on the fly, otherwise unresolved.
type SkuResolver struct {
	skus      repository.SkuRepositoryInterface
	products  repository.ProductRepositoryInterface
	inventory repository.InventoryRepositoryInterface
}

// NewSkuResolver creates a new SkuResolver
func NewSkuResolver(
	skus repository.SkuRepositoryInterface,
	products repository.ProductRepositoryInterface,
	inventory repository.InventoryRepositoryInterface,
) *SkuResolver {
	return &SkuResolver{
		skus:      skus,
		products:  products,
		inventory: inventory,
	}
}

// Resolve looks up skuCode for the given marketplace. A nil Resolution
// with a nil error means the SKU is unresolved; the caller records it as
// unmapped and proceeds with the UNMAPPED sentinel.
func (r *SkuResolver) Resolve(ctx context.Context, skuCode string, marketplace models.Marketplace, mappings map[string]string) (*Resolution, error) {
	existing, err := r.skus.GetBySKUAndMarketplace(ctx, skuCode, marketplace)
	if err == nil {
		product, perr := r.products.GetByMSKU(ctx, existing.MSKU)
		if perr != nil && !errors.Is(perr, repository.ErrNotFound) {
			return nil, perr
		}
		return &Resolution{Sku: existing, Product: product}, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	msku, ok := mappings[skuCode]
	if !ok || msku == "" {
		return nil, nil
	}

	product, err := r.products.GetByMSKU(ctx, msku)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Mapping points at a product that does not exist; treat the
			// SKU as unresolved rather than inventing a product.
			return nil, nil
		}
		return nil, err
	}

	sku := &models.Sku{
		SKU:         skuCode,
		MSKU:        msku,
		ProductID:   product.ID,
		Marketplace: marketplace,
		Active:      true,
	}
	if err := r.skus.Create(ctx, sku); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// A concurrent import created the mapping first; use it.
			existing, gerr := r.skus.GetBySKUAndMarketplace(ctx, skuCode, marketplace)
			if gerr != nil {
				return nil, gerr
			}
			return &Resolution{Sku: existing, Product: product}, nil
		}
		return nil, err
	}

	record := &models.Inventory{
		ProductID:   product.ID,
		MSKU:        msku,
		SKU:         skuCode,
		Marketplace: marketplace,
		Quantity:    0,
		LastUpdated: time.Now(),
	}
	if err := r.inventory.Create(ctx, record); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}

	return &Resolution{Sku: sku, Product: product, IsNew: true}, nil
}
