package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

var (
	ErrSkuNotFound = errors.New("SKU not found")
	ErrSkuTaken    = errors.New("SKU already exists for this marketplace")
)

// SkuInput carries the mutable fields of a SKU mapping.
type SkuInput struct {
	SKU         string                         `json:"sku"`
	MSKU        string                         `json:"msku"`
	Marketplace models.Marketplace             `json:"marketplace"`
	Identifiers *models.MarketplaceIdentifiers `json:"marketplaceIdentifiers"`
	Active      *bool                          `json:"active"`
}

// BulkSkuResult summarizes one bulk create/update call.
type BulkSkuResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// SkuService handles SKU mapping business logic. Creating a mapping also
// seeds a zero-quantity inventory record for the pair.
type SkuService struct {
	skus      repository.SkuRepositoryInterface
	products  repository.ProductRepositoryInterface
	inventory repository.InventoryRepositoryInterface
	logger    *logrus.Entry
}

// NewSkuService creates a new SkuService
func NewSkuService(
	skus repository.SkuRepositoryInterface,
	products repository.ProductRepositoryInterface,
	inventory repository.InventoryRepositoryInterface,
	logger *logrus.Logger,
) *SkuService {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &SkuService{
		skus:      skus,
		products:  products,
		inventory: inventory,
		logger:    log.WithField("component", "sku-service"),
	}
}

// Create adds a new SKU mapping plus its initial inventory record
func (s *SkuService) Create(ctx context.Context, input SkuInput) (*models.Sku, error) {
	if _, err := s.skus.GetBySKUAndMarketplace(ctx, input.SKU, input.Marketplace); err == nil {
		return nil, ErrSkuTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	product, err := s.products.GetByMSKU(ctx, input.MSKU)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	sku := &models.Sku{
		SKU:         input.SKU,
		MSKU:        input.MSKU,
		ProductID:   product.ID,
		Marketplace: input.Marketplace,
		Active:      true,
	}
	if input.Identifiers != nil {
		sku.Identifiers = *input.Identifiers
	}
	if input.Active != nil {
		sku.Active = *input.Active
	}

	if err := s.skus.Create(ctx, sku); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrSkuTaken
		}
		return nil, err
	}

	record := &models.Inventory{
		ProductID:   product.ID,
		MSKU:        input.MSKU,
		SKU:         input.SKU,
		Marketplace: input.Marketplace,
		Quantity:    0,
	}
	if err := s.inventory.Create(ctx, record); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return nil, err
	}

	return sku, nil
}

// Get retrieves one SKU mapping
func (s *SkuService) Get(ctx context.Context, id uuid.UUID) (*models.Sku, error) {
	sku, err := s.skus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSkuNotFound
		}
		return nil, err
	}
	return sku, nil
}

// List retrieves SKU mappings matching the filter
func (s *SkuService) List(ctx context.Context, filter repository.SkuListFilter) ([]models.Sku, int64, error) {
	return s.skus.List(ctx, filter)
}

// Resolve looks up the mapping for a SKU code across marketplaces
func (s *SkuService) Resolve(ctx context.Context, skuCode string) (*models.Sku, error) {
	sku, err := s.skus.GetBySKU(ctx, skuCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSkuNotFound
		}
		return nil, err
	}
	return sku, nil
}

// Update modifies a SKU mapping, keeping the related inventory record's
// key fields in sync.
func (s *SkuService) Update(ctx context.Context, id uuid.UUID, input SkuInput) (*models.Sku, error) {
	sku, err := s.skus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSkuNotFound
		}
		return nil, err
	}

	oldSKU := sku.SKU
	oldMarketplace := sku.Marketplace

	if input.MSKU != "" && input.MSKU != sku.MSKU {
		product, err := s.products.GetByMSKU(ctx, input.MSKU)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrProductNotFound
			}
			return nil, err
		}
		sku.MSKU = input.MSKU
		sku.ProductID = product.ID
	}

	newSKU := sku.SKU
	if input.SKU != "" {
		newSKU = input.SKU
	}
	newMarketplace := sku.Marketplace
	if input.Marketplace != "" {
		newMarketplace = input.Marketplace
	}
	if newSKU != oldSKU || newMarketplace != oldMarketplace {
		if existing, err := s.skus.GetBySKUAndMarketplace(ctx, newSKU, newMarketplace); err == nil && existing.ID != id {
			return nil, ErrSkuTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		sku.SKU = newSKU
		sku.Marketplace = newMarketplace
	}

	if input.Identifiers != nil {
		sku.Identifiers = *input.Identifiers
	}
	if input.Active != nil {
		sku.Active = *input.Active
	}

	if err := s.skus.Save(ctx, sku); err != nil {
		return nil, err
	}

	// Keep the paired inventory record aligned with the mapping.
	if record, err := s.inventory.GetBySKUAndMarketplace(ctx, oldSKU, oldMarketplace); err == nil {
		record.SKU = sku.SKU
		record.Marketplace = sku.Marketplace
		record.MSKU = sku.MSKU
		record.ProductID = sku.ProductID
		if err := s.inventory.Save(ctx, record); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return sku, nil
}

// Delete removes a SKU mapping and its paired inventory record
func (s *SkuService) Delete(ctx context.Context, id uuid.UUID) error {
	sku, err := s.skus.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSkuNotFound
		}
		return err
	}

	if _, err := s.inventory.DeleteBySKUAndMarketplace(ctx, sku.SKU, sku.Marketplace); err != nil {
		return err
	}
	return s.skus.Delete(ctx, id)
}

// BulkCreateUpdate creates or updates a batch of SKU mappings. Failures
// are collected per entry; the batch never aborts.
func (s *SkuService) BulkCreateUpdate(ctx context.Context, inputs []SkuInput) *BulkSkuResult {
	result := &BulkSkuResult{Errors: make([]string, 0)}

	for _, input := range inputs {
		if input.SKU == "" || input.MSKU == "" || input.Marketplace == "" {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("missing required fields for SKU: %s", input.SKU))
			continue
		}

		product, err := s.products.GetByMSKU(ctx, input.MSKU)
		if err != nil {
			result.Failed++
			if errors.Is(err, repository.ErrNotFound) {
				result.Errors = append(result.Errors, fmt.Sprintf("product with MSKU %s not found for SKU: %s", input.MSKU, input.SKU))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("error processing SKU %s: %v", input.SKU, err))
			}
			continue
		}

		existing, err := s.skus.GetBySKUAndMarketplace(ctx, input.SKU, input.Marketplace)
		switch {
		case err == nil:
			if err := s.bulkUpdate(ctx, existing, input, product); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("error processing SKU %s: %v", input.SKU, err))
				continue
			}
			result.Updated++
		case errors.Is(err, repository.ErrNotFound):
			if _, err := s.Create(ctx, input); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("error processing SKU %s: %v", input.SKU, err))
				continue
			}
			result.Created++
		default:
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("error processing SKU %s: %v", input.SKU, err))
		}
	}

	return result
}

func (s *SkuService) bulkUpdate(ctx context.Context, sku *models.Sku, input SkuInput, product *models.Product) error {
	sku.MSKU = input.MSKU
	sku.ProductID = product.ID
	if input.Identifiers != nil {
		sku.Identifiers = *input.Identifiers
	}
	if input.Active != nil {
		sku.Active = *input.Active
	}
	if err := s.skus.Save(ctx, sku); err != nil {
		return err
	}

	record, err := s.inventory.GetBySKUAndMarketplace(ctx, sku.SKU, sku.Marketplace)
	if err == nil {
		record.MSKU = input.MSKU
		record.ProductID = product.ID
		return s.inventory.Save(ctx, record)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	return s.inventory.Create(ctx, &models.Inventory{
		ProductID:   product.ID,
		MSKU:        input.MSKU,
		SKU:         sku.SKU,
		Marketplace: sku.Marketplace,
		Quantity:    0,
	})
}
