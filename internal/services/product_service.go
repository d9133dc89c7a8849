package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMSKUTaken       = errors.New("product with this MSKU already exists")
)

// ProductInput carries the mutable fields of a product.
type ProductInput struct {
	MSKU              string             `json:"msku"`
	Name              string             `json:"name"`
	Description       string             `json:"description"`
	Category          string             `json:"category"`
	HSNCode           string             `json:"hsnCode"`
	Dimensions        *models.Dimensions `json:"dimensions"`
	LowStockThreshold *int               `json:"lowStockThreshold"`
}

// ProductService handles product catalog business logic. Changing a
// product's MSKU propagates the new value to its SKU mappings, inventory
// records and order items, since those reference the product by MSKU.
type ProductService struct {
	products  repository.ProductRepositoryInterface
	skus      repository.SkuRepositoryInterface
	inventory repository.InventoryRepositoryInterface
	orders    repository.OrderRepositoryInterface
	logger    *logrus.Entry
}

// NewProductService creates a new ProductService
func NewProductService(
	products repository.ProductRepositoryInterface,
	skus repository.SkuRepositoryInterface,
	inventory repository.InventoryRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	logger *logrus.Logger,
) *ProductService {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ProductService{
		products:  products,
		skus:      skus,
		inventory: inventory,
		orders:    orders,
		logger:    log.WithField("component", "product-service"),
	}
}

// Create adds a new product
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if _, err := s.products.GetByMSKU(ctx, input.MSKU); err == nil {
		return nil, ErrMSKUTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	product := &models.Product{
		MSKU:        input.MSKU,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		HSNCode:     input.HSNCode,
	}
	if product.Category == "" {
		product.Category = "Uncategorized"
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	} else {
		product.LowStockThreshold = models.DefaultLowStockThreshold
	}

	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrMSKUTaken
		}
		return nil, err
	}
	return product, nil
}

// Get retrieves one product
func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// List retrieves products matching the filter
func (s *ProductService) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.products.List(ctx, filter)
}

// Categories lists the distinct categories in use
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// Update modifies a product. Empty input fields leave the stored values
// untouched. An MSKU change is propagated to SKUs, inventory and order
// items referencing the old value.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, input ProductInput) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	if input.MSKU != "" && input.MSKU != product.MSKU {
		if existing, err := s.products.GetByMSKU(ctx, input.MSKU); err == nil && existing.ID != id {
			return nil, ErrMSKUTaken
		} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		oldMSKU := product.MSKU
		if _, err := s.skus.UpdateMSKU(ctx, oldMSKU, input.MSKU); err != nil {
			return nil, err
		}
		if _, err := s.inventory.UpdateMSKU(ctx, oldMSKU, input.MSKU); err != nil {
			return nil, err
		}
		if _, err := s.orders.UpdateItemsMSKU(ctx, oldMSKU, input.MSKU); err != nil {
			return nil, err
		}
		s.logger.WithFields(logrus.Fields{
			"oldMsku": oldMSKU,
			"newMsku": input.MSKU,
		}).Info("Propagated MSKU change")

		product.MSKU = input.MSKU
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.Description != "" {
		product.Description = input.Description
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.HSNCode != "" {
		product.HSNCode = input.HSNCode
	}
	if input.Dimensions != nil {
		product.Dimensions = *input.Dimensions
	}
	if input.LowStockThreshold != nil {
		product.LowStockThreshold = *input.LowStockThreshold
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product and cascades to its SKU mappings and inventory
// records.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	if _, err := s.skus.DeleteByMSKU(ctx, product.MSKU); err != nil {
		return err
	}
	if _, err := s.inventory.DeleteByMSKU(ctx, product.MSKU); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}
