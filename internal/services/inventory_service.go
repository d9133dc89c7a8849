package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"warehouse-service/internal/events"
	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

var (
	ErrInventoryNotFound  = errors.New("inventory record not found")
	ErrInvalidQuantity    = errors.New("quantity must be a non-negative number")
	ErrInvalidAdjustment  = errors.New("adjustment must be a non-negative number")
	ErrInvalidAdjustType  = errors.New("adjustment type must be add or remove")
	ErrMissingBulkUpdates = errors.New("no updates supplied")
)

// AdjustmentType selects the direction of a stock adjustment.
type AdjustmentType string

const (
	AdjustmentAdd    AdjustmentType = "add"
	AdjustmentRemove AdjustmentType = "remove"
)

// BulkInventoryUpdate is one entry of a bulk update call. Either Quantity
// (set) or Adjustment+Type (delta) must be supplied.
type BulkInventoryUpdate struct {
	SKU         string             `json:"sku"`
	Marketplace models.Marketplace `json:"marketplace"`
	Quantity    *int               `json:"quantity"`
	Adjustment  *int               `json:"adjustment"`
	Type        AdjustmentType     `json:"type"`
	Reason      string             `json:"reason"`
}

// BulkInventoryResult summarizes one bulk update call.
type BulkInventoryResult struct {
	Updated int      `json:"updated"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// InventoryService handles stock level business logic. Quantities never go
// negative: removals clamp at zero.
type InventoryService struct {
	inventory repository.InventoryRepositoryInterface
	products  repository.ProductRepositoryInterface
	publisher *events.Publisher
	logger    *logrus.Entry
	now       func() time.Time
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(
	inventory repository.InventoryRepositoryInterface,
	products repository.ProductRepositoryInterface,
	publisher *events.Publisher,
	logger *logrus.Logger,
) *InventoryService {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &InventoryService{
		inventory: inventory,
		products:  products,
		publisher: publisher,
		logger:    log.WithField("component", "inventory-service"),
		now:       time.Now,
	}
}

// Get retrieves one inventory record
func (s *InventoryService) Get(ctx context.Context, id uuid.UUID) (*models.Inventory, error) {
	record, err := s.inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}
	return record, nil
}

// List retrieves inventory records matching the filter
func (s *InventoryService) List(ctx context.Context, filter repository.InventoryListFilter) ([]models.Inventory, int64, error) {
	return s.inventory.List(ctx, filter)
}

// ListByProduct retrieves all records for one product
func (s *InventoryService) ListByProduct(ctx context.Context, productID uuid.UUID) ([]models.Inventory, error) {
	return s.inventory.ListByProduct(ctx, productID)
}

// ListByMSKU retrieves all records carrying the given master SKU
func (s *InventoryService) ListByMSKU(ctx context.Context, msku string) ([]models.Inventory, error) {
	return s.inventory.ListByMSKU(ctx, msku)
}

// Summary computes aggregate stock figures
func (s *InventoryService) Summary(ctx context.Context) (*repository.InventorySummary, error) {
	return s.inventory.Summary(ctx)
}

// SetQuantity replaces a record's quantity with an absolute value
func (s *InventoryService) SetQuantity(ctx context.Context, id uuid.UUID, quantity int, reason string) (*models.Inventory, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	record, err := s.inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	if reason == "" {
		reason = "Manual update"
	}
	if err := s.applyQuantity(ctx, record, quantity, quantity-record.Quantity, reason); err != nil {
		return nil, err
	}
	return record, nil
}

// Adjust adds or removes stock. Removals clamp at zero rather than going
// negative.
func (s *InventoryService) Adjust(ctx context.Context, id uuid.UUID, adjustment int, adjustType AdjustmentType, reason string) (*models.Inventory, error) {
	if adjustment < 0 {
		return nil, ErrInvalidAdjustment
	}
	if adjustType != AdjustmentAdd && adjustType != AdjustmentRemove {
		return nil, ErrInvalidAdjustType
	}

	record, err := s.inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInventoryNotFound
		}
		return nil, err
	}

	newQuantity := record.Quantity
	if adjustType == AdjustmentAdd {
		newQuantity += adjustment
	} else {
		newQuantity -= adjustment
		if newQuantity < 0 {
			newQuantity = 0
		}
	}
	delta := newQuantity - record.Quantity

	if reason == "" {
		reason = fmt.Sprintf("Manual %s", adjustType)
	}
	if err := s.applyQuantity(ctx, record, newQuantity, delta, reason); err != nil {
		return nil, err
	}
	return record, nil
}

// BulkUpdate applies a batch of set/adjust operations keyed by (sku,
// marketplace). Failures are collected per entry; the batch never aborts.
func (s *InventoryService) BulkUpdate(ctx context.Context, updates []BulkInventoryUpdate) (*BulkInventoryResult, error) {
	if len(updates) == 0 {
		return nil, ErrMissingBulkUpdates
	}

	result := &BulkInventoryResult{Errors: make([]string, 0)}

	for _, update := range updates {
		if update.SKU == "" || update.Marketplace == "" {
			result.Failed++
			result.Errors = append(result.Errors, "missing SKU or marketplace for update")
			continue
		}

		record, err := s.inventory.GetBySKUAndMarketplace(ctx, update.SKU, update.Marketplace)
		if err != nil {
			result.Failed++
			if errors.Is(err, repository.ErrNotFound) {
				result.Errors = append(result.Errors, fmt.Sprintf("inventory item not found for SKU: %s, marketplace: %s", update.SKU, update.Marketplace))
			} else {
				result.Errors = append(result.Errors, fmt.Sprintf("error processing update for SKU %s: %v", update.SKU, err))
			}
			continue
		}

		newQuantity, delta, reason, err := resolveBulkTarget(record, update)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%v for SKU: %s", err, update.SKU))
			continue
		}

		if err := s.applyQuantity(ctx, record, newQuantity, delta, reason); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("error processing update for SKU %s: %v", update.SKU, err))
			continue
		}
		result.Updated++
	}

	return result, nil
}

func resolveBulkTarget(record *models.Inventory, update BulkInventoryUpdate) (newQuantity, delta int, reason string, err error) {
	reason = update.Reason
	switch {
	case update.Quantity != nil:
		if *update.Quantity < 0 {
			return 0, 0, "", ErrInvalidQuantity
		}
		if reason == "" {
			reason = "Bulk update"
		}
		return *update.Quantity, *update.Quantity - record.Quantity, reason, nil
	case update.Adjustment != nil && update.Type != "":
		if *update.Adjustment < 0 {
			return 0, 0, "", ErrInvalidAdjustment
		}
		if update.Type != AdjustmentAdd && update.Type != AdjustmentRemove {
			return 0, 0, "", ErrInvalidAdjustType
		}
		if reason == "" {
			reason = fmt.Sprintf("Bulk %s", update.Type)
		}
		if update.Type == AdjustmentAdd {
			return record.Quantity + *update.Adjustment, *update.Adjustment, reason, nil
		}
		newQuantity = record.Quantity - *update.Adjustment
		if newQuantity < 0 {
			newQuantity = 0
		}
		return newQuantity, newQuantity - record.Quantity, reason, nil
	default:
		return 0, 0, "", errors.New("missing quantity or adjustment")
	}
}

// applyQuantity persists a quantity change with a history entry and fires
// a low-stock alert when the new level crosses the product's threshold.
func (s *InventoryService) applyQuantity(ctx context.Context, record *models.Inventory, newQuantity, delta int, reason string) error {
	record.Quantity = newQuantity
	record.LastUpdated = s.now()
	if err := record.AppendHistory(models.InventoryAdjustment{
		Date:        s.now(),
		Adjustment:  delta,
		Reason:      reason,
		NewQuantity: newQuantity,
	}); err != nil {
		return err
	}

	if err := s.inventory.Save(ctx, record); err != nil {
		return err
	}

	product, err := s.products.GetByID(ctx, record.ProductID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WithError(err).Warn("Failed to load product for low-stock check")
		}
		return nil
	}
	if newQuantity <= product.Threshold() {
		s.publisher.PublishLowStock(ctx, product, record)
	}
	return nil
}
