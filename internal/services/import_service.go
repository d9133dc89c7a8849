package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"warehouse-service/internal/events"
	"warehouse-service/internal/models"
	"warehouse-service/internal/repository"
)

var (
	// ErrEmptyFile aborts the whole import call: a header-only or empty
	// file produces no partial summary.
	ErrEmptyFile = errors.New("empty or invalid file")
	// ErrInvalidImportType aborts the call before the row loop.
	ErrInvalidImportType = errors.New("invalid import type")
	// ErrMarketplaceRequired aborts the call when no usable marketplace
	// was supplied.
	ErrMarketplaceRequired = errors.New("marketplace is required")
)

// ImportRequest carries one decoded upload through the import pipeline.
type ImportRequest struct {
	Content     []byte
	Filename    string
	Marketplace models.Marketplace
	Type        models.ImportType
	Mappings    map[string]string
}

// ImportService drives the row loop for marketplace file imports: map each
// row to its canonical shape, resolve SKUs, upsert, and accumulate a
// summary. A failure in one row is recorded and never aborts the batch.
type ImportService struct {
	mapper    *FieldMapper
	resolver  *SkuResolver
	products  repository.ProductRepositoryInterface
	skus      repository.SkuRepositoryInterface
	inventory repository.InventoryRepositoryInterface
	orders    repository.OrderRepositoryInterface
	publisher *events.Publisher
	logger    *logrus.Entry
	now       func() time.Time
}

// NewImportService creates a new ImportService
func NewImportService(
	mapper *FieldMapper,
	resolver *SkuResolver,
	products repository.ProductRepositoryInterface,
	skus repository.SkuRepositoryInterface,
	inventory repository.InventoryRepositoryInterface,
	orders repository.OrderRepositoryInterface,
	publisher *events.Publisher,
	logger *logrus.Logger,
) *ImportService {
	log := logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ImportService{
		mapper:    mapper,
		resolver:  resolver,
		products:  products,
		skus:      skus,
		inventory: inventory,
		orders:    orders,
		publisher: publisher,
		logger:    log.WithField("component", "import-service"),
		now:       time.Now,
	}
}

// Process runs one import call start to finish and returns the summary.
// It returns an error only for fatal conditions; per-row failures are
// reported inside the summary.
func (s *ImportService) Process(ctx context.Context, req ImportRequest) (*models.ImportResult, error) {
	if !req.Marketplace.IsSupported() {
		return nil, ErrMarketplaceRequired
	}

	importType := req.Type
	if importType == "" || importType == models.ImportTypeAuto {
		importType = models.ImportTypeOrders
	}
	if !importType.Valid() {
		return nil, ErrInvalidImportType
	}

	parsed, err := ParseUpload(req.Content, req.Filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptyFile, err)
	}
	if len(parsed.Rows) == 0 {
		return nil, ErrEmptyFile
	}

	result := models.NewImportResult()
	result.Total = len(parsed.Rows)

	switch importType {
	case models.ImportTypeOrders:
		s.processOrders(ctx, parsed.Rows, req.Marketplace, req.Mappings, result)
	case models.ImportTypeInventory:
		s.processInventory(ctx, parsed.Rows, req.Marketplace, req.Mappings, result)
	case models.ImportTypeProducts:
		s.processProducts(ctx, parsed.Rows, req.Marketplace, result)
	}

	s.logger.WithFields(logrus.Fields{
		"marketplace": req.Marketplace,
		"importType":  importType,
		"total":       result.Total,
		"processed":   result.Processed,
		"skipped":     result.Skipped,
		"errors":      len(result.Errors),
	}).Info("Import completed")

	s.publisher.PublishImportCompleted(ctx, req.Marketplace, importType, result)

	return result, nil
}

func (s *ImportService) processOrders(ctx context.Context, rows []map[string]string, marketplace models.Marketplace, mappings map[string]string, result *models.ImportResult) {
	for _, row := range rows {
		rowNum := rowNumber(row)

		canonical, ok := s.mapper.MapOrderRow(row, marketplace)
		if !ok {
			result.Skipped++
			continue
		}

		// Duplicate order ids are skipped, never merged.
		_, err := s.orders.GetByOrderID(ctx, canonical.OrderID, marketplace)
		if err == nil {
			result.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			result.AddError(rowNum, "LOOKUP_FAILED", fmt.Sprintf("error processing order %s: %v", canonical.OrderID, err))
			continue
		}

		items, rowErr := s.buildOrderItems(ctx, canonical, marketplace, mappings, result)
		if rowErr != nil {
			result.AddError(rowNum, "SKU_RESOLUTION_FAILED", fmt.Sprintf("error processing order %s: %v", canonical.OrderID, rowErr))
			continue
		}

		orderDate := canonical.OrderDate
		if orderDate.IsZero() {
			orderDate = s.now()
		}

		status := canonical.Status
		if status == "" {
			status = models.OrderStatusPending
		}

		var amount float64
		for _, item := range items {
			amount += item.Price * float64(item.Quantity)
		}

		order := &models.Order{
			OrderID:     canonical.OrderID,
			OrderItemID: canonical.OrderItemID,
			Marketplace: marketplace,
			OrderDate:   orderDate,
			Status:      status,
			Customer:    canonical.Customer,
			Shipping:    canonical.Shipping,
			Payment: models.OrderPayment{
				Amount: amount,
			},
			RawData: marshalRawRow(row),
			Items:   items,
		}

		if err := s.orders.Create(ctx, order); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// A concurrent import inserted the same order first.
				result.Skipped++
				continue
			}
			result.AddError(rowNum, "CREATE_FAILED", fmt.Sprintf("error processing order %s: %v", canonical.OrderID, err))
			continue
		}

		result.Processed++
	}
}

// buildOrderItems resolves each line item's SKU. Unresolved SKUs produce
// items carrying the UNMAPPED sentinel rather than failing the row.
func (s *ImportService) buildOrderItems(ctx context.Context, canonical *CanonicalRow, marketplace models.Marketplace, mappings map[string]string, result *models.ImportResult) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(canonical.Items))
	for _, item := range canonical.Items {
		if item.SKU == "" {
			continue
		}

		resolution, err := s.resolver.Resolve(ctx, item.SKU, marketplace, mappings)
		if err != nil {
			return nil, err
		}

		if resolution == nil {
			appendUnique(&result.UnmappedSkus, item.SKU)
			items = append(items, models.OrderItem{
				SKU:      item.SKU,
				MSKU:     models.UnmappedMSKU,
				Name:     item.Name,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
			continue
		}

		if resolution.IsNew {
			appendUnique(&result.NewSkus, item.SKU)
		}

		name := item.Name
		if name == "" && resolution.Product != nil {
			name = resolution.Product.Name
		}
		orderItem := models.OrderItem{
			SKU:      item.SKU,
			MSKU:     resolution.Sku.MSKU,
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
		}
		if resolution.Product != nil {
			productID := resolution.Product.ID
			orderItem.ProductID = &productID
		}
		items = append(items, orderItem)
	}
	return items, nil
}

func (s *ImportService) processInventory(ctx context.Context, rows []map[string]string, marketplace models.Marketplace, mappings map[string]string, result *models.ImportResult) {
	for _, row := range rows {
		rowNum := rowNumber(row)

		inv, ok := s.mapper.MapInventoryRow(row, marketplace)
		if !ok {
			result.Skipped++
			continue
		}

		resolution, err := s.resolver.Resolve(ctx, inv.SKU, marketplace, mappings)
		if err != nil {
			result.AddError(rowNum, "SKU_RESOLUTION_FAILED", fmt.Sprintf("error processing inventory for %s: %v", inv.SKU, err))
			continue
		}
		if resolution == nil {
			appendUnique(&result.UnmappedSkus, inv.SKU)
			result.Skipped++
			continue
		}
		if resolution.IsNew {
			appendUnique(&result.NewSkus, inv.SKU)
		}

		if err := s.upsertInventory(ctx, resolution, inv, marketplace); err != nil {
			result.AddError(rowNum, "UPSERT_FAILED", fmt.Sprintf("error processing inventory for %s: %v", inv.SKU, err))
			continue
		}

		result.Processed++
	}
}

// upsertInventory replaces the quantity of an existing record or creates a
// new one seeded with an import history entry.
func (s *ImportService) upsertInventory(ctx context.Context, resolution *Resolution, inv *InventoryRow, marketplace models.Marketplace) error {
	record, err := s.inventory.GetByKey(ctx, resolution.Sku.MSKU, inv.SKU, marketplace)
	if err == nil {
		record.Quantity = inv.Quantity
		record.LastUpdated = s.now()
		return s.inventory.Save(ctx, record)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	record = &models.Inventory{
		ProductID:   resolution.Sku.ProductID,
		MSKU:        resolution.Sku.MSKU,
		SKU:         inv.SKU,
		Marketplace: marketplace,
		Quantity:    inv.Quantity,
		LastUpdated: s.now(),
	}
	if err := record.AppendHistory(models.InventoryAdjustment{
		Date:        s.now(),
		Adjustment:  inv.Quantity,
		Reason:      "Initial import",
		NewQuantity: inv.Quantity,
	}); err != nil {
		return err
	}

	if err := s.inventory.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent import; re-read and replace.
			existing, gerr := s.inventory.GetByKey(ctx, resolution.Sku.MSKU, inv.SKU, marketplace)
			if gerr != nil {
				return gerr
			}
			existing.Quantity = inv.Quantity
			existing.LastUpdated = s.now()
			return s.inventory.Save(ctx, existing)
		}
		return err
	}
	return nil
}

func (s *ImportService) processProducts(ctx context.Context, rows []map[string]string, marketplace models.Marketplace, result *models.ImportResult) {
	for _, row := range rows {
		rowNum := rowNumber(row)

		mapped, ok := s.mapper.MapProductRow(row)
		if !ok {
			result.Skipped++
			continue
		}

		product, err := s.upsertProduct(ctx, mapped)
		if err != nil {
			result.AddError(rowNum, "UPSERT_FAILED", fmt.Sprintf("error processing product %s: %v", mapped.MSKU, err))
			continue
		}

		if mapped.SKU != "" {
			if err := s.ensureSkuMapping(ctx, mapped, product, marketplace, result); err != nil {
				result.AddError(rowNum, "SKU_CREATE_FAILED", fmt.Sprintf("error processing product %s: %v", mapped.MSKU, err))
				continue
			}
		}

		result.Processed++
	}
}

// upsertProduct merges non-empty incoming fields into an existing product
// or creates a new one. Empty values never clobber existing data.
func (s *ImportService) upsertProduct(ctx context.Context, mapped *ProductRow) (*models.Product, error) {
	product, err := s.products.GetByMSKU(ctx, mapped.MSKU)
	if err == nil {
		product.Name = mapped.Name
		if mapped.Category != "" {
			product.Category = mapped.Category
		}
		if mapped.Description != "" {
			product.Description = mapped.Description
		}
		if mapped.HSNCode != "" {
			product.HSNCode = mapped.HSNCode
		}
		if !mapped.Dimensions.IsZero() {
			product.Dimensions = mapped.Dimensions
		}
		if err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}
		return product, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	category := mapped.Category
	if category == "" {
		category = "Uncategorized"
	}
	product = &models.Product{
		MSKU:        mapped.MSKU,
		Name:        mapped.Name,
		Category:    category,
		Description: mapped.Description,
		HSNCode:     mapped.HSNCode,
		Dimensions:  mapped.Dimensions,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return s.products.GetByMSKU(ctx, mapped.MSKU)
		}
		return nil, err
	}
	return product, nil
}

// ensureSkuMapping creates the (sku, marketplace) mapping and a seeded
// inventory record when the product row carries a marketplace SKU.
func (s *ImportService) ensureSkuMapping(ctx context.Context, mapped *ProductRow, product *models.Product, marketplace models.Marketplace, result *models.ImportResult) error {
	_, err := s.skus.GetBySKUAndMarketplace(ctx, mapped.SKU, marketplace)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	sku := &models.Sku{
		SKU:         mapped.SKU,
		MSKU:        mapped.MSKU,
		ProductID:   product.ID,
		Marketplace: marketplace,
		Active:      true,
	}
	if err := s.skus.Create(ctx, sku); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil
		}
		return err
	}

	record := &models.Inventory{
		ProductID:   product.ID,
		MSKU:        mapped.MSKU,
		SKU:         mapped.SKU,
		Marketplace: marketplace,
		Quantity:    mapped.Quantity,
		LastUpdated: s.now(),
	}
	if err := s.inventory.Create(ctx, record); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return err
	}

	appendUnique(&result.NewSkus, mapped.SKU)
	return nil
}

// rowNumber extracts the provenance line number the parser stamped on the
// row.
func rowNumber(row map[string]string) int {
	if raw, ok := row["_row"]; ok {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return 0
}

func appendUnique(list *[]string, value string) {
	for _, existing := range *list {
		if existing == value {
			return
		}
	}
	*list = append(*list, value)
}

// marshalRawRow retains the original row for audit, minus parser
// bookkeeping.
func marshalRawRow(row map[string]string) datatypes.JSON {
	clean := make(map[string]string, len(row))
	for k, v := range row {
		if k != "_row" {
			clean[k] = v
		}
	}
	raw, err := json.Marshal(clean)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
