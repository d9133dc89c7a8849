package services

import (
	"strconv"
	"strings"
	"time"

	"warehouse-service/internal/models"
)

// CanonicalItem is one normalized order line.
type CanonicalItem struct {
	SKU      string
	Name     string
	Quantity int
	Price    float64
}

// CanonicalRow is the marketplace-independent shape an order row is mapped
// into. A zero OrderDate means the source carried no parseable date; the
// orchestrator substitutes the import timestamp.
type CanonicalRow struct {
	OrderID     string
	OrderItemID string
	OrderDate   time.Time
	Status      models.OrderStatus
	Customer    models.OrderCustomer
	Items       []CanonicalItem
	Shipping    models.OrderShipping
}

// InventoryRow is the normalized shape of one inventory import row.
type InventoryRow struct {
	SKU      string
	Quantity int
}

// ProductRow is the normalized shape of one product import row.
type ProductRow struct {
	MSKU        string
	Name        string
	Category    string
	Description string
	HSNCode     string
	Dimensions  models.Dimensions
	SKU         string
	Quantity    int
}

// fieldValue returns the first non-empty value among the given header
// aliases. Exact matches win over case-insensitive ones.
func fieldValue(row map[string]string, aliases ...string) string {
	for _, alias := range aliases {
		if v, ok := row[alias]; ok && v != "" {
			return v
		}
	}
	for _, alias := range aliases {
		for k, v := range row {
			if v != "" && strings.EqualFold(k, alias) {
				return v
			}
		}
	}
	return ""
}

func parseIntField(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parseFloatField(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// amazonStatusMap translates Amazon order statuses to canonical values.
// Unrecognized statuses pass through unchanged so new upstream states stay
// visible instead of being silently misclassified.
var amazonStatusMap = map[string]models.OrderStatus{
	"Shipped":   models.OrderStatusShipped,
	"Delivered": models.OrderStatusDelivered,
	"Canceled":  models.OrderStatusCancelled,
	"Returned":  models.OrderStatusReturned,
	"Pending":   models.OrderStatusProcessing,
}

var flipkartStatusMap = map[string]models.OrderStatus{
	"SHIPPED":          models.OrderStatusShipped,
	"DELIVERED":        models.OrderStatusDelivered,
	"CANCELLED":        models.OrderStatusCancelled,
	"RETURN_REQUESTED": models.OrderStatusReturnRequested,
	"RETURNED":         models.OrderStatusReturned,
}

var meeshoStatusMap = map[string]models.OrderStatus{
	"DELIVERED":     models.OrderStatusDelivered,
	"SHIPPED":       models.OrderStatusShipped,
	"CANCELLED":     models.OrderStatusCancelled,
	"RTO_INITIATED": models.OrderStatusRTOInitiated,
	"RTO_DELIVERED": models.OrderStatusRTODelivered,
}

func mapStatus(table map[string]models.OrderStatus, raw string) models.OrderStatus {
	if mapped, ok := table[raw]; ok {
		return mapped
	}
	return models.OrderStatus(raw)
}

// flipkartMonths maps the three-letter month abbreviations used in
// Flipkart's DD-MMM-YY dates.
var flipkartMonths = map[string]time.Month{
	"Jan": time.January, "Feb": time.February, "Mar": time.March,
	"Apr": time.April, "May": time.May, "Jun": time.June,
	"Jul": time.July, "Aug": time.August, "Sep": time.September,
	"Oct": time.October, "Nov": time.November, "Dec": time.December,
}

// parseFlipkartDate parses Flipkart's DD-MMM-YY format (e.g. "25-Jan-25"),
// treating the two-digit year as 2000+yy. Returns the zero time when the
// value cannot be parsed.
func parseFlipkartDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	if strings.Contains(s, "-") {
		parts := strings.Split(s, "-")
		if len(parts) == 3 {
			day, dayErr := strconv.Atoi(parts[0])
			month, monthOK := flipkartMonths[parts[1]]
			yy, yearErr := strconv.Atoi(parts[2])
			if dayErr == nil && monthOK && yearErr == nil && yy < 100 {
				return time.Date(2000+yy, month, day, 0, 0, 0, 0, time.UTC)
			}
		}
		return parseGenericDate(s)
	}
	return parseGenericDate(s)
}

var genericDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"01/02/06",
}

// parseGenericDate tries the date layouts seen across marketplace exports.
// Returns the zero time when none match.
func parseGenericDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FieldMapper extracts canonical rows from marketplace-specific exports.
// Each marketplace has a fixed alias table per canonical field; the first
// alias present in the row wins. Mapping has no side effects.
type FieldMapper struct{}

// NewFieldMapper creates a new FieldMapper
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{}
}

// MapOrderRow maps one raw row into a CanonicalRow. The second return is
// false when the row has no external order id and must be skipped.
func (m *FieldMapper) MapOrderRow(row map[string]string, marketplace models.Marketplace) (*CanonicalRow, bool) {
	var canonical *CanonicalRow

	switch marketplace {
	case models.MarketplaceAmazon:
		canonical = m.mapAmazonOrder(row)
	case models.MarketplaceFlipkart:
		canonical = m.mapFlipkartOrder(row)
	case models.MarketplaceMeesho:
		canonical = m.mapMeeshoOrder(row)
	default:
		return nil, false
	}

	if canonical.OrderID == "" {
		return nil, false
	}
	canonical.OrderItemID = fieldValue(row, "ORDER ITEM ID", "orderItemId")
	return canonical, true
}

func (m *FieldMapper) mapAmazonOrder(row map[string]string) *CanonicalRow {
	name := fieldValue(row, "BuyerName", "buyer-name")
	if name == "" {
		name = "Amazon Customer"
	}
	return &CanonicalRow{
		OrderID:   fieldValue(row, "AmazonOrderId", "orderId", "order-id"),
		OrderDate: parseGenericDate(fieldValue(row, "PurchaseDate", "orderDate", "purchase-date")),
		Status:    mapStatus(amazonStatusMap, fieldValue(row, "OrderStatus", "status", "order-status")),
		Customer:  models.OrderCustomer{Name: name},
		Items: []CanonicalItem{{
			SKU:      fieldValue(row, "SellerSKU", "sku", "MSKU"),
			Name:     fieldValue(row, "ProductName", "Title", "product-name"),
			Quantity: parseIntField(fieldValue(row, "QuantityOrdered", "quantity"), 1),
			Price:    parseFloatField(fieldValue(row, "ItemPrice", "price", "item-price")),
		}},
		Shipping: models.OrderShipping{
			FulfillmentCenter: fieldValue(row, "Fulfillment Center"),
		},
	}
}

func (m *FieldMapper) mapFlipkartOrder(row map[string]string) *CanonicalRow {
	shipping := models.OrderShipping{
		ShipmentID: fieldValue(row, "Shipment ID"),
		TrackingID: fieldValue(row, "Tracking ID"),
	}
	if t := parseFlipkartDate(fieldValue(row, "Dispatch After date")); !t.IsZero() {
		shipping.DispatchAfter = &t
	}
	if t := parseFlipkartDate(fieldValue(row, "Dispatch by date")); !t.IsZero() {
		shipping.DispatchBy = &t
	}

	return &CanonicalRow{
		OrderID:   fieldValue(row, "Order Id", "orderId"),
		OrderDate: parseFlipkartDate(fieldValue(row, "Ordered On", "orderedOn")),
		Status:    mapStatus(flipkartStatusMap, fieldValue(row, "Order State", "orderState")),
		Customer: models.OrderCustomer{
			Name:    fieldValue(row, "Buyer name", "Ship to name"),
			Address: fieldValue(row, "Address Line 1"),
			City:    fieldValue(row, "City"),
			State:   fieldValue(row, "State"),
			Pincode: fieldValue(row, "PIN Code"),
		},
		Items: []CanonicalItem{{
			SKU:      fieldValue(row, "SKU"),
			Name:     fieldValue(row, "Product"),
			Quantity: parseIntField(fieldValue(row, "Quantity"), 1),
			Price:    parseFloatField(fieldValue(row, "Selling Price Per Item", "sellingPrice")),
		}},
		Shipping: shipping,
	}
}

func (m *FieldMapper) mapMeeshoOrder(row map[string]string) *CanonicalRow {
	return &CanonicalRow{
		OrderID:   fieldValue(row, "Sub Order No"),
		OrderDate: parseGenericDate(fieldValue(row, "Order Date")),
		Status:    mapStatus(meeshoStatusMap, fieldValue(row, "Reason for Credit Entry")),
		Customer: models.OrderCustomer{
			State: fieldValue(row, "Customer State"),
		},
		Items: []CanonicalItem{{
			SKU:      fieldValue(row, "SKU"),
			Name:     fieldValue(row, "Product Name"),
			Quantity: parseIntField(fieldValue(row, "Quantity"), 1),
			Price:    parseFloatField(fieldValue(row, "Supplier Listed Price (Incl. GST + Commission)")),
		}},
	}
}

// MapInventoryRow maps one raw row into an InventoryRow. The second return
// is false when the row has no SKU and must be skipped.
func (m *FieldMapper) MapInventoryRow(row map[string]string, marketplace models.Marketplace) (*InventoryRow, bool) {
	var inv InventoryRow

	switch marketplace {
	case models.MarketplaceAmazon:
		inv.SKU = fieldValue(row, "SellerSKU", "MSKU", "sku")
		inv.Quantity = parseIntField(fieldValue(row, "Quantity", "quantity"), 0)
	case models.MarketplaceFlipkart, models.MarketplaceMeesho:
		inv.SKU = fieldValue(row, "SKU")
		inv.Quantity = parseIntField(fieldValue(row, "Quantity", "Available Quantity"), 0)
	default:
		return nil, false
	}

	if inv.SKU == "" {
		return nil, false
	}
	return &inv, true
}

// MapProductRow maps one raw row into a ProductRow. The second return is
// false when the row lacks an MSKU or a name and must be skipped.
func (m *FieldMapper) MapProductRow(row map[string]string) (*ProductRow, bool) {
	product := ProductRow{
		MSKU:        fieldValue(row, "MSKU", "msku"),
		Name:        fieldValue(row, "ProductName", "Name", "name", "Title"),
		Category:    fieldValue(row, "Category", "category"),
		Description: fieldValue(row, "Description"),
		HSNCode:     fieldValue(row, "HSN_CODE"),
		Dimensions: models.Dimensions{
			Length:  parseFloatField(fieldValue(row, "Length")),
			Breadth: parseFloatField(fieldValue(row, "Width")),
			Height:  parseFloatField(fieldValue(row, "Height")),
			Weight:  parseFloatField(fieldValue(row, "Weight")),
		},
		SKU:      fieldValue(row, "SKU", "sku"),
		Quantity: parseIntField(fieldValue(row, "Quantity"), 0),
	}

	if product.MSKU == "" || product.Name == "" {
		return nil, false
	}
	return &product, true
}
