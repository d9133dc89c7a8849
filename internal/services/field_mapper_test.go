package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"warehouse-service/internal/models"
)

func TestParseFlipkartDate(t *testing.T) {
	parsed := parseFlipkartDate("25-Jan-25")
	assert.Equal(t, time.Date(2025, time.January, 25, 0, 0, 0, 0, time.UTC), parsed)

	parsed = parseFlipkartDate("3-Dec-24")
	assert.Equal(t, time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC), parsed)

	// ISO dates still parse through the generic fallback.
	parsed = parseFlipkartDate("2025-01-25")
	assert.Equal(t, time.Date(2025, time.January, 25, 0, 0, 0, 0, time.UTC), parsed)

	// Unparseable values produce the zero time, never an error.
	assert.True(t, parseFlipkartDate("not-a-date").IsZero())
	assert.True(t, parseFlipkartDate("").IsZero())
	assert.True(t, parseFlipkartDate("25-Foo-25").IsZero())
}

func TestMapOrderRow_AmazonAliases(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"order-id":      "171-0001",
		"sku":           "AMZ-SKU-1",
		"purchase-date": "2025-01-25",
		"quantity":      "2",
		"item-price":    "499.50",
		"order-status":  "Shipped",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceAmazon)

	assert.True(t, ok)
	assert.Equal(t, "171-0001", canonical.OrderID)
	assert.Equal(t, models.OrderStatusShipped, canonical.Status)
	assert.Equal(t, time.Date(2025, time.January, 25, 0, 0, 0, 0, time.UTC), canonical.OrderDate)
	assert.Equal(t, "Amazon Customer", canonical.Customer.Name)
	assert.Len(t, canonical.Items, 1)
	assert.Equal(t, "AMZ-SKU-1", canonical.Items[0].SKU)
	assert.Equal(t, 2, canonical.Items[0].Quantity)
	assert.Equal(t, 499.50, canonical.Items[0].Price)
}

func TestMapOrderRow_FirstAliasWins(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"AmazonOrderId": "from-primary",
		"order-id":      "from-fallback",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceAmazon)

	assert.True(t, ok)
	assert.Equal(t, "from-primary", canonical.OrderID)
}

func TestMapOrderRow_MissingOrderID(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"sku":      "AMZ-SKU-1",
		"quantity": "1",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceAmazon)

	assert.False(t, ok)
	assert.Nil(t, canonical)
}

func TestMapOrderRow_StatusPassThrough(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"AmazonOrderId": "171-0002",
		"OrderStatus":   "PendingAvailability",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceAmazon)

	assert.True(t, ok)
	// Unknown statuses pass through unchanged.
	assert.Equal(t, models.OrderStatus("PendingAvailability"), canonical.Status)
}

func TestMapOrderRow_AmazonStatusMapping(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"AmazonOrderId": "171-0003",
		"OrderStatus":   "Pending",
	}

	canonical, _ := mapper.MapOrderRow(row, models.MarketplaceAmazon)
	assert.Equal(t, models.OrderStatusProcessing, canonical.Status)
}

func TestMapOrderRow_Flipkart(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"Order Id":               "OD1001",
		"Ordered On":             "25-Jan-25",
		"Order State":            "RETURN_REQUESTED",
		"SKU":                    "FK-SKU-1",
		"Product":                "Widget",
		"Quantity":               "3",
		"Selling Price Per Item": "199",
		"Buyer name":             "A Buyer",
		"City":                   "Bengaluru",
		"PIN Code":               "560001",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceFlipkart)

	assert.True(t, ok)
	assert.Equal(t, "OD1001", canonical.OrderID)
	assert.Equal(t, models.OrderStatusReturnRequested, canonical.Status)
	assert.Equal(t, time.Date(2025, time.January, 25, 0, 0, 0, 0, time.UTC), canonical.OrderDate)
	assert.Equal(t, "A Buyer", canonical.Customer.Name)
	assert.Equal(t, "560001", canonical.Customer.Pincode)
	assert.Equal(t, 3, canonical.Items[0].Quantity)
	assert.Equal(t, 199.0, canonical.Items[0].Price)
}

func TestMapOrderRow_FlipkartBadDateIsZero(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"Order Id":   "OD1002",
		"Ordered On": "garbage",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceFlipkart)

	assert.True(t, ok)
	assert.True(t, canonical.OrderDate.IsZero())
}

func TestMapOrderRow_Meesho(t *testing.T) {
	mapper := NewFieldMapper()

	row := map[string]string{
		"Sub Order No":            "SO1001",
		"Order Date":              "2025-02-10",
		"Reason for Credit Entry": "RTO_INITIATED",
		"SKU":                     "ME-SKU-1",
		"Product Name":            "Widget",
		"Quantity":                "1",
		"Supplier Listed Price (Incl. GST + Commission)": "250.00",
		"Customer State": "Karnataka",
	}

	canonical, ok := mapper.MapOrderRow(row, models.MarketplaceMeesho)

	assert.True(t, ok)
	assert.Equal(t, "SO1001", canonical.OrderID)
	assert.Equal(t, models.OrderStatusRTOInitiated, canonical.Status)
	assert.Equal(t, "Karnataka", canonical.Customer.State)
	assert.Equal(t, 250.0, canonical.Items[0].Price)
}

func TestMapOrderRow_UnsupportedMarketplace(t *testing.T) {
	mapper := NewFieldMapper()

	_, ok := mapper.MapOrderRow(map[string]string{"orderId": "x"}, models.MarketplaceOther)
	assert.False(t, ok)
}

func TestFieldValue_CaseInsensitiveFallback(t *testing.T) {
	row := map[string]string{"ORDER-ID": "171-0004"}
	assert.Equal(t, "171-0004", fieldValue(row, "order-id"))
}

func TestMapInventoryRow(t *testing.T) {
	mapper := NewFieldMapper()

	inv, ok := mapper.MapInventoryRow(map[string]string{"SellerSKU": "AMZ-1", "Quantity": "12"}, models.MarketplaceAmazon)
	assert.True(t, ok)
	assert.Equal(t, "AMZ-1", inv.SKU)
	assert.Equal(t, 12, inv.Quantity)

	// Missing SKU skips the row.
	_, ok = mapper.MapInventoryRow(map[string]string{"Quantity": "12"}, models.MarketplaceAmazon)
	assert.False(t, ok)

	// Non-numeric quantity defaults to zero.
	inv, ok = mapper.MapInventoryRow(map[string]string{"SKU": "FK-1", "Quantity": "abc"}, models.MarketplaceFlipkart)
	assert.True(t, ok)
	assert.Equal(t, 0, inv.Quantity)
}

func TestMapProductRow(t *testing.T) {
	mapper := NewFieldMapper()

	product, ok := mapper.MapProductRow(map[string]string{
		"MSKU":     "WIDGET-1",
		"Name":     "Widget",
		"Category": "Toys",
		"Length":   "10.5",
		"Weight":   "0.2",
		"SKU":      "AMZ-W1",
		"Quantity": "7",
	})

	assert.True(t, ok)
	assert.Equal(t, "WIDGET-1", product.MSKU)
	assert.Equal(t, "Toys", product.Category)
	assert.Equal(t, 10.5, product.Dimensions.Length)
	assert.Equal(t, 7, product.Quantity)

	_, ok = mapper.MapProductRow(map[string]string{"Name": "No MSKU"})
	assert.False(t, ok)
}
