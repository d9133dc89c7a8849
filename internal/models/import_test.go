package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportTypeValid(t *testing.T) {
	assert.True(t, ImportTypeOrders.Valid())
	assert.True(t, ImportTypeAuto.Valid())
	assert.False(t, ImportType("bogus").Valid())
	assert.False(t, ImportType("").Valid())
}

func TestTemplateFor(t *testing.T) {
	orders := TemplateFor(ImportTypeOrders)
	assert.Equal(t, ImportTypeOrders, orders.Type)

	names := make([]string, 0, len(orders.Columns))
	for _, col := range orders.Columns {
		names = append(names, col.Name)
	}
	assert.Contains(t, names, "orderId")
	assert.Contains(t, names, "sku")

	inventory := TemplateFor(ImportTypeInventory)
	assert.Len(t, inventory.Columns, 2)
	assert.True(t, inventory.Columns[0].Required)

	products := TemplateFor(ImportTypeProducts)
	assert.Equal(t, "MSKU", products.Columns[0].Name)

	// Auto and unknown types fall back to the orders layout.
	assert.Equal(t, ImportTypeOrders, TemplateFor(ImportTypeAuto).Type)
}

func TestParseMarketplace(t *testing.T) {
	assert.Equal(t, MarketplaceAmazon, ParseMarketplace("amazon"))
	assert.Equal(t, MarketplaceFlipkart, ParseMarketplace("Flipkart"))
	assert.Equal(t, MarketplaceMeesho, ParseMarketplace("MEESHO"))
	assert.Equal(t, MarketplaceOther, ParseMarketplace("etsy"))
}

func TestMarketplaceIsSupported(t *testing.T) {
	assert.True(t, MarketplaceAmazon.IsSupported())
	assert.False(t, MarketplaceOther.IsSupported())
	assert.False(t, MarketplaceUnknown.IsSupported())
}
