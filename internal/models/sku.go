package models

import (
	"time"

	"github.com/google/uuid"
)

// MarketplaceIdentifiers holds the marketplace-native product identifiers
// attached to a SKU mapping.
type MarketplaceIdentifiers struct {
	ASIN string `json:"asin,omitempty" gorm:"column:asin;type:varchar(20)"`
	FSN  string `json:"fsn,omitempty" gorm:"column:fsn;type:varchar(30)"`
	EAN  string `json:"ean,omitempty" gorm:"column:ean;type:varchar(20)"`
	UPC  string `json:"upc,omitempty" gorm:"column:upc;type:varchar(20)"`
	ISBN string `json:"isbn,omitempty" gorm:"column:isbn;type:varchar(20)"`
}

// Sku maps a marketplace-specific SKU code to a master SKU. The (sku,
// marketplace) pair is unique; many Skus may reference the same Product
// through the MSKU value.
type Sku struct {
	ID          uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SKU         string      `json:"sku" gorm:"column:sku;type:varchar(100);not null;uniqueIndex:idx_skus_sku_marketplace"`
	MSKU        string      `json:"msku" gorm:"column:msku;type:varchar(100);not null;index"`
	ProductID   uuid.UUID   `json:"productId" gorm:"type:uuid;not null;index"`
	Marketplace Marketplace `json:"marketplace" gorm:"type:varchar(20);not null;uniqueIndex:idx_skus_sku_marketplace"`

	Identifiers MarketplaceIdentifiers `json:"marketplaceIdentifiers" gorm:"embedded"`
	Active      bool                   `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// TableName specifies the table name
func (Sku) TableName() string {
	return "skus"
}
